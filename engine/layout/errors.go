package layout

import "errors"

var (
	// ErrMissingPosition is returned when a vertex layout is requested without a position attribute.
	ErrMissingPosition = errors.New("vertex layout requires a position attribute")

	// ErrDuplicateAttribute is returned when the same vertex attribute is declared twice.
	ErrDuplicateAttribute = errors.New("duplicate vertex attribute")

	// ErrInvalidComponents is returned for component counts a field or attribute cannot have.
	ErrInvalidComponents = errors.New("invalid component count")

	// ErrEmptyFieldName is returned when a uniform field is declared without a name.
	ErrEmptyFieldName = errors.New("uniform field has no name")

	// ErrNoFields is returned when packing an empty uniform declaration.
	ErrNoFields = errors.New("uniform layout has no fields")

	// ErrDuplicateField is returned when two uniform fields share a name.
	ErrDuplicateField = errors.New("duplicate uniform field")

	// ErrUnknownField is returned when looking up a uniform field that was never declared.
	ErrUnknownField = errors.New("unknown uniform field")

	// ErrComponentMismatch is returned when a write supplies the wrong number of values for a field.
	ErrComponentMismatch = errors.New("value count does not match field components")
)
