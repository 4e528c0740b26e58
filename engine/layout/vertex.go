package layout

import (
	"fmt"
	"sort"
	"strings"
)

// Attribute is an optional vertex channel. The declaration order is the canonical packing order.
type Attribute int

const (
	AttributePosition Attribute = iota
	AttributeNormal
	AttributeColor
	AttributeUV
)

var attributeNames = [...]string{"position", "normal", "color", "uv"}

// String returns the attribute name, which is also its WGSL field name.
func (a Attribute) String() string {
	if a < 0 || int(a) >= len(attributeNames) {
		return fmt.Sprintf("Attribute(%d)", int(a))
	}
	return attributeNames[a]
}

// Format is a float32 vector format with 1 to 4 components.
type Format int

const (
	FormatFloat32 Format = iota + 1
	FormatFloat32x2
	FormatFloat32x3
	FormatFloat32x4
)

// Components returns the number of float32 components.
func (f Format) Components() int {
	return int(f)
}

// Size returns the byte size of one element.
func (f Format) Size() uint64 {
	return uint64(f) * 4
}

// WGSLType returns the matching WGSL type name.
func (f Format) WGSLType() string {
	if f == FormatFloat32 {
		return "f32"
	}
	return fmt.Sprintf("vec%d<f32>", int(f))
}

// AttributeDescriptor declares whether a vertex channel is present and how many float32 components it has.
type AttributeDescriptor struct {
	Attribute  Attribute
	Present    bool
	Components int
}

// DefaultComponents returns the component count used when a mesh does not specify one:
// 3 for position and normal, 4 for color (RGBA), 2 for uv.
func DefaultComponents(a Attribute) int {
	switch a {
	case AttributePosition, AttributeNormal:
		return 3
	case AttributeColor:
		return 4
	case AttributeUV:
		return 2
	}
	return 0
}

// DefaultDescriptor returns a present descriptor with the default component count.
func DefaultDescriptor(a Attribute) AttributeDescriptor {
	return AttributeDescriptor{Attribute: a, Present: true, Components: DefaultComponents(a)}
}

// VertexAttribute is one packed channel of a VertexLayout.
type VertexAttribute struct {
	Attribute Attribute
	Slot      uint32
	Offset    uint64
	Format    Format
}

// VertexLayout is the packed interleaved layout of one mesh's vertex buffer.
type VertexLayout struct {
	Attributes []VertexAttribute
	Stride     uint64
}

// PackVertex assigns each present attribute, in canonical order, the next byte offset and shader slot.
// Absent attributes take no space. The stride is the sum of the present attribute sizes.
//
// Parameters:
//   - descs: attribute descriptors in any order
//
// Returns:
//   - VertexLayout: the packed layout
//   - error: ErrMissingPosition, ErrDuplicateAttribute or ErrInvalidComponents
func PackVertex(descs []AttributeDescriptor) (VertexLayout, error) {
	present := make([]AttributeDescriptor, 0, len(descs))
	seen := make(map[Attribute]bool, len(descs))
	for _, d := range descs {
		if !d.Present {
			continue
		}
		if seen[d.Attribute] {
			return VertexLayout{}, fmt.Errorf("%w: %s", ErrDuplicateAttribute, d.Attribute)
		}
		seen[d.Attribute] = true
		if d.Components < 1 || d.Components > 4 {
			return VertexLayout{}, fmt.Errorf("%w: %s has %d", ErrInvalidComponents, d.Attribute, d.Components)
		}
		present = append(present, d)
	}
	if !seen[AttributePosition] {
		return VertexLayout{}, ErrMissingPosition
	}

	sort.Slice(present, func(i, j int) bool {
		return present[i].Attribute < present[j].Attribute
	})

	vl := VertexLayout{Attributes: make([]VertexAttribute, 0, len(present))}
	for i, d := range present {
		format := Format(d.Components)
		vl.Attributes = append(vl.Attributes, VertexAttribute{
			Attribute: d.Attribute,
			Slot:      uint32(i),
			Offset:    vl.Stride,
			Format:    format,
		})
		vl.Stride += format.Size()
	}
	return vl, nil
}

// Attribute returns the packed entry for a, if present.
func (vl VertexLayout) Attribute(a Attribute) (VertexAttribute, bool) {
	for _, va := range vl.Attributes {
		if va.Attribute == a {
			return va, true
		}
	}
	return VertexAttribute{}, false
}

// Has reports whether a is part of the layout.
func (vl VertexLayout) Has(a Attribute) bool {
	_, ok := vl.Attribute(a)
	return ok
}

// WGSLInput generates a WGSL vertex input struct whose @location slots match the layout.
//
// Parameters:
//   - structName: name of the generated struct
//
// Returns:
//   - string: WGSL source for the struct
func (vl VertexLayout) WGSLInput(structName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "struct %s {\n", structName)
	for _, va := range vl.Attributes {
		fmt.Fprintf(&b, "    @location(%d) %s: %s,\n", va.Slot, va.Attribute, va.Format.WGSLType())
	}
	b.WriteString("}\n")
	return b.String()
}
