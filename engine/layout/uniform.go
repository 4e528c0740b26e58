package layout

import (
	"fmt"
	"strings"
)

// UniformAlignment is the constant-buffer size granularity in bytes.
const UniformAlignment = 16

// UniformField declares one named uniform value by its number of float32 components
// (16 for a 4x4 matrix, 1 for a scalar).
type UniformField struct {
	Name       string
	Components int
}

// PackedField is a UniformField with its assigned position in the buffer.
type PackedField struct {
	UniformField

	// Offset is the position in 4-byte units.
	Offset int
}

// ByteOffset returns the position of the field in bytes.
func (p PackedField) ByteOffset() uint64 {
	return uint64(p.Offset) * 4
}

// ByteSize returns the number of bytes the field occupies.
func (p PackedField) ByteSize() uint64 {
	return uint64(p.Components) * 4
}

// UniformLayout is the packed layout of a uniform buffer: fields in declaration order,
// a name lookup, and the total size rounded up to UniformAlignment.
type UniformLayout struct {
	fields []PackedField
	index  map[string]int
	size   uint64
}

// PackUniforms assigns each field the next offset in 4-byte units, in declaration order,
// with no padding between fields. Only the total size is padded, up to a multiple of 16 bytes.
//
// Parameters:
//   - fields: ordered field declarations
//
// Returns:
//   - UniformLayout: the packed layout
//   - error: ErrNoFields, ErrEmptyFieldName, ErrInvalidComponents or ErrDuplicateField
func PackUniforms(fields []UniformField) (UniformLayout, error) {
	if len(fields) == 0 {
		return UniformLayout{}, ErrNoFields
	}
	ul := UniformLayout{
		fields: make([]PackedField, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	offset := 0
	for _, f := range fields {
		if f.Name == "" {
			return UniformLayout{}, fmt.Errorf("%w: field %d", ErrEmptyFieldName, len(ul.fields))
		}
		if f.Components < 1 {
			return UniformLayout{}, fmt.Errorf("%w: %s has %d", ErrInvalidComponents, f.Name, f.Components)
		}
		if _, dup := ul.index[f.Name]; dup {
			return UniformLayout{}, fmt.Errorf("%w: %s", ErrDuplicateField, f.Name)
		}
		ul.index[f.Name] = len(ul.fields)
		ul.fields = append(ul.fields, PackedField{UniformField: f, Offset: offset})
		offset += f.Components
	}
	ul.size = alignUp(uint64(offset)*4, UniformAlignment)
	return ul, nil
}

// Size returns the total buffer size in bytes, a multiple of 16.
func (ul UniformLayout) Size() uint64 {
	return ul.size
}

// Fields returns the packed fields in declaration order.
func (ul UniformLayout) Fields() []PackedField {
	out := make([]PackedField, len(ul.fields))
	copy(out, ul.fields)
	return out
}

// Field looks up a declared field by name.
//
// Parameters:
//   - name: the field name
//
// Returns:
//   - PackedField: the packed field
//   - error: ErrUnknownField if name was not declared
func (ul UniformLayout) Field(name string) (PackedField, error) {
	i, ok := ul.index[name]
	if !ok {
		return PackedField{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return ul.fields[i], nil
}

// Offset returns the byte offset of a declared field.
//
// Parameters:
//   - name: the field name
//
// Returns:
//   - uint64: byte offset from the start of the buffer
//   - error: ErrUnknownField if name was not declared
func (ul UniformLayout) Offset(name string) (uint64, error) {
	f, err := ul.Field(name)
	if err != nil {
		return 0, err
	}
	return f.ByteOffset(), nil
}

// WGSL generates the shader-side declaration of the buffer: an array of vec4<f32> bound at
// group/binding, plus one `load_<name>()` accessor per field that reads the packed components.
//
// Parameters:
//   - structName: name of the generated struct
//   - varName: name of the uniform variable
//   - group: bind group index
//   - binding: binding index within the group
//
// Returns:
//   - string: WGSL source
func (ul UniformLayout) WGSL(structName, varName string, group, binding int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "struct %s {\n    data: array<vec4<f32>, %d>,\n}\n\n", structName, ul.size/UniformAlignment)
	fmt.Fprintf(&b, "@group(%d) @binding(%d) var<uniform> %s: %s;\n", group, binding, varName, structName)

	for _, f := range ul.fields {
		b.WriteString("\n")
		if f.Components == 16 && f.Offset%4 == 0 {
			q := f.Offset / 4
			fmt.Fprintf(&b, "fn load_%s() -> mat4x4<f32> {\n    return mat4x4<f32>(%s.data[%d], %s.data[%d], %s.data[%d], %s.data[%d]);\n}\n",
				f.Name, varName, q, varName, q+1, varName, q+2, varName, q+3)
			continue
		}

		elems := make([]string, f.Components)
		for i := range elems {
			idx := f.Offset + i
			elems[i] = fmt.Sprintf("%s.data[%d].%c", varName, idx/4, "xyzw"[idx%4])
		}
		typ := wgslFieldType(f.Components)
		if f.Components == 1 {
			fmt.Fprintf(&b, "fn load_%s() -> %s {\n    return %s;\n}\n", f.Name, typ, elems[0])
			continue
		}
		fmt.Fprintf(&b, "fn load_%s() -> %s {\n    return %s(%s);\n}\n", f.Name, typ, typ, strings.Join(elems, ", "))
	}
	return b.String()
}

// wgslFieldType picks the WGSL type for a field with n float components.
func wgslFieldType(n int) string {
	switch n {
	case 1:
		return "f32"
	case 2, 3, 4:
		return fmt.Sprintf("vec%d<f32>", n)
	case 9:
		return "mat3x3<f32>"
	case 16:
		return "mat4x4<f32>"
	}
	return fmt.Sprintf("array<f32, %d>", n)
}

func alignUp(v, align uint64) uint64 {
	return (v + align - 1) / align * align
}
