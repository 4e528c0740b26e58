package layout

import (
	"errors"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-lumen/common"
)

func TestPackUniformsRoundTrip(t *testing.T) {
	ul, err := PackUniforms([]UniformField{
		{Name: "matrixA", Components: 16},
		{Name: "scalarB", Components: 1},
	})
	if err != nil {
		t.Fatalf("PackUniforms() error = %v", err)
	}
	if ul.Size() != 80 {
		t.Errorf("Size() = %d, want 80", ul.Size())
	}

	off, err := ul.Offset("scalarB")
	if err != nil || off != 64 {
		t.Fatalf("Offset(scalarB) = %d, %v, want 64", off, err)
	}

	sink := NewMemorySink()
	w := NewUniformWriter(sink, "uniforms", ul)
	if err := w.Write("scalarB", 3.0); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, ok := sink.Float32("uniforms", off)
	if !ok || got != 3.0 {
		t.Errorf("Float32(uniforms, %d) = %v, %v, want 3", off, got, ok)
	}
	if len(sink.Bytes("uniforms")) != 68 {
		t.Errorf("mirror length = %d, want 68", len(sink.Bytes("uniforms")))
	}
}

func TestDefaultUniformLayout(t *testing.T) {
	ul, err := PackUniforms(DefaultUniformFields())
	if err != nil {
		t.Fatal(err)
	}
	if ul.Size() != 256 {
		t.Errorf("Size() = %d, want 256", ul.Size())
	}

	// Offsets in floats.
	want := map[string]int{
		FieldModelMatrix:      0,
		FieldViewMatrix:       16,
		FieldProjectionMatrix: 32,
		FieldCameraPosition:   48,
		FieldCanvasSize:       52,
		FieldOverallRadius:    54,
		FieldConeRadius:       55,
		FieldLightLength:      56,
		FieldTime:             57,
		FieldLightStep:        58,
		FieldLightSpeed:       59,
		FieldLightIntensity:   60,
	}
	for name, offset := range want {
		f, err := ul.Field(name)
		if err != nil {
			t.Errorf("Field(%s) error = %v", name, err)
			continue
		}
		if f.Offset != offset {
			t.Errorf("Field(%s).Offset = %d, want %d", name, f.Offset, offset)
		}
	}

	for name := range DefaultControls() {
		f, err := ul.Field(name)
		if err != nil || f.Components != 1 {
			t.Errorf("control %s: %+v, %v", name, f, err)
		}
	}
}

func TestPackUniformsErrors(t *testing.T) {
	tests := []struct {
		name   string
		fields []UniformField
		want   error
	}{
		{name: "empty", fields: nil, want: ErrNoFields},
		{name: "no name", fields: []UniformField{{Components: 1}}, want: ErrEmptyFieldName},
		{name: "zero components", fields: []UniformField{{Name: "a"}}, want: ErrInvalidComponents},
		{
			name:   "duplicate",
			fields: []UniformField{{Name: "a", Components: 1}, {Name: "a", Components: 2}},
			want:   ErrDuplicateField,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := PackUniforms(tt.fields); !errors.Is(err, tt.want) {
				t.Errorf("PackUniforms() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUnknownFieldFailsFast(t *testing.T) {
	ul, err := PackUniforms([]UniformField{{Name: "a", Components: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ul.Field("missing"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Field() error = %v, want ErrUnknownField", err)
	}
	if _, err := ul.Offset("missing"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Offset() error = %v, want ErrUnknownField", err)
	}

	sink := NewMemorySink()
	w := NewUniformWriter(sink, "u", ul)
	if err := w.Write("missing", 1); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Write() error = %v, want ErrUnknownField", err)
	}
	if sink.Writes() != 0 {
		t.Errorf("Writes() = %d after failed write, want 0", sink.Writes())
	}
}

func TestEncode(t *testing.T) {
	ul, err := PackUniforms([]UniformField{{Name: "pad", Components: 3}, {Name: "v", Components: 2}})
	if err != nil {
		t.Fatal(err)
	}
	w := NewUniformWriter(NewMemorySink(), "u", ul)

	bw, err := w.Encode("v", 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if bw.Buffer != "u" || bw.Offset != 12 || len(bw.Data) != 8 {
		t.Errorf("Encode() = %+v", bw)
	}
	if string(bw.Data) != string(common.Float32Bytes(1, 2)) {
		t.Errorf("Encode() data = %v", bw.Data)
	}

	if _, err := w.Encode("v", 1); !errors.Is(err, ErrComponentMismatch) {
		t.Errorf("Encode() short error = %v, want ErrComponentMismatch", err)
	}
	if _, err := w.Encode("v", 1, 2, 3); !errors.Is(err, ErrComponentMismatch) {
		t.Errorf("Encode() long error = %v, want ErrComponentMismatch", err)
	}
}

func TestWriterHelpers(t *testing.T) {
	ul, err := PackUniforms(DefaultUniformFields())
	if err != nil {
		t.Fatal(err)
	}
	sink := NewMemorySink()
	w := NewUniformWriter(sink, "u", ul)

	m := common.Identity()
	m[12] = 7
	if err := w.WriteMat4(FieldViewMatrix, m); err != nil {
		t.Fatal(err)
	}
	if got, _ := sink.Float32("u", 16*4+12*4); got != 7 {
		t.Errorf("viewMatrix[12] = %v, want 7", got)
	}

	if err := w.WriteVec3(FieldCameraPosition, common.Vec3{1, 2, 3}, 1); err != nil {
		t.Fatal(err)
	}
	for i, want := range []float32{1, 2, 3, 1} {
		if got, _ := sink.Float32("u", 48*4+uint64(i)*4); got != want {
			t.Errorf("cameraPosition[%d] = %v, want %v", i, got, want)
		}
	}

	if err := w.WriteVec3(FieldTime, common.Vec3{1, 2, 3}, 0); !errors.Is(err, ErrComponentMismatch) {
		t.Errorf("WriteVec3(uTime) error = %v, want ErrComponentMismatch", err)
	}
}

func TestUniformSet(t *testing.T) {
	s := NewUniformSet(
		UniformField{Name: "a", Components: 4},
		UniformField{Name: "c", Components: 1},
	)

	first, err := s.Layout()
	if err != nil {
		t.Fatal(err)
	}
	if off, _ := first.Offset("c"); off != 16 {
		t.Errorf("Offset(c) = %d, want 16", off)
	}

	if err := s.InsertBefore("c", UniformField{Name: "b", Components: 2}); err != nil {
		t.Fatal(err)
	}
	if err := s.InsertAfter("c", UniformField{Name: "d", Components: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.Append(UniformField{Name: "e", Components: 16}); err != nil {
		t.Fatal(err)
	}

	ul, err := s.Layout()
	if err != nil {
		t.Fatal(err)
	}
	wantOrder := []string{"a", "b", "c", "d", "e"}
	wantOffsets := []int{0, 4, 6, 7, 8}
	fields := ul.Fields()
	if len(fields) != len(wantOrder) {
		t.Fatalf("got %d fields, want %d", len(fields), len(wantOrder))
	}
	for i, f := range fields {
		if f.Name != wantOrder[i] || f.Offset != wantOffsets[i] {
			t.Errorf("fields[%d] = %s@%d, want %s@%d", i, f.Name, f.Offset, wantOrder[i], wantOffsets[i])
		}
	}
	if ul.Size() != 96 {
		t.Errorf("Size() = %d, want 96", ul.Size())
	}

	if err := s.Remove("b"); err != nil {
		t.Fatal(err)
	}
	ul, err = s.Layout()
	if err != nil {
		t.Fatal(err)
	}
	if off, _ := ul.Offset("c"); off != 16 {
		t.Errorf("Offset(c) after remove = %d, want 16", off)
	}
	if _, err := ul.Field("b"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Field(b) after remove error = %v", err)
	}
}

func TestUniformSetErrors(t *testing.T) {
	s := NewUniformSet(UniformField{Name: "a", Components: 1})
	if err := s.Append(UniformField{Name: "a", Components: 1}); !errors.Is(err, ErrDuplicateField) {
		t.Errorf("Append(dup) error = %v", err)
	}
	if err := s.InsertBefore("zz", UniformField{Name: "b", Components: 1}); !errors.Is(err, ErrUnknownField) {
		t.Errorf("InsertBefore(unknown) error = %v", err)
	}
	if err := s.InsertAfter("zz", UniformField{Name: "b", Components: 1}); !errors.Is(err, ErrUnknownField) {
		t.Errorf("InsertAfter(unknown) error = %v", err)
	}
	if err := s.Remove("zz"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Remove(unknown) error = %v", err)
	}
	if err := s.Remove("a"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Layout(); !errors.Is(err, ErrNoFields) {
		t.Errorf("Layout() of empty set error = %v, want ErrNoFields", err)
	}
}

func TestUniformWGSL(t *testing.T) {
	ul, err := PackUniforms(DefaultUniformFields())
	if err != nil {
		t.Fatal(err)
	}
	src := ul.WGSL("Uniforms", "u", 0, 0)
	for _, want := range []string{
		"data: array<vec4<f32>, 16>,",
		"@group(0) @binding(0) var<uniform> u: Uniforms;",
		"fn load_viewMatrix() -> mat4x4<f32> {\n    return mat4x4<f32>(u.data[4], u.data[5], u.data[6], u.data[7]);",
		"fn load_cameraPosition() -> vec4<f32> {\n    return vec4<f32>(u.data[12].x, u.data[12].y, u.data[12].z, u.data[12].w);",
		"fn load_canvasSize() -> vec2<f32> {\n    return vec2<f32>(u.data[13].x, u.data[13].y);",
		"fn load_uTime() -> f32 {\n    return u.data[14].y;",
		"fn load_uLightIntensity() -> f32 {\n    return u.data[15].x;",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("WGSL() missing %q in:\n%s", want, src)
		}
	}
}

func TestMemorySink(t *testing.T) {
	sink := NewMemorySink()
	if _, ok := sink.Float32("u", 0); ok {
		t.Error("Float32() on empty buffer reported ok")
	}
	sink.WriteBuffer("u", 8, common.Float32Bytes(5))
	if got := len(sink.Bytes("u")); got != 12 {
		t.Errorf("len after sparse write = %d, want 12", got)
	}
	sink.WriteBuffer("u", 0, common.Float32Bytes(1))
	if got := len(sink.Bytes("u")); got != 12 {
		t.Errorf("len after inner write = %d, want 12", got)
	}
	if v, _ := sink.Float32("u", 8); v != 5 {
		t.Errorf("Float32(8) = %v, want 5", v)
	}
	if sink.Writes() != 2 {
		t.Errorf("Writes() = %d, want 2", sink.Writes())
	}
}
