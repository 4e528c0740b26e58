package layout

import (
	"errors"
	"strings"
	"testing"
)

func TestPackVertex(t *testing.T) {
	tests := []struct {
		name       string
		descs      []AttributeDescriptor
		wantStride uint64
		want       []VertexAttribute
	}{
		{
			name:       "position only",
			descs:      []AttributeDescriptor{DefaultDescriptor(AttributePosition)},
			wantStride: 12,
			want: []VertexAttribute{
				{Attribute: AttributePosition, Slot: 0, Offset: 0, Format: FormatFloat32x3},
			},
		},
		{
			name: "position and uv",
			descs: []AttributeDescriptor{
				DefaultDescriptor(AttributePosition),
				DefaultDescriptor(AttributeUV),
			},
			wantStride: 20,
			want: []VertexAttribute{
				{Attribute: AttributePosition, Slot: 0, Offset: 0, Format: FormatFloat32x3},
				{Attribute: AttributeUV, Slot: 1, Offset: 12, Format: FormatFloat32x2},
			},
		},
		{
			name: "normal shifts uv",
			descs: []AttributeDescriptor{
				DefaultDescriptor(AttributePosition),
				DefaultDescriptor(AttributeNormal),
				DefaultDescriptor(AttributeUV),
			},
			wantStride: 32,
			want: []VertexAttribute{
				{Attribute: AttributePosition, Slot: 0, Offset: 0, Format: FormatFloat32x3},
				{Attribute: AttributeNormal, Slot: 1, Offset: 12, Format: FormatFloat32x3},
				{Attribute: AttributeUV, Slot: 2, Offset: 24, Format: FormatFloat32x2},
			},
		},
		{
			name: "all attributes out of order",
			descs: []AttributeDescriptor{
				DefaultDescriptor(AttributeUV),
				DefaultDescriptor(AttributeColor),
				DefaultDescriptor(AttributeNormal),
				DefaultDescriptor(AttributePosition),
			},
			wantStride: 48,
			want: []VertexAttribute{
				{Attribute: AttributePosition, Slot: 0, Offset: 0, Format: FormatFloat32x3},
				{Attribute: AttributeNormal, Slot: 1, Offset: 12, Format: FormatFloat32x3},
				{Attribute: AttributeColor, Slot: 2, Offset: 24, Format: FormatFloat32x4},
				{Attribute: AttributeUV, Slot: 3, Offset: 40, Format: FormatFloat32x2},
			},
		},
		{
			name: "absent attributes take no space",
			descs: []AttributeDescriptor{
				DefaultDescriptor(AttributePosition),
				{Attribute: AttributeNormal, Present: false, Components: 3},
				{Attribute: AttributeColor, Present: true, Components: 3},
			},
			wantStride: 24,
			want: []VertexAttribute{
				{Attribute: AttributePosition, Slot: 0, Offset: 0, Format: FormatFloat32x3},
				{Attribute: AttributeColor, Slot: 1, Offset: 12, Format: FormatFloat32x3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vl, err := PackVertex(tt.descs)
			if err != nil {
				t.Fatalf("PackVertex() error = %v", err)
			}
			if vl.Stride != tt.wantStride {
				t.Errorf("Stride = %d, want %d", vl.Stride, tt.wantStride)
			}
			if len(vl.Attributes) != len(tt.want) {
				t.Fatalf("got %d attributes, want %d", len(vl.Attributes), len(tt.want))
			}
			for i, want := range tt.want {
				if vl.Attributes[i] != want {
					t.Errorf("Attributes[%d] = %+v, want %+v", i, vl.Attributes[i], want)
				}
			}
		})
	}
}

func TestPackVertexDeterministic(t *testing.T) {
	descs := []AttributeDescriptor{DefaultDescriptor(AttributeUV), DefaultDescriptor(AttributePosition)}
	a, err := PackVertex(descs)
	if err != nil {
		t.Fatal(err)
	}
	b, err := PackVertex([]AttributeDescriptor{descs[1], descs[0]})
	if err != nil {
		t.Fatal(err)
	}
	if a.Stride != b.Stride || len(a.Attributes) != len(b.Attributes) {
		t.Fatalf("layouts differ: %+v vs %+v", a, b)
	}
	for i := range a.Attributes {
		if a.Attributes[i] != b.Attributes[i] {
			t.Errorf("Attributes[%d]: %+v vs %+v", i, a.Attributes[i], b.Attributes[i])
		}
	}
}

func TestPackVertexErrors(t *testing.T) {
	tests := []struct {
		name  string
		descs []AttributeDescriptor
		want  error
	}{
		{name: "empty", descs: nil, want: ErrMissingPosition},
		{name: "no position", descs: []AttributeDescriptor{DefaultDescriptor(AttributeUV)}, want: ErrMissingPosition},
		{
			name:  "position not present",
			descs: []AttributeDescriptor{{Attribute: AttributePosition, Present: false, Components: 3}},
			want:  ErrMissingPosition,
		},
		{
			name:  "duplicate",
			descs: []AttributeDescriptor{DefaultDescriptor(AttributePosition), DefaultDescriptor(AttributePosition)},
			want:  ErrDuplicateAttribute,
		},
		{
			name: "zero components",
			descs: []AttributeDescriptor{
				DefaultDescriptor(AttributePosition),
				{Attribute: AttributeNormal, Present: true},
			},
			want: ErrInvalidComponents,
		},
		{
			name:  "five components",
			descs: []AttributeDescriptor{{Attribute: AttributePosition, Present: true, Components: 5}},
			want:  ErrInvalidComponents,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := PackVertex(tt.descs); !errors.Is(err, tt.want) {
				t.Errorf("PackVertex() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestVertexLayoutLookup(t *testing.T) {
	vl, err := PackVertex([]AttributeDescriptor{DefaultDescriptor(AttributePosition), DefaultDescriptor(AttributeUV)})
	if err != nil {
		t.Fatal(err)
	}
	if !vl.Has(AttributeUV) || vl.Has(AttributeNormal) {
		t.Errorf("Has() mismatch: uv=%v normal=%v", vl.Has(AttributeUV), vl.Has(AttributeNormal))
	}
	uv, ok := vl.Attribute(AttributeUV)
	if !ok || uv.Offset != 12 || uv.Slot != 1 {
		t.Errorf("Attribute(uv) = %+v, %v", uv, ok)
	}
}

func TestWGSLInput(t *testing.T) {
	vl, err := PackVertex([]AttributeDescriptor{
		DefaultDescriptor(AttributePosition),
		DefaultDescriptor(AttributeNormal),
		DefaultDescriptor(AttributeUV),
	})
	if err != nil {
		t.Fatal(err)
	}
	src := vl.WGSLInput("VertexInput")
	for _, want := range []string{
		"struct VertexInput {",
		"@location(0) position: vec3<f32>,",
		"@location(1) normal: vec3<f32>,",
		"@location(2) uv: vec2<f32>,",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("WGSLInput() missing %q in:\n%s", want, src)
		}
	}
	if strings.Contains(src, "color") {
		t.Errorf("WGSLInput() declares an absent attribute:\n%s", src)
	}
}

func TestFormat(t *testing.T) {
	if FormatFloat32x3.Size() != 12 || FormatFloat32x3.Components() != 3 {
		t.Errorf("Float32x3 size/components = %d/%d", FormatFloat32x3.Size(), FormatFloat32x3.Components())
	}
	if FormatFloat32.WGSLType() != "f32" || FormatFloat32x4.WGSLType() != "vec4<f32>" {
		t.Errorf("WGSLType() = %s, %s", FormatFloat32.WGSLType(), FormatFloat32x4.WGSLType())
	}
}
