package model

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-lumen/engine/layout"

	"github.com/google/uuid"
)

var (
	ErrMissingPosition  = errors.New("mesh has no positions")
	ErrAttributeCount   = errors.New("attribute count does not match vertex count")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrMissingAttribute = errors.New("layout requires an attribute the mesh does not have")
	ErrUnknownMesh      = errors.New("unknown mesh")
)

// Mesh is CPU-side geometry as produced by a Loader. Attribute slices are flat float32 arrays;
// optional attributes are nil when absent.
type Mesh struct {
	ID   uuid.UUID
	Name string

	Positions []float32 // 3 per vertex
	Normals   []float32 // 3 per vertex
	Colors    []float32 // ColorComponents per vertex
	UVs       []float32 // 2 per vertex

	// ColorComponents is 3 or 4. Zero means the layout default.
	ColorComponents int

	Indices []uint32
}

// NewMesh creates an empty mesh with a fresh ID.
//
// Parameters:
//   - name: the mesh name
//
// Returns:
//   - *Mesh: the mesh
func NewMesh(name string) *Mesh {
	return &Mesh{ID: uuid.New(), Name: name}
}

// VertexCount returns the number of vertices, derived from the positions.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// colorComponents returns the effective color width.
func (m *Mesh) colorComponents() int {
	if m.ColorComponents == 0 {
		return layout.DefaultComponents(layout.AttributeColor)
	}
	return m.ColorComponents
}

// Validate checks attribute lengths against the vertex count and that every index references
// an existing vertex.
//
// Returns:
//   - error: ErrMissingPosition, ErrAttributeCount or ErrIndexOutOfRange
func (m *Mesh) Validate() error {
	if len(m.Positions) == 0 || len(m.Positions)%3 != 0 {
		return fmt.Errorf("%w: %s has %d position floats", ErrMissingPosition, m.Name, len(m.Positions))
	}
	n := m.VertexCount()

	check := func(attr layout.Attribute, data []float32, width int) error {
		if data == nil {
			return nil
		}
		if len(data) != n*width {
			return fmt.Errorf("%w: %s %s has %d floats, want %d", ErrAttributeCount, m.Name, attr, len(data), n*width)
		}
		return nil
	}
	if err := check(layout.AttributeNormal, m.Normals, 3); err != nil {
		return err
	}
	if m.Colors != nil {
		if cc := m.colorComponents(); cc < 1 || cc > 4 {
			return fmt.Errorf("%w: %s color has %d components", layout.ErrInvalidComponents, m.Name, cc)
		}
	}
	if err := check(layout.AttributeColor, m.Colors, m.colorComponents()); err != nil {
		return err
	}
	if err := check(layout.AttributeUV, m.UVs, 2); err != nil {
		return err
	}

	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: %s index %d is %d, vertex count %d", ErrIndexOutOfRange, m.Name, i, idx, n)
		}
	}
	return nil
}

// Attributes describes which vertex channels the mesh carries.
func (m *Mesh) Attributes() []layout.AttributeDescriptor {
	return []layout.AttributeDescriptor{
		layout.DefaultDescriptor(layout.AttributePosition),
		{Attribute: layout.AttributeNormal, Present: m.Normals != nil, Components: 3},
		{Attribute: layout.AttributeColor, Present: m.Colors != nil, Components: m.colorComponents()},
		{Attribute: layout.AttributeUV, Present: m.UVs != nil, Components: 2},
	}
}

// Layout packs the mesh's own attributes into a vertex layout.
func (m *Mesh) Layout() (layout.VertexLayout, error) {
	return layout.PackVertex(m.Attributes())
}

// Interleave packs the vertex data into a single buffer following vl: vertex i starts at
// i*Stride and each attribute sits at its layout offset.
//
// Parameters:
//   - vl: the vertex layout to follow
//
// Returns:
//   - []byte: little-endian float32 vertex data
//   - error: validation errors, or ErrMissingAttribute if vl names a channel the mesh lacks
func (m *Mesh) Interleave(vl layout.VertexLayout) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	n := m.VertexCount()
	buf := make([]byte, uint64(n)*vl.Stride)
	for _, va := range vl.Attributes {
		src, width := m.channel(va.Attribute)
		if src == nil {
			return nil, fmt.Errorf("%w: %s %s", ErrMissingAttribute, m.Name, va.Attribute)
		}
		comps := va.Format.Components()
		if comps > width {
			return nil, fmt.Errorf("%w: %s %s has %d components, layout wants %d", layout.ErrInvalidComponents, m.Name, va.Attribute, width, comps)
		}
		for v := range n {
			base := uint64(v)*vl.Stride + va.Offset
			for c := range comps {
				binary.LittleEndian.PutUint32(buf[base+uint64(c)*4:], math.Float32bits(src[v*width+c]))
			}
		}
	}
	return buf, nil
}

// IndexBytes encodes the indices as little-endian uint32.
func (m *Mesh) IndexBytes() []byte {
	buf := make([]byte, len(m.Indices)*4)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

// channel returns the flat data and per-vertex width of an attribute.
func (m *Mesh) channel(a layout.Attribute) ([]float32, int) {
	switch a {
	case layout.AttributePosition:
		return m.Positions, 3
	case layout.AttributeNormal:
		return m.Normals, 3
	case layout.AttributeColor:
		return m.Colors, m.colorComponents()
	case layout.AttributeUV:
		return m.UVs, 2
	}
	return nil, 0
}
