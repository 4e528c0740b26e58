package model

import (
	"fmt"
	"maps"
	"math"
	"sync"
)

// Mesh names understood by the procedural loader.
const (
	MeshCone = "cone"
	MeshCube = "cube"
)

// Loader resolves a mesh by name.
type Loader interface {
	// Load returns the mesh registered under name, building it on first use.
	//
	// Parameters:
	//   - name: the mesh name
	//
	// Returns:
	//   - *Mesh: the mesh
	//   - error: ErrUnknownMesh if no mesh has that name
	Load(name string) (*Mesh, error)

	// Get returns a previously loaded mesh, or nil.
	Get(name string) *Mesh

	// Meshes returns every loaded mesh keyed by name.
	Meshes() map[string]*Mesh
}

// proceduralLoader builds meshes in code and caches them by name.
type proceduralLoader struct {
	mu sync.RWMutex

	segments   int
	coneRadius float32
	coneHeight float32
	cubeSize   float32
	color      *[4]float32

	cache map[string]*Mesh
}

var _ Loader = &proceduralLoader{}

// NewProceduralLoader creates a Loader that generates the light-beam cone and a unit cube.
//
// Parameters:
//   - options: ProceduralBuilderOption functions to configure the generated geometry
//
// Returns:
//   - Loader: the loader
func NewProceduralLoader(options ...ProceduralBuilderOption) Loader {
	l := &proceduralLoader{
		segments:   32,
		coneRadius: 1,
		coneHeight: 2,
		cubeSize:   1,
		cache:      make(map[string]*Mesh),
	}
	for _, option := range options {
		option(l)
	}
	return l
}

func (l *proceduralLoader) Load(name string) (*Mesh, error) {
	l.mu.RLock()
	m, ok := l.cache[name]
	l.mu.RUnlock()
	if ok {
		return m, nil
	}

	switch name {
	case MeshCone:
		m = l.buildCone()
	case MeshCube:
		m = l.buildCube()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMesh, name)
	}
	if l.color != nil {
		m.ColorComponents = 4
		m.Colors = make([]float32, 0, m.VertexCount()*4)
		for range m.VertexCount() {
			m.Colors = append(m.Colors, l.color[:]...)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.cache[name]; ok {
		return cached, nil
	}
	l.cache[name] = m
	return m, nil
}

func (l *proceduralLoader) Get(name string) *Mesh {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cache[name]
}

func (l *proceduralLoader) Meshes() map[string]*Mesh {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return maps.Clone(l.cache)
}

// buildCone generates a capped cone with its apex at the origin, opening down -Y.
// The side carries slant normals with u around the rim and v from apex (0) to base (1);
// the base cap faces -Y.
func (l *proceduralLoader) buildCone() *Mesh {
	m := NewMesh(MeshCone)
	n := l.segments
	r, h := l.coneRadius, l.coneHeight
	slant := float32(math.Sqrt(float64(r*r + h*h)))

	// side: apex and base rings, n+1 columns so the seam gets its own uv
	for i := 0; i <= n; i++ {
		u := float32(i) / float32(n)
		theta := 2 * math.Pi * float64(u)
		c, s := float32(math.Cos(theta)), float32(math.Sin(theta))
		nx, ny, nz := h*c/slant, r/slant, h*s/slant

		m.Positions = append(m.Positions, 0, 0, 0, r*c, -h, r*s)
		m.Normals = append(m.Normals, nx, ny, nz, nx, ny, nz)
		m.UVs = append(m.UVs, u, 0, u, 1)
	}
	for i := range n {
		apex, base := uint32(2*i), uint32(2*i+1)
		m.Indices = append(m.Indices, apex, base+2, base)
	}

	// cap
	center := uint32(m.VertexCount())
	m.Positions = append(m.Positions, 0, -h, 0)
	m.Normals = append(m.Normals, 0, -1, 0)
	m.UVs = append(m.UVs, 0.5, 0.5)
	for i := 0; i <= n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		c, s := float32(math.Cos(theta)), float32(math.Sin(theta))
		m.Positions = append(m.Positions, r*c, -h, r*s)
		m.Normals = append(m.Normals, 0, -1, 0)
		m.UVs = append(m.UVs, 0.5+0.5*c, 0.5+0.5*s)
	}
	for i := range n {
		ring := center + 1 + uint32(i)
		m.Indices = append(m.Indices, center, ring, ring+1)
	}
	return m
}

// cubeFaces lists each face as its normal followed by the two in-plane axes used for corners.
var cubeFaces = [6][3][3]float32{
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
}

// buildCube generates an axis-aligned cube centered on the origin with four vertices per face.
func (l *proceduralLoader) buildCube() *Mesh {
	m := NewMesh(MeshCube)
	half := l.cubeSize / 2
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	for _, f := range cubeFaces {
		normal, uAxis, vAxis := f[0], f[1], f[2]
		first := uint32(m.VertexCount())
		for _, c := range corners {
			for k := range 3 {
				m.Positions = append(m.Positions, half*(normal[k]+c[0]*uAxis[k]+c[1]*vAxis[k]))
			}
			m.Normals = append(m.Normals, normal[:]...)
			m.UVs = append(m.UVs, (c[0]+1)/2, (1-c[1])/2)
		}
		m.Indices = append(m.Indices, first, first+1, first+2, first, first+2, first+3)
	}
	return m
}
