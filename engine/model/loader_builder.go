package model

// ProceduralBuilderOption is a functional option for configuring a Loader via NewProceduralLoader.
type ProceduralBuilderOption func(*proceduralLoader)

// WithSegments sets how many segments the cone rim is divided into. Values below 3 are ignored.
//
// Parameters:
//   - n: the segment count
//
// Returns:
//   - ProceduralBuilderOption: a function that applies the segment option to a loader
func WithSegments(n int) ProceduralBuilderOption {
	return func(l *proceduralLoader) {
		if n >= 3 {
			l.segments = n
		}
	}
}

// WithConeSize sets the base radius and height of the cone.
//
// Parameters:
//   - radius: base radius
//   - height: apex to base distance
//
// Returns:
//   - ProceduralBuilderOption: a function that applies the size option to a loader
func WithConeSize(radius, height float32) ProceduralBuilderOption {
	return func(l *proceduralLoader) {
		l.coneRadius = radius
		l.coneHeight = height
	}
}

// WithCubeSize sets the cube edge length.
func WithCubeSize(size float32) ProceduralBuilderOption {
	return func(l *proceduralLoader) {
		l.cubeSize = size
	}
}

// WithVertexColor adds an RGBA color channel, set to rgba on every vertex.
func WithVertexColor(rgba [4]float32) ProceduralBuilderOption {
	return func(l *proceduralLoader) {
		l.color = &rgba
	}
}

// WithMesh pre-populates the cache so Load(key) returns m.
//
// Parameters:
//   - key: the mesh name
//   - m: the mesh to cache
//
// Returns:
//   - ProceduralBuilderOption: a function that applies the mesh option to a loader
func WithMesh(key string, m *Mesh) ProceduralBuilderOption {
	return func(l *proceduralLoader) {
		l.cache[key] = m
	}
}
