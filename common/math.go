package common

import (
	"encoding/binary"
	"math"
)

// Mat4 is a 4x4 float32 matrix stored in column-major order (OpenGL/WebGPU convention).
// Element (row r, column c) lives at index c*4+r.
type Mat4 [16]float32

// Vec3 is a three component float32 vector.
type Vec3 [3]float32

// Identity returns the 4x4 identity matrix.
//
// Returns:
//   - Mat4: the identity matrix
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies two 4x4 matrices.
// Result: m * b
//
// Parameters:
//   - b: right-hand matrix
//
// Returns:
//   - Mat4: the product
func (m Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += m[k*4+j] * b[i*4+k]
			}
			out[i*4+j] = sum
		}
	}
	return out
}

// Column returns the first three rows of column c.
//
// Parameters:
//   - c: column index (0-3)
//
// Returns:
//   - Vec3: the column's xyz components
func (m Mat4) Column(c int) Vec3 {
	return Vec3{m[c*4], m[c*4+1], m[c*4+2]}
}

// Translation returns the translation part (column 3) of an affine matrix.
func (m Mat4) Translation() Vec3 {
	return m.Column(3)
}

// IsFinite reports whether every element is neither NaN nor infinite.
func (m Mat4) IsFinite() bool {
	for _, v := range m {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// ApproxEqual reports whether every element of m is within eps of o.
//
// Parameters:
//   - o: matrix to compare against
//   - eps: absolute per-element tolerance
//
// Returns:
//   - bool: true if all elements match within eps
func (m Mat4) ApproxEqual(o Mat4, eps float32) bool {
	for i := range m {
		if Abs(m[i]-o[i]) > eps {
			return false
		}
	}
	return true
}

// Bytes serializes the matrix into a little-endian byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64 bytes in column-major order
func (m Mat4) Bytes() []byte {
	return Float32Bytes(m[:]...)
}

// Invert computes the inverse of the matrix using the Laplace expansion (cofactor) method.
// If the matrix is singular (determinant == 0 or not finite) the zero matrix is returned with false.
//
// Returns:
//   - Mat4: the inverse matrix
//   - bool: true if the matrix was successfully inverted, false if singular
func (m Mat4) Invert() (Mat4, bool) {
	// 2x2 sub-determinants of the upper-left and lower-right quadrants.
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 || math.IsNaN(float64(det)) || math.IsInf(float64(det), 0) {
		return Mat4{}, false
	}

	invDet := 1.0 / det
	var out Mat4

	out[0] = (m[5]*c5 - m[6]*c4 + m[7]*c3) * invDet
	out[1] = (-m[1]*c5 + m[2]*c4 - m[3]*c3) * invDet
	out[2] = (m[13]*s5 - m[14]*s4 + m[15]*s3) * invDet
	out[3] = (-m[9]*s5 + m[10]*s4 - m[11]*s3) * invDet

	out[4] = (-m[4]*c5 + m[6]*c2 - m[7]*c1) * invDet
	out[5] = (m[0]*c5 - m[2]*c2 + m[3]*c1) * invDet
	out[6] = (-m[12]*s5 + m[14]*s2 - m[15]*s1) * invDet
	out[7] = (m[8]*s5 - m[10]*s2 + m[11]*s1) * invDet

	out[8] = (m[4]*c4 - m[5]*c2 + m[7]*c0) * invDet
	out[9] = (-m[0]*c4 + m[1]*c2 - m[3]*c0) * invDet
	out[10] = (m[12]*s4 - m[13]*s2 + m[15]*s0) * invDet
	out[11] = (-m[8]*s4 + m[9]*s2 - m[11]*s0) * invDet

	out[12] = (-m[4]*c3 + m[5]*c1 - m[6]*c0) * invDet
	out[13] = (m[0]*c3 - m[1]*c1 + m[2]*c0) * invDet
	out[14] = (-m[12]*s3 + m[13]*s1 - m[14]*s0) * invDet
	out[15] = (m[8]*s3 - m[9]*s1 + m[10]*s0) * invDet

	return out, true
}

// Perspective creates a perspective projection matrix for WebGPU clip space (depth in [0, 1]).
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - Mat4: the projection matrix
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	var out Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view space; the camera looks down -Z.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
//
// Returns:
//   - Mat4: the view matrix
func LookAt(eye, center, up Vec3) Mat4 {
	z := eye.Sub(center).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x)
	return ViewFromBasis(x, y, z, eye)
}

// ViewFromBasis builds the view matrix of a camera whose world pose has the given
// orthonormal right/up/back axes and position. The rotation block is the transposed basis.
//
// Parameters:
//   - right, up, back: camera axes in world space
//   - eye: camera position in world space
//
// Returns:
//   - Mat4: the view matrix
func ViewFromBasis(right, up, back, eye Vec3) Mat4 {
	return Mat4{
		right[0], up[0], back[0], 0,
		right[1], up[1], back[1], 0,
		right[2], up[2], back[2], 0,
		-right.Dot(eye), -up.Dot(eye), -back.Dot(eye), 1,
	}
}

// Float32Bytes encodes the given floats little-endian, four bytes each.
//
// Parameters:
//   - values: floats to encode
//
// Returns:
//   - []byte: the encoded buffer (len(values)*4 bytes)
func Float32Bytes(values ...float32) []byte {
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

// Normalize returns v scaled to unit length. A zero-length vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}
