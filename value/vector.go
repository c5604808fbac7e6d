// Package value holds the Go representations of the typedkv logical types
// that have no native store slot: the float vectors and the array variants.
package value

import "math"

// Vector2 is a two-component float vector.
type Vector2 struct {
	X, Y float32
}

// Vector3 is a three-component float vector.
type Vector3 struct {
	X, Y, Z float32
}

// Quaternion is a rotation stored in x, y, z, w order.
type Quaternion struct {
	X, Y, Z, W float32
}

// Color is an RGBA color with float channels.
type Color struct {
	R, G, B, A float32
}

// IdentityQuaternion is the no-rotation quaternion (0, 0, 0, 1).
var IdentityQuaternion = Quaternion{W: 1}

// Components returns the vector's components in wire order.
func (v Vector2) Components() []float32 { return []float32{v.X, v.Y} }

// Components returns the vector's components in wire order.
func (v Vector3) Components() []float32 { return []float32{v.X, v.Y, v.Z} }

// Components returns the quaternion's components in wire order.
func (q Quaternion) Components() []float32 { return []float32{q.X, q.Y, q.Z, q.W} }

// Components returns the color's channels in wire order.
func (c Color) Components() []float32 { return []float32{c.R, c.G, c.B, c.A} }

// Norm returns the Euclidean length of the quaternion's four components.
func (q Quaternion) Norm() float64 {
	return Norm4(q.X, q.Y, q.Z, q.W)
}

// Norm4 returns the Euclidean length of four components.
func Norm4(a, b, c, d float32) float64 {
	fa, fb, fc, fd := float64(a), float64(b), float64(c), float64(d)

	return math.Sqrt(fa*fa + fb*fb + fc*fc + fd*fd)
}
