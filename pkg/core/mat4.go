package core

import "github.com/go-gl/mathgl/mgl64"

// Mat4 is a 4x4 affine transform (rotation, translation, and optionally
// non-uniform scale), used for per-instance world transforms.
type Mat4 struct {
	m mgl64.Mat4
}

// Identity returns the identity transform.
func Identity() Mat4 {
	return Mat4{m: mgl64.Ident4()}
}

// NewMat4FromCols builds a Mat4 from sixteen column-major values, matching
// mgl64's convention.
func NewMat4FromCols(values [16]float64) Mat4 {
	return Mat4{m: mgl64.Mat4(values)}
}

// Translate returns a pure-translation transform.
func Translate(t Vec3) Mat4 {
	return Mat4{m: mgl64.Translate3D(t.X, t.Y, t.Z)}
}

// TRS composes translation, a rotation (as a quaternion-free axis angle
// around Y for convenience in tests/examples), and a non-uniform scale.
func TRS(translation Vec3, rotationRadiansY float64, scale Vec3) Mat4 {
	t := mgl64.Translate3D(translation.X, translation.Y, translation.Z)
	r := mgl64.HomogRotate3DY(rotationRadiansY)
	s := mgl64.Scale3D(scale.X, scale.Y, scale.Z)
	return Mat4{m: t.Mul4(r).Mul4(s)}
}

// Mul returns the composition m*other (apply other first, then m).
func (m Mat4) Mul(other Mat4) Mat4 {
	return Mat4{m: m.m.Mul4(other.m)}
}

// Inverse returns the inverse transform. Callers must not pass a singular
// transform (zero scale on some axis); this is a caller precondition, not a
// runtime failure the core reports, matching spec §7's treatment of
// construction-time invariants versus ordinary failures.
func (m Mat4) Inverse() Mat4 {
	return Mat4{m: m.m.Inv()}
}

// TransformPoint applies the full affine transform (rotation, scale,
// translation) to a point.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	v := m.m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return NewVec3(v[0], v[1], v[2])
}

// TransformVector applies only the linear part (rotation, scale) to a
// direction vector, ignoring translation.
func (m Mat4) TransformVector(v Vec3) Vec3 {
	r := m.m.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0})
	return NewVec3(r[0], r[1], r[2])
}
