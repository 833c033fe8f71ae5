package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// TRSToMat4 composes translation, rotation (euler radians, XYZ order) and
// scale into a single affine matrix.
func TRSToMat4(translation, rotation, scale mgl32.Vec3) mgl32.Mat4 {
	t := mgl32.Translate3D(translation.X(), translation.Y(), translation.Z())
	r := mgl32.AnglesToQuat(rotation.X(), rotation.Y(), rotation.Z(), mgl32.XYZ).Mat4()
	s := mgl32.Scale3D(scale.X(), scale.Y(), scale.Z())
	return t.Mul4(r).Mul4(s)
}

// NormalMatrix returns the inverse-transpose of the upper 3x3 of m.
// Normals transformed by it stay perpendicular under non-uniform scale.
func NormalMatrix(m mgl32.Mat4) mgl32.Mat3 {
	return m.Mat3().Inv().Transpose()
}

func TransformPosition(m mgl32.Mat4, v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(v, m)
}

// TransformNormal applies a precomputed normal matrix and renormalizes.
// Zero-length normals pass through untouched.
func TransformNormal(nm mgl32.Mat3, n mgl32.Vec3) mgl32.Vec3 {
	t := nm.Mul3x1(n)
	if t.Len() > 0 {
		return t.Normalize()
	}
	return n
}

func DegreeToRadians(deg float32) float32 {
	return deg * (math.Pi / 180.0)
}

func DegreeToRadiansV3(v mgl32.Vec3) mgl32.Vec3 {
	return v.Mul(math.Pi / 180.0)
}

func Vec3SliceToArrays(in []mgl32.Vec3) [][3]float32 {
	out := make([][3]float32, len(in))
	for i, v := range in {
		out[i] = [3]float32{v.X(), v.Y(), v.Z()}
	}
	return out
}

func Vec2SliceToArrays(in []mgl32.Vec2) [][2]float32 {
	out := make([][2]float32, len(in))
	for i, v := range in {
		out[i] = [2]float32{v.X(), v.Y()}
	}
	return out
}
