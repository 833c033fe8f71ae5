package utils

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var trsTests = []struct {
	translation mgl32.Vec3
	scale       mgl32.Vec3
	in          mgl32.Vec3
	out         mgl32.Vec3
}{
	{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 2, 3}, mgl32.Vec3{1, 2, 3}},
	{mgl32.Vec3{5, 0, 0}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{6, 0, 0}},
	{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 3, 4}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{2, 3, 4}},
	{mgl32.Vec3{1, 1, 1}, mgl32.Vec3{2, 2, 2}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{3, 1, 1}},
}

func TestTRSToMat4(t *testing.T) {
	for _, test := range trsTests {
		m := TRSToMat4(test.translation, mgl32.Vec3{}, test.scale)
		got := TransformPosition(m, test.in)
		if got.Sub(test.out).Len() > 1e-5 {
			t.Errorf("TRS(%v,%v) * %v = %v; expected %v",
				test.translation, test.scale, test.in, got, test.out)
		}
	}
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	m := mgl32.Scale3D(2, 1, 1)
	nm := NormalMatrix(m)

	in := mgl32.Vec3{1, 1, 0}.Normalize()
	got := TransformNormal(nm, in)
	expected := mgl32.Vec3{0.5, 1, 0}.Normalize()
	if got.Sub(expected).Len() > 1e-5 {
		t.Errorf("Normal %v transformed to %v, expected %v", in, got, expected)
	}
}

func TestTransformNormalZeroLength(t *testing.T) {
	nm := NormalMatrix(mgl32.Ident4())
	if got := TransformNormal(nm, mgl32.Vec3{}); got != (mgl32.Vec3{}) {
		t.Errorf("Zero normal transformed to %v", got)
	}
}
