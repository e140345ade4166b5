package frame

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func TestTrans(t *testing.T) {
	f := Trans(10, -20, 30)
	assert.Equal(t, r3.Vector{X: 10, Y: -20, Z: 30}, f.Translation())
	assert.Equal(t, 1.0, f.RotationAt(0, 0))
	assert.Equal(t, 0.0, f.RotationAt(0, 1))
}

func TestRotZMapsXToY(t *testing.T) {
	f := RotZ(90)
	got := f.Apply(r3.Vector{X: 1})
	assert.InDelta(t, 0, got.X, tol)
	assert.InDelta(t, 1, got.Y, tol)
	assert.InDelta(t, 0, got.Z, tol)
}

func TestRotXMapsYToZ(t *testing.T) {
	got := RotX(90).Apply(r3.Vector{Y: 1})
	assert.InDelta(t, 0, got.Y, tol)
	assert.InDelta(t, 1, got.Z, tol)
}

func TestRotYMapsZToX(t *testing.T) {
	got := RotY(90).Apply(r3.Vector{Z: 1})
	assert.InDelta(t, 1, got.X, tol)
	assert.InDelta(t, 0, got.Z, tol)
}

func TestComposeOrderMatters(t *testing.T) {
	a := Trans(100, 0, 0).Compose(RotZ(90))
	b := RotZ(90).Compose(Trans(100, 0, 0))
	assert.False(t, a.ApproxEqual(b, tol))

	// b's translation is the rotated offset.
	assert.InDelta(t, 0, b.Translation().X, tol)
	assert.InDelta(t, 100, b.Translation().Y, tol)
}

func TestComposeAssociative(t *testing.T) {
	a := Trans(1, 2, 3).Compose(RotX(30))
	b := RotY(45).Compose(Trans(-5, 0, 7))
	c := RotZ(-60)
	left := Compose(Compose(a, b), c)
	right := Compose(a, Compose(b, c))
	assert.True(t, left.ApproxEqual(right, tol))
}

func TestInvertRoundTrip(t *testing.T) {
	frames := []Frame{
		Identity(),
		Trans(12, -7, 3),
		RotZ(37),
		Trans(100, 50, -20).Compose(RotY(180)).Compose(RotZ(-90)),
		RotX(12).Compose(RotY(-34)).Compose(Trans(0, 187, 216)),
	}
	for _, f := range frames {
		assert.True(t, f.Compose(f.Invert()).ApproxEqual(Identity(), tol))
		assert.True(t, f.Invert().Compose(f).ApproxEqual(Identity(), tol))
	}
}

func TestInvertOfCompose(t *testing.T) {
	a := Trans(5, 10, 15).Compose(RotZ(25))
	b := RotY(110).Compose(Trans(-3, 6, 9))

	// inv(A·B) == inv(B)·inv(A)
	want := Invert(Compose(a, b))
	got := Compose(Invert(b), Invert(a))
	assert.True(t, got.ApproxEqual(want, tol))
}

func TestInvertTranslation(t *testing.T) {
	f := RotZ(90).Compose(Trans(10, 0, 0))
	inv := f.Invert()

	// Mapping a point through f then inv must be the identity.
	p := r3.Vector{X: 3, Y: -4, Z: 5}
	back := inv.Apply(f.Apply(p))
	assert.InDelta(t, p.X, back.X, tol)
	assert.InDelta(t, p.Y, back.Y, tol)
	assert.InDelta(t, p.Z, back.Z, tol)
}

func TestRotationStaysOrthonormal(t *testing.T) {
	f := RotX(33).Compose(RotY(-71)).Compose(RotZ(128)).Compose(RotX(5))
	for i := 0; i < 3; i++ {
		var norm float64
		for j := 0; j < 3; j++ {
			norm += f.RotationAt(j, i) * f.RotationAt(j, i)
		}
		assert.InDelta(t, 1, math.Sqrt(norm), tol, "column %d", i)
	}
}

func TestApproachAxis(t *testing.T) {
	require.Equal(t, r3.Vector{Z: 1}, Identity().ApproachAxis())

	a := RotY(180).ApproachAxis()
	assert.InDelta(t, 0, a.X, tol)
	assert.InDelta(t, -1, a.Z, tol)
}
