package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2_Distances(t *testing.T) {
	a := Vec2{X: 5, Y: 5}
	b := Vec2{X: 8, Y: 9}

	assert.Equal(t, 5.0, a.DistanceTo(b), "Евклидово расстояние 3-4-5")
	assert.Equal(t, Vec2{X: 13, Y: 14}, a.Add(b))
	assert.Equal(t, Vec2{X: -3, Y: -4}, a.Sub(b))
}

func TestVec2Float_ApproxEqual(t *testing.T) {
	p := Vec2Float{X: 10, Y: 4}

	assert.True(t, p.ApproxEqual(Vec2Float{X: 10.05, Y: 3.95}, 0.1))
	assert.False(t, p.ApproxEqual(Vec2Float{X: 10.2, Y: 4}, 0.1))
	assert.Equal(t, p, FromVec2(Vec2{X: 10, Y: 4}))
}

func TestLift(t *testing.T) {
	got := Lift(Vec2{X: 2, Y: 7}, 3.14)
	assert.Equal(t, Vec3Float{X: 2.5, Y: 7.5, Z: 3.14}, got)
}
