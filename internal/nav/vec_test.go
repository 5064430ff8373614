package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: -2, Z: 0.5}

	assert.Equal(t, Vec3{X: 5, Y: 0, Z: 3.5}, a.Add(b))
	assert.Equal(t, Vec3{X: -3, Y: 4, Z: 2.5}, a.Sub(b))
	assert.Equal(t, Vec3{X: 2, Y: 4, Z: 6}, a.Scale(2))
}

func TestVec3Length(t *testing.T) {
	assert.Equal(t, 0.0, Vec3{}.Length())
	assert.InDelta(t, 5.0, Vec3{X: 3, Z: 4}.Length(), 1e-9)
	assert.InDelta(t, 13.0, Vec3{X: 3, Y: 4, Z: 12}.Length(), 1e-9)
}

func TestVec3DistXZIgnoresY(t *testing.T) {
	a := Vec3{X: 0, Y: 100, Z: 0}
	b := Vec3{X: 3, Y: -50, Z: 4}

	assert.InDelta(t, 5.0, a.DistXZ(b), 1e-9)
	assert.InDelta(t, 5.0, b.DistXZ(a), 1e-9)
}
