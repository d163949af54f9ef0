package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3_GroundRoundTrip(t *testing.T) {
	v := V3(1.5, 2, -3)
	g := v.Ground()

	assert.InDelta(t, 1.5, g.X, 1e-12)
	assert.InDelta(t, -3.0, g.Y, 1e-12)
	assert.Equal(t, v, FromGround(g, 2))
}

func TestVec3_GroundDistanceIgnoresHeight(t *testing.T) {
	a := V3(0, 0, 0)
	b := V3(3, 10, 4)

	assert.InDelta(t, 5.0, a.GroundDistance(b), 1e-12)
	assert.Greater(t, a.Distance(b), 5.0)
}

func TestHeadingAndForward(t *testing.T) {
	tests := []struct {
		name string
		to   Vec3
		yaw  float64
	}{
		{"+Z", V3(0, 0, 5), 0},
		{"+X", V3(5, 0, 0), math.Pi / 2},
		{"-X", V3(-5, 0, 0), -math.Pi / 2},
		{"-Z", V3(0, 0, -5), math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yaw := V3(0, 0, 0).Heading(tt.to)
			assert.InDelta(t, tt.yaw, yaw, 1e-12)

			fwd := Forward(yaw)
			dir := tt.to.Scale(1 / tt.to.Length())
			assert.InDelta(t, 0, fwd.Distance(dir), 1e-12)
		})
	}
}

func TestSphere_IntersectsTouching(t *testing.T) {
	a := Sphere{Center: V3(0, 0, 0), Radius: 1}

	assert.True(t, a.Intersects(Sphere{Center: V3(0, 2, 0), Radius: 1}))
	assert.False(t, a.Intersects(Sphere{Center: V3(0, 2.01, 0), Radius: 1}))
}
