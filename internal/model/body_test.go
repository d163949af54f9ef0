package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/herdguard/internal/geom"
)

func TestBody_LookAt(t *testing.T) {
	b := NewBody(geom.V3(0, 0, 0))

	b.LookAt(geom.V3(1, 5, 0))
	assert.InDelta(t, math.Pi/2, b.Yaw(), 1e-9)

	// looking at itself keeps the previous yaw
	b.LookAt(geom.V3(0, 3, 0))
	assert.InDelta(t, math.Pi/2, b.Yaw(), 1e-9)
}

func TestBody_BoundingSphere(t *testing.T) {
	b := NewBody(geom.V3(1, 0, 2))

	_, ok := b.BoundingSphere()
	assert.False(t, ok)

	b.WithBounds(0.6, 0.9)
	s, ok := b.BoundingSphere()
	require.True(t, ok)
	assert.Equal(t, geom.V3(1, 0.9, 2), s.Center)
	assert.InDelta(t, 0.6, s.Radius, 1e-9)
}
