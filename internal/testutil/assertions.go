package testutil

import (
	"testing"

	"github.com/udisondev/herdguard/internal/geom"
)

// AssertVecNear проверяет, что два вектора совпадают с точностью eps.
func AssertVecNear(t testing.TB, expected, actual geom.Vec3, eps float64) {
	t.Helper()

	if d := expected.Distance(actual); d > eps {
		t.Fatalf("vector mismatch: expected %v, got %v (distance %.4f > %.4f)", expected, actual, d, eps)
	}
}

// AssertClearOf проверяет, что точка не лежит внутри препятствия,
// расширенного на margin.
func AssertClearOf(t testing.TB, o geom.Obstacle, p geom.Vec3, margin float64) {
	t.Helper()

	if o.Expand(margin).ContainsPoint(p.Ground()) {
		t.Fatalf("point %v lies within %.2f of obstacle %v", p, margin, o.Bounds())
	}
}
