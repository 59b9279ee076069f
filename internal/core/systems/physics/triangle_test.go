package physics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTriangle_Barycentric(t *testing.T) {
	tri := NewTriangle(Point{X: 0, Y: 0}, Point{X: 3, Y: 0}, Point{X: 0, Y: 3})

	t.Run("Centroid", func(t *testing.T) {
		alpha, beta, gamma, ok := tri.Barycentric(tri.Centroid())
		require.True(t, ok)
		require.Greater(t, alpha, float32(0))
		require.Greater(t, beta, float32(0))
		require.Greater(t, gamma, float32(0))
		require.InDelta(t, 1, alpha+beta+gamma, 1e-6)
	})

	t.Run("Vertex", func(t *testing.T) {
		alpha, beta, gamma, ok := tri.Barycentric(tri.A)
		require.True(t, ok)
		require.InDelta(t, 1, alpha, 1e-6)
		require.InDelta(t, 0, beta, 1e-6)
		require.InDelta(t, 0, gamma, 1e-6)
	})

	t.Run("Degenerate", func(t *testing.T) {
		flat := NewTriangle(Point{X: 0, Y: 0}, Point{X: 1, Y: 1}, Point{X: 2, Y: 2})
		_, _, _, ok := flat.Barycentric(Point{X: 1, Y: 1})
		require.False(t, ok)
		require.False(t, flat.Contains(Point{X: 1, Y: 1}))
	})
}

func TestTriangle_Contains(t *testing.T) {
	tri := NewTriangle(Point{X: 0, Y: 0}, Point{X: 4, Y: 0}, Point{X: 0, Y: 4})

	require.True(t, tri.Contains(Point{X: 1, Y: 1}))
	require.True(t, tri.Contains(Point{X: 2, Y: 0}))
	require.True(t, tri.Contains(tri.C))
	require.False(t, tri.Contains(Point{X: 3, Y: 3}))
	require.False(t, tri.Contains(Point{X: -1, Y: 1}))
}

func TestTriangle_Geometry(t *testing.T) {
	tri := NewTriangle(Point{X: 1, Y: 5}, Point{X: -2, Y: 0}, Point{X: 4, Y: 2})

	lower, upper := tri.Bounds()
	require.Equal(t, Point{X: -2, Y: 0}, lower)
	require.Equal(t, Point{X: 4, Y: 5}, upper)

	for _, edge := range tri.Edges() {
		require.LessOrEqual(t, edge.Leftest().X, edge.Rightest().X)
	}

	t.Run("Edges follow vertices", func(t *testing.T) {
		edges := tri.Edges()
		tri.Points()[0].Y = 6
		require.Equal(t, Point{X: 1, Y: 6}, edges[0].Rightest())
	})

	t.Run("Translate", func(t *testing.T) {
		before := tri.Vertices()
		tri.Translate(2, -1)
		for i, p := range tri.Vertices() {
			require.Equal(t, before[i].Translate(2, -1), p)
		}
	})
}

func TestTriangle_Collisions(t *testing.T) {
	base := NewTriangle(Point{X: 0, Y: 0}, Point{X: 4, Y: 0}, Point{X: 0, Y: 4})

	t.Run("Overlapping", func(t *testing.T) {
		other := NewTriangle(Point{X: 1, Y: 1}, Point{X: 5, Y: 1}, Point{X: 1, Y: 5})
		found := base.Collisions(&other)
		require.NotEmpty(t, found)

		hits := make([]float32, 0, len(found))
		for _, c := range found {
			hits = append(hits, c.Hit)
		}
		require.Contains(t, hits, float32(3))
	})

	t.Run("Far apart", func(t *testing.T) {
		other := NewTriangle(Point{X: 20, Y: 20}, Point{X: 24, Y: 20}, Point{X: 20, Y: 24})
		require.Empty(t, base.Collisions(&other))
	})

	t.Run("Fully inside", func(t *testing.T) {
		inner := NewTriangle(Point{X: 1, Y: 1}, Point{X: 2, Y: 1}, Point{X: 1, Y: 2})
		require.Empty(t, base.Collisions(&inner))
	})
}
