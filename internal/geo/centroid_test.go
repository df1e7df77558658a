package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentroid_Polygon(t *testing.T) {
	poly := orb.Polygon{orb.Ring{{0, 0}, {2, 0}, {2, 2}, {0, 2}}}

	c, ok := Centroid(poly)
	require.True(t, ok)
	assert.Equal(t, LatLng{Lat: 1, Lng: 1}, c)
}

func TestCentroid_ReturnsLatLngOrder(t *testing.T) {
	// lng -105, lat 39
	poly := orb.Polygon{orb.Ring{{-106, 38}, {-104, 38}, {-104, 40}, {-106, 40}}}

	c, ok := Centroid(poly)
	require.True(t, ok)
	assert.InDelta(t, 39.0, c.Lat, 1e-9)
	assert.InDelta(t, -105.0, c.Lng, 1e-9)
}

func TestCentroid_IgnoresHoles(t *testing.T) {
	poly := orb.Polygon{
		orb.Ring{{0, 0}, {4, 0}, {4, 4}, {0, 4}},
		orb.Ring{{3, 3}, {3.5, 3}, {3.5, 3.5}, {3, 3.5}},
	}

	c, ok := Centroid(poly)
	require.True(t, ok)
	assert.Equal(t, LatLng{Lat: 2, Lng: 2}, c)
}

func TestCentroid_MultiPolygonPicksMostVertices(t *testing.T) {
	big := orb.Polygon{orb.Ring{{0, 0}, {100, 0}, {100, 100}, {0, 100}}}
	// smaller area, more vertices
	dense := orb.Polygon{orb.Ring{{10, 10}, {11, 10}, {12, 10}, {12, 12}, {10, 12}}}

	c, ok := Centroid(orb.MultiPolygon{big, dense})
	require.True(t, ok)
	assert.InDelta(t, 10.8, c.Lat, 1e-9)
	assert.InDelta(t, 11.0, c.Lng, 1e-9)
}

func TestCentroid_MultiPolygonTieKeepsFirst(t *testing.T) {
	first := orb.Polygon{orb.Ring{{0, 0}, {2, 0}, {2, 2}, {0, 2}}}
	second := orb.Polygon{orb.Ring{{10, 10}, {12, 10}, {12, 12}, {10, 12}}}

	c, ok := Centroid(orb.MultiPolygon{first, second})
	require.True(t, ok)
	assert.Equal(t, LatLng{Lat: 1, Lng: 1}, c)
}

func TestCentroid_NonPolygon(t *testing.T) {
	tests := []struct {
		name string
		geom orb.Geometry
	}{
		{"point", orb.Point{1, 2}},
		{"line", orb.LineString{{0, 0}, {1, 1}}},
		{"empty polygon", orb.Polygon{}},
		{"empty multipolygon", orb.MultiPolygon{}},
		{"nil", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Centroid(tt.geom)
			assert.False(t, ok)
		})
	}
}

func TestLabelPoint_FallsBackToBoundCenter(t *testing.T) {
	line := orb.LineString{{0, 0}, {4, 2}}

	assert.Equal(t, LatLng{Lat: 1, Lng: 2}, LabelPoint(line))
}

func TestBoundCenter(t *testing.T) {
	poly := orb.Polygon{orb.Ring{{0, 0}, {10, 0}, {1, 1}, {0, 4}}}

	assert.Equal(t, LatLng{Lat: 2, Lng: 5}, BoundCenter(poly))
}
