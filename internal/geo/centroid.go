// Package geo computes label placement points for boundary geometries.
package geo

import "github.com/paulmach/orb"

// LatLng is a map position in (lat, lng) order, the order map clients expect.
// GeoJSON stores coordinates as (lng, lat); conversion happens here only.
type LatLng struct {
	Lat float64 `json:"lat" doc:"Latitude"`
	Lng float64 `json:"lng" doc:"Longitude"`
}

// FromPoint converts a GeoJSON (lng, lat) point.
func FromPoint(p orb.Point) LatLng {
	return LatLng{Lat: p.Lat(), Lng: p.Lon()}
}

// Centroid returns the vertex-averaged center of a polygon's outer ring.
//
// For a MultiPolygon the sub-polygon whose outer ring has the most vertices
// is used (first wins on ties), regardless of area. Holes are ignored. The
// result is the plain mean of the ring vertices, not the area centroid, so it
// leans toward densely digitized stretches of boundary.
//
// ok is false for any geometry that is not a Polygon or MultiPolygon, or
// when there is no ring to average.
func Centroid(g orb.Geometry) (LatLng, bool) {
	var ring orb.Ring

	switch v := g.(type) {
	case orb.Polygon:
		if len(v) > 0 {
			ring = v[0]
		}
	case orb.MultiPolygon:
		for _, poly := range v {
			if len(poly) == 0 {
				continue
			}
			if len(poly[0]) > len(ring) {
				ring = poly[0]
			}
		}
	default:
		return LatLng{}, false
	}

	if len(ring) == 0 {
		return LatLng{}, false
	}

	var sumLng, sumLat float64
	for _, p := range ring {
		sumLng += p[0]
		sumLat += p[1]
	}
	n := float64(len(ring))
	return LatLng{Lat: sumLat / n, Lng: sumLng / n}, true
}

// BoundCenter returns the center of the geometry's bounding box.
func BoundCenter(g orb.Geometry) LatLng {
	if g == nil {
		return LatLng{}
	}
	return FromPoint(g.Bound().Center())
}

// LabelPoint returns the Centroid, falling back to the bounding-box center.
func LabelPoint(g orb.Geometry) LatLng {
	if c, ok := Centroid(g); ok {
		return c
	}
	return BoundCenter(g)
}
