package mapview

import "github.com/paulmach/orb/geojson"

// LayerScene is one attached layer as sent to a viewer.
type LayerScene struct {
	ID   string                     `json:"id" doc:"Layer identifier"`
	Name string                     `json:"name" doc:"Display name"`
	Kind Kind                       `json:"kind" enum:"district,overlay" doc:"Layer kind"`
	Data *geojson.FeatureCollection `json:"data" doc:"Styled GeoJSON features"`
}

// Scene is a snapshot of everything a viewer needs to draw a map.
type Scene struct {
	ID      string       `json:"id" doc:"Map identifier" example:"senate"`
	Title   string       `json:"title" doc:"Map title"`
	View    View         `json:"view" doc:"Initial view"`
	Layers  []LayerScene `json:"layers" doc:"Attached layers in draw order"`
	Markers []*Marker    `json:"markers" doc:"Attached label markers"`
}

// Scene snapshots the map's attached state.
func (m *Map) Scene() Scene {
	layers, markers := m.snapshot()

	s := Scene{
		ID:      m.ID,
		Title:   m.Title,
		View:    m.View,
		Layers:  make([]LayerScene, 0, len(layers)),
		Markers: markers,
	}
	if s.Markers == nil {
		s.Markers = []*Marker{}
	}
	for _, l := range layers {
		s.Layers = append(s.Layers, LayerScene{
			ID:   l.ID,
			Name: l.Name,
			Kind: l.Kind,
			Data: l.FeatureCollection(),
		})
	}
	return s
}
