// Package mapview holds the map scene a viewer draws: a fixed view plus the
// layers and label markers currently attached to it.
package mapview

import (
	"sort"
	"sync"

	"github.com/joeblew999/colegis/internal/geo"
)

// View is a map's initial center and zoom.
type View struct {
	Center geo.LatLng `json:"center" doc:"Initial map center"`
	Zoom   int        `json:"zoom" doc:"Initial zoom level" example:"7"`
}

// ColoradoView frames the whole state.
var ColoradoView = View{Center: geo.LatLng{Lat: 39.0, Lng: -105.5}, Zoom: 7}

// Marker is a text label pinned to a map position.
type Marker struct {
	ID          string     `json:"id" doc:"Marker identifier"`
	LayerID     string     `json:"layerId" doc:"Layer the label belongs to"`
	Position    geo.LatLng `json:"position" doc:"Anchor point"`
	Text        string     `json:"text" doc:"Label text"`
	ClassName   string     `json:"className,omitempty" doc:"CSS class for the label"`
	Interactive bool       `json:"interactive" doc:"Whether the label receives pointer events"`
}

// Map is one map instance. It is safe for concurrent use.
type Map struct {
	ID    string
	Title string
	View  View

	mu      sync.RWMutex
	layers  []*Layer
	markers []*Marker
}

// New creates an empty map.
func New(id, title string, view View) *Map {
	return &Map{ID: id, Title: title, View: view}
}

// Attach adds a layer (may be nil) and markers in one step, so readers never
// observe a layer without its labels.
func (m *Map) Attach(l *Layer, markers ...*Marker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l != nil && m.layerIndex(l.ID) < 0 {
		m.layers = append(m.layers, l)
	}
	for _, mk := range markers {
		if mk != nil && m.markerIndex(mk.ID) < 0 {
			m.markers = append(m.markers, mk)
		}
	}
}

// Detach removes a layer and markers in one step.
func (m *Map) Detach(layerID string, markerIDs ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if layerID != "" {
		m.removeLayerLocked(layerID)
	}
	for _, id := range markerIDs {
		m.removeMarkerLocked(id)
	}
}

// HasLayer reports whether a layer is attached.
func (m *Map) HasLayer(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.layerIndex(id) >= 0
}

// HasMarker reports whether a marker is attached.
func (m *Map) HasMarker(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.markerIndex(id) >= 0
}

// Layers returns the attached layers in attach order.
func (m *Map) Layers() []*Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*Layer(nil), m.layers...)
}

// Markers returns the attached markers in attach order.
func (m *Map) Markers() []*Marker {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*Marker(nil), m.markers...)
}

// snapshot copies layers and markers under one lock, so a concurrent
// Attach or Detach is either fully seen or not at all.
func (m *Map) snapshot() ([]*Layer, []*Marker) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*Layer(nil), m.layers...), append([]*Marker(nil), m.markers...)
}

// Attached returns the sorted IDs of everything attached, prefixed with
// "layer:" or "marker:". Useful for comparing map states.
func (m *Map) Attached() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.layers)+len(m.markers))
	for _, l := range m.layers {
		ids = append(ids, "layer:"+l.ID)
	}
	for _, mk := range m.markers {
		ids = append(ids, "marker:"+mk.ID)
	}
	sort.Strings(ids)
	return ids
}

func (m *Map) layerIndex(id string) int {
	for i, l := range m.layers {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (m *Map) markerIndex(id string) int {
	for i, mk := range m.markers {
		if mk.ID == id {
			return i
		}
	}
	return -1
}

func (m *Map) removeLayerLocked(id string) bool {
	i := m.layerIndex(id)
	if i < 0 {
		return false
	}
	m.layers = append(m.layers[:i], m.layers[i+1:]...)
	return true
}

func (m *Map) removeMarkerLocked(id string) bool {
	i := m.markerIndex(id)
	if i < 0 {
		return false
	}
	m.markers = append(m.markers[:i], m.markers[i+1:]...)
	return true
}
