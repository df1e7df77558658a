package mapview

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeblew999/colegis/internal/geo"
)

func TestMap_AttachDetach(t *testing.T) {
	m := New("senate", "Senate", ColoradoView)
	l := &Layer{ID: "counties"}
	a := &Marker{ID: "counties:Adams"}
	b := &Marker{ID: "counties:Boulder"}

	m.Attach(l, a, b)
	m.Attach(l, a)

	assert.Equal(t, []string{"layer:counties", "marker:counties:Adams", "marker:counties:Boulder"}, m.Attached())

	m.Detach("counties", a.ID, b.ID)
	assert.Empty(t, m.Attached())

	// Detaching twice is a no-op.
	m.Detach("counties", a.ID)
	assert.Empty(t, m.Attached())
}

func TestMap_HasLayerAndMarker(t *testing.T) {
	m := New("house", "House", ColoradoView)

	m.Attach(&Layer{ID: "districts"}, &Marker{ID: "d1"})
	assert.True(t, m.HasLayer("districts"))
	assert.True(t, m.HasMarker("d1"))

	m.Detach("", "d1")
	assert.False(t, m.HasMarker("d1"))
	assert.True(t, m.HasLayer("districts"))
	require.Len(t, m.Layers(), 1)
}

func TestMap_Scene(t *testing.T) {
	m := New("senate", "Colorado Senate", ColoradoView)
	m.Attach(&Layer{
		ID:   "senate-districts",
		Name: "Senate Districts",
		Kind: KindDistrict,
		Features: []Feature{
			{
				Key:        "3",
				Geometry:   orb.Polygon{orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}},
				Properties: geojson.Properties{"District": 3.0},
				Style:      Style{FillColor: "#2b6cb0", Fill: true},
				Popup:      "<b>Jane Smith</b>",
			},
			{Key: "no-geometry"},
		},
	}, &Marker{ID: "label:3", Position: geo.LatLng{Lat: 0.5, Lng: 0.5}, Text: "Jane Smith"})

	scene := m.Scene()
	require.Len(t, scene.Layers, 1)
	assert.Equal(t, ColoradoView, scene.View)
	require.Len(t, scene.Layers[0].Data.Features, 1)

	f := scene.Layers[0].Data.Features[0]
	assert.Equal(t, "3", f.Properties["key"])
	assert.Equal(t, 3.0, f.Properties["District"])
	assert.Equal(t, "<b>Jane Smith</b>", f.Properties["popup"])

	data, err := json.Marshal(scene)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"fillColor":"#2b6cb0"`)
	assert.Contains(t, string(data), `"text":"Jane Smith"`)
}

func TestMap_SceneEmptyMarkers(t *testing.T) {
	scene := New("x", "", ColoradoView).Scene()

	assert.NotNil(t, scene.Markers)
	assert.Empty(t, scene.Layers)
}

func TestMap_SceneIsConsistentUnderToggling(t *testing.T) {
	m := New("senate", "Colorado Senate", ColoradoView)
	l := &Layer{ID: "counties", Kind: KindOverlay}
	labels := []*Marker{{ID: "overlay:counties:0", LayerID: "counties"}, {ID: "overlay:counties:1", LayerID: "counties"}}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 2000; i++ {
			m.Attach(l, labels...)
			m.Detach(l.ID, labels[0].ID, labels[1].ID)
		}
	}()

	for {
		select {
		case <-done:
			return
		default:
		}
		s := m.Scene()
		if len(s.Layers) == 0 {
			require.Empty(t, s.Markers)
		} else {
			require.Len(t, s.Markers, 2)
		}
	}
}
