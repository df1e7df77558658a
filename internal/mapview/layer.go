package mapview

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Kind distinguishes joined district layers from plain overlays.
type Kind string

const (
	KindDistrict Kind = "district"
	KindOverlay  Kind = "overlay"
)

// Style is the path style a client applies to a feature.
type Style struct {
	Color       string  `json:"color" doc:"Outline color"`
	Weight      float64 `json:"weight" doc:"Outline width in pixels"`
	Opacity     float64 `json:"opacity" doc:"Outline opacity"`
	Fill        bool    `json:"fill" doc:"Whether the polygon is filled"`
	FillColor   string  `json:"fillColor,omitempty" doc:"Fill color"`
	FillOpacity float64 `json:"fillOpacity" doc:"Fill opacity"`
}

// Feature is a styled boundary ready to draw.
type Feature struct {
	Key        string
	Geometry   orb.Geometry
	Properties geojson.Properties
	Style      Style
	// Popup is the HTML shown when the feature is clicked.
	Popup string
}

// Layer is a group of features drawn together.
type Layer struct {
	ID       string
	Name     string
	Kind     Kind
	Features []Feature
}

// FeatureCollection renders the layer as GeoJSON. Each feature keeps its
// source properties and gains "key", "style" and "popup".
func (l *Layer) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range l.Features {
		if f.Geometry == nil {
			continue
		}
		out := geojson.NewFeature(f.Geometry)
		for k, v := range f.Properties {
			out.Properties[k] = v
		}
		out.ID = f.Key
		out.Properties["key"] = f.Key
		out.Properties["style"] = f.Style
		out.Properties["popup"] = f.Popup
		fc.Append(out)
	}
	return fc
}
