package layer

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb/geojson"

	"github.com/joeblew999/colegis/internal/geo"
	"github.com/joeblew999/colegis/internal/mapview"
	"github.com/joeblew999/colegis/internal/style"
)

// DefaultNameFields are checked in order for an overlay feature's name.
var DefaultNameFields = []string{"name", "NAME", "County"}

// OverlayOptions configures BuildOverlay.
type OverlayOptions struct {
	ID         string
	Name       string
	NameFields []string
	// Labels adds a name label per feature at its centroid.
	Labels   bool
	Color    string
	Resolver *style.Resolver
}

// Overlay is a built but unattached overlay layer and its labels.
type Overlay struct {
	Layer  *mapview.Layer
	Labels []*mapview.Marker
}

// OverlayStyle is the outline-only style of an overlay with the given color.
func OverlayStyle(color string) mapview.Style {
	if color == "" {
		color = "#333333"
	}
	return mapview.Style{Color: color, Weight: 1, Opacity: 0.8}
}

// FeatureName returns the first present, non-blank property among fields,
// or "Unknown".
func FeatureName(props geojson.Properties, fields []string) string {
	for _, f := range fields {
		v, ok := props[f]
		if !ok || v == nil {
			continue
		}
		if s := strings.TrimSpace(fmt.Sprint(v)); s != "" {
			return s
		}
	}
	return style.UnknownName
}

// BuildOverlay styles every feature as an outline with an identity popup.
// Nothing is attached to a map; use a Toggle for that.
func BuildOverlay(fc *geojson.FeatureCollection, opts OverlayOptions) *Overlay {
	fields := opts.NameFields
	if len(fields) == 0 {
		fields = DefaultNameFields
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = style.NewResolver(nil)
	}

	o := &Overlay{Layer: &mapview.Layer{ID: opts.ID, Name: opts.Name, Kind: mapview.KindOverlay}}
	if fc == nil {
		return o
	}

	o.Layer.Features = make([]mapview.Feature, 0, len(fc.Features))
	for i, f := range fc.Features {
		name := FeatureName(f.Properties, fields)
		o.Layer.Features = append(o.Layer.Features, mapview.Feature{
			Key:        name,
			Geometry:   f.Geometry,
			Properties: f.Properties,
			Style:      OverlayStyle(opts.Color),
			Popup:      resolver.OverlayPopupHTML(name),
		})

		if !opts.Labels || f.Geometry == nil {
			continue
		}
		o.Labels = append(o.Labels, &mapview.Marker{
			ID:        fmt.Sprintf("overlay:%s:%d", opts.ID, i),
			LayerID:   opts.ID,
			Position:  geo.LabelPoint(f.Geometry),
			Text:      name,
			ClassName: "overlay-label",
		})
	}
	return o
}

// MarkerIDs returns the IDs of the overlay's labels.
func (o *Overlay) MarkerIDs() []string {
	ids := make([]string, len(o.Labels))
	for i, m := range o.Labels {
		ids[i] = m.ID
	}
	return ids
}
