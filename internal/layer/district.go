// Package layer builds map layers from boundary collections: districts joined
// to legislators, and toggleable county and zip code overlays.
package layer

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb/geojson"

	"github.com/joeblew999/colegis/internal/geo"
	"github.com/joeblew999/colegis/internal/legis"
	"github.com/joeblew999/colegis/internal/mapview"
	"github.com/joeblew999/colegis/internal/style"
)

// DistrictKeyProperty is the boundary property joined against the index.
const DistrictKeyProperty = "District"

// DistrictOptions configures BuildDistrictLayer.
type DistrictOptions struct {
	ID    string // layer ID, e.g. "senate-districts"
	Name  string // layer display name
	Label string // popup heading prefix, e.g. "Senate District"
	// KeyProperty overrides DistrictKeyProperty.
	KeyProperty string
	Resolver    *style.Resolver
}

// DistrictStyle is the path style of a district filled with fill.
func DistrictStyle(fill string) mapview.Style {
	return mapview.Style{
		Color:       "#555555",
		Weight:      1,
		Opacity:     1,
		Fill:        true,
		FillColor:   fill,
		FillOpacity: 0.6,
	}
}

// BuildDistrictLayer joins every boundary feature to its legislator, styles
// it by party and attaches the layer to target. Each feature whose
// legislator is known also gets a name label at its bounding-box center.
// A district with no legislator is drawn in the neutral color with an
// "Unknown" popup and no label.
func BuildDistrictLayer(fc *geojson.FeatureCollection, idx *legis.Index, target *mapview.Map, opts DistrictOptions) *mapview.Layer {
	keyProp := opts.KeyProperty
	if keyProp == "" {
		keyProp = DistrictKeyProperty
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = style.NewResolver(nil)
	}

	l := &mapview.Layer{ID: opts.ID, Name: opts.Name, Kind: mapview.KindDistrict}
	var labels []*mapview.Marker

	if fc != nil {
		l.Features = make([]mapview.Feature, 0, len(fc.Features))
		for i, f := range fc.Features {
			raw := f.Properties[keyProp]
			key := legis.Key(raw)

			var rec *legis.Record
			if r, ok := idx.Get(raw); ok {
				rec = &r
			}

			party := ""
			if rec != nil {
				party = rec.Party
			}

			l.Features = append(l.Features, mapview.Feature{
				Key:        key,
				Geometry:   f.Geometry,
				Properties: f.Properties,
				Style:      DistrictStyle(style.ColorFor(party)),
				Popup:      resolver.PopupHTML(rec, key, opts.Label),
			})

			if rec == nil || f.Geometry == nil {
				continue
			}
			name := strings.TrimSpace(style.DisplayName(rec.Name))
			if name == "" {
				continue
			}
			labels = append(labels, &mapview.Marker{
				ID:        fmt.Sprintf("%s-label-%d", opts.ID, i),
				LayerID:   opts.ID,
				Position:  geo.BoundCenter(f.Geometry),
				Text:      name,
				ClassName: "district-label",
			})
		}
	}

	if target != nil {
		target.Attach(l, labels...)
	}
	return l
}
