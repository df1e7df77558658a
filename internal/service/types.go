// Package service contains business logic for the district map: input
// fetching, map composition, and the overlay registry.
package service

import "github.com/joeblew999/colegis/internal/legis"

// Input file names, resolved against the data directory or source URL.
const (
	LegislatorsFile = "legislators.json"
	SenateFile      = "senate_coords.json"
	HouseFile       = "house_coords.json"
	CountiesFile    = "colorado_counties.geojson"
	ZipCodesFile    = "co_colorado_zip_codes_geo.min.json"
)

// DistrictFiles maps each chamber to its boundary file.
var DistrictFiles = map[legis.Chamber]string{
	legis.Senate: SenateFile,
	legis.House:  HouseFile,
}

// LayerConfig describes an overlay layer (counties, zip codes, ...).
// Huma reads the tags for OpenAPI docs and request validation.
type LayerConfig struct {
	ID         string          `json:"id,omitempty" doc:"Unique overlay identifier" example:"counties"`
	Name       string          `json:"name" required:"true" minLength:"1" maxLength:"100" doc:"Display name used in the toggle label" example:"Counties"`
	File       string          `json:"file" required:"true" doc:"GeoJSON source file name" example:"colorado_counties.geojson"`
	NameFields []string        `json:"nameFields,omitempty" doc:"Properties checked in order for a feature's name" example:"[\"name\",\"NAME\",\"County\"]"`
	Labels     bool            `json:"labels,omitempty" doc:"Whether each feature gets a name label at its centroid"`
	Stroke     string          `json:"stroke,omitempty" default:"#333333" doc:"Outline color (CSS)" example:"#333333"`
	Maps       []legis.Chamber `json:"maps,omitempty" doc:"Chamber maps that carry this overlay; empty means all" example:"[\"Senate\",\"House\"]"`
	Order      int             `json:"order,omitempty" doc:"Sort position among overlays"`
}

// OnMap reports whether the overlay belongs on the given chamber's map.
func (c LayerConfig) OnMap(ch legis.Chamber) bool {
	if len(c.Maps) == 0 {
		return true
	}
	for _, m := range c.Maps {
		if m == ch {
			return true
		}
	}
	return false
}

// DefaultOverlays seed the registry when no layers.json exists.
func DefaultOverlays() []LayerConfig {
	return []LayerConfig{
		{ID: "counties", Name: "Counties", File: CountiesFile, Labels: true, Stroke: "#333333", Order: 1},
		{ID: "zipcodes", Name: "Zip Codes", File: ZipCodesFile, Labels: true, Stroke: "#7b3294", Order: 2},
	}
}

// SourceFile represents an input data file.
type SourceFile struct {
	Name     string `json:"name" doc:"File name" example:"senate_coords.json"`
	Size     string `json:"size" doc:"Human-readable file size" example:"1.2 MB"`
	FileType string `json:"fileType" doc:"File type" example:"GeoJSON"`
	Required bool   `json:"required" doc:"Whether the map needs this file"`
	Present  bool   `json:"present" doc:"Whether the file exists in the data directory"`
}
