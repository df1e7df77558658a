package api

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/joeblew999/colegis/internal/service"
)

var fixtures = map[string]string{
	service.LegislatorsFile: `[
		{"District": "1", "Chamber": "Senate", "Name": "Smith, Jane", "Party": "Democrat", "Link": "https://leg.colorado.gov/legislators/jane-smith", "Counties": ["Adams"], "Committees": [{"name": "Finance", "role": "Chair"}]},
		{"District": 2, "Chamber": "Senate", "Name": "Roe, Rick", "Party": "Republican"},
		{"District": "1", "Chamber": "House", "Name": "Doe, John", "Party": "Unaffiliated"},
		{"District": "9", "Name": "No Chamber"}
	]`,
	service.SenateFile: `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "properties": {"District": 1}, "geometry": {"type": "Polygon", "coordinates": [[[0,0],[2,0],[2,2],[0,2],[0,0]]]}},
		{"type": "Feature", "properties": {"District": "2"}, "geometry": {"type": "Polygon", "coordinates": [[[2,0],[4,0],[4,2],[2,2],[2,0]]]}},
		{"type": "Feature", "properties": {"District": 3}, "geometry": {"type": "Polygon", "coordinates": [[[4,0],[6,0],[6,2],[4,2],[4,0]]]}}
	]}`,
	service.HouseFile: `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "properties": {"District": "1"}, "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}}
	]}`,
	service.CountiesFile: `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "properties": {"NAME": "Adams"}, "geometry": {"type": "Polygon", "coordinates": [[[0,0],[2,0],[2,2],[0,2]]]}},
		{"type": "Feature", "properties": {"name": "Boulder"}, "geometry": {"type": "Polygon", "coordinates": [[[2,0],[4,0],[4,2],[2,2]]]}}
	]}`,
	service.ZipCodesFile: `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "properties": {"name": "80202"}, "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1]]]}}
	]}`,
}

// newTestServices writes the fixtures to a temp dir and builds the services
// over it. load controls whether the atlas is composed up front.
func newTestServices(t *testing.T, load bool) *Services {
	t.Helper()
	dir := t.TempDir()
	for name, content := range fixtures {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	layers := service.NewLayerService(dir)
	composer := service.NewComposer(service.DirFetcher{Dir: dir}, layers, service.ComposerOptions{})
	svc := &Services{
		Layer:  layers,
		Source: service.NewSourceService(dir, layers),
		Atlas:  service.NewAtlasService(composer, service.NewEventBus()),
	}
	if load {
		require.NoError(t, svc.Atlas.Reload(context.Background()))
	}
	return svc
}

func newTestAPI(t *testing.T, svc *Services) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t, huma.DefaultConfig("colegis test", "1.0.0"))
	RegisterRoutes(api, svc)
	return api
}
