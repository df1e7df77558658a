package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/require"
)

const testLegislators = `[
	{"District": "1", "Chamber": "Senate", "Name": "Smith, Jane", "Party": "Democrat", "Counties": ["Adams"]},
	{"District": 2, "Chamber": "Senate", "Name": "Roe, Rick", "Party": "Republican"},
	{"District": "1", "Chamber": "House", "Name": "Doe, John", "Party": "Unaffiliated"},
	{"District": "9", "Name": "No Chamber"}
]`

const testSenate = `{"type": "FeatureCollection", "features": [
	{"type": "Feature", "properties": {"District": 1}, "geometry": {"type": "Polygon", "coordinates": [[[0,0],[2,0],[2,2],[0,2],[0,0]]]}},
	{"type": "Feature", "properties": {"District": "2"}, "geometry": {"type": "Polygon", "coordinates": [[[2,0],[4,0],[4,2],[2,2],[2,0]]]}},
	{"type": "Feature", "properties": {"District": 3}, "geometry": {"type": "Polygon", "coordinates": [[[4,0],[6,0],[6,2],[4,2],[4,0]]]}}
]}`

const testHouse = `{"type": "FeatureCollection", "features": [
	{"type": "Feature", "properties": {"District": "1"}, "geometry": {"type": "MultiPolygon", "coordinates": [[[[0,0],[1,0],[1,1],[0,0]]]]}}
]}`

const testCounties = `{"type": "FeatureCollection", "features": [
	{"type": "Feature", "properties": {"NAME": "Adams"}, "geometry": {"type": "Polygon", "coordinates": [[[0,0],[2,0],[2,2],[0,2]]]}},
	{"type": "Feature", "properties": {"name": "Boulder"}, "geometry": {"type": "Polygon", "coordinates": [[[2,0],[4,0],[4,2],[2,2]]]}}
]}`

const testZips = `{"type": "FeatureCollection", "features": [
	{"type": "Feature", "properties": {"name": "80202"}, "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1]]]}}
]}`

func testFiles() map[string]string {
	return map[string]string{
		LegislatorsFile: testLegislators,
		SenateFile:      testSenate,
		HouseFile:       testHouse,
		CountiesFile:    testCounties,
		ZipCodesFile:    testZips,
	}
}

// mapFetcher serves inputs from memory and records what was requested.
type mapFetcher struct {
	mu    sync.Mutex
	files map[string]string
	calls []string
}

func (f *mapFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()

	data, ok := f.files[name]
	if !ok {
		return nil, eris.Errorf("%s: not found", name)
	}
	return []byte(data), nil
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}
