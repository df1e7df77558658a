package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceService_List(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		LegislatorsFile: testLegislators,
		SenateFile:      testSenate,
		"extra.geojson": testZips,
		"notes.txt":     "ignored",
	})
	s := NewSourceService(dir, NewLayerService(dir))

	files, err := s.List()
	require.NoError(t, err)

	byName := map[string]SourceFile{}
	for _, f := range files {
		byName[f.Name] = f
	}
	assert.Len(t, files, 6)
	assert.True(t, byName[LegislatorsFile].Present)
	assert.Equal(t, "Roster", byName[LegislatorsFile].FileType)
	assert.False(t, byName[HouseFile].Present)
	assert.True(t, byName[HouseFile].Required)
	assert.False(t, byName["extra.geojson"].Required)
	assert.NotContains(t, byName, "notes.txt")
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "1.5 KB", formatSize(1536))
	assert.Equal(t, "2.0 MB", formatSize(2<<20))
}

func TestDirFetcher(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{SenateFile: testSenate})
	f := DirFetcher{Dir: dir}

	data, err := f.Fetch(context.Background(), SenateFile)
	require.NoError(t, err)
	assert.Equal(t, testSenate, string(data))

	_, err = f.Fetch(context.Background(), HouseFile)
	assert.Error(t, err)
	_, err = f.Fetch(context.Background(), "../secret.json")
	assert.Error(t, err)
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/"+HouseFile {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(testHouse))
	}))
	defer srv.Close()

	f, err := NewFetcher("", srv.URL+"/data/")
	require.NoError(t, err)

	data, err := f.Fetch(context.Background(), HouseFile)
	require.NoError(t, err)
	assert.Equal(t, testHouse, string(data))

	_, err = f.Fetch(context.Background(), SenateFile)
	assert.Error(t, err)

	_, err = NewFetcher("", "ftp://example.org")
	assert.Error(t, err)
}

func TestNewFetcher_Dir(t *testing.T) {
	f, err := NewFetcher("/srv/data", "")
	require.NoError(t, err)
	assert.Equal(t, DirFetcher{Dir: "/srv/data"}, f)
}
