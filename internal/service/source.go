package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// SourceService reports on the input files in the data directory.
type SourceService struct {
	dataDir string
	layers  *LayerService
}

// NewSourceService creates a new source service.
func NewSourceService(dataDir string, layers *LayerService) *SourceService {
	return &SourceService{dataDir: dataDir, layers: layers}
}

// RequiredFiles lists every file a composition fetches: the roster, both
// district files, and the file of each configured overlay.
func (s *SourceService) RequiredFiles() []string {
	files := []string{LegislatorsFile, SenateFile, HouseFile}
	if s.layers != nil {
		for _, l := range s.layers.Ordered() {
			files = append(files, l.File)
		}
	}
	return dedupe(files)
}

// List returns every required file plus any other JSON/GeoJSON files in
// the data directory.
func (s *SourceService) List() ([]SourceFile, error) {
	byName := make(map[string]SourceFile)
	for _, name := range s.RequiredFiles() {
		byName[name] = SourceFile{Name: name, FileType: fileType(name), Required: true}
	}

	entries, err := os.ReadDir(s.dataDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, eris.Wrap(err, "service: read data dir")
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".json" && ext != ".geojson" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		f := byName[entry.Name()]
		f.Name = entry.Name()
		f.FileType = fileType(entry.Name())
		f.Size = formatSize(info.Size())
		f.Present = true
		byName[entry.Name()] = f
	}

	files := make([]SourceFile, 0, len(byName))
	for _, f := range byName {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func fileType(name string) string {
	if name == LegislatorsFile {
		return "Roster"
	}
	return "GeoJSON"
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// formatSize returns a human-readable file size.
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
