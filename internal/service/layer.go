package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

var (
	// ErrInvalidLayer is returned for an overlay configuration that fails
	// validation.
	ErrInvalidLayer = eris.New("invalid layer")
	// ErrLayerExists is returned when creating an overlay whose ID is taken.
	ErrLayerExists = eris.New("layer already exists")
)

// districtLayerSuffix ends every district layer ID the composer builds.
const districtLayerSuffix = "-districts"

// DistrictLayerID is the ID of a chamber map's district layer.
func DistrictLayerID(mapID string) string {
	return mapID + districtLayerSuffix
}

// ReservedLayerID reports whether id is kept for district layers and so
// cannot name an overlay.
func ReservedLayerID(id string) bool {
	return strings.HasSuffix(id, districtLayerSuffix)
}

// LayerService manages overlay configurations persisted in layers.json.
type LayerService struct {
	dataDir string
	layers  map[string]LayerConfig
	mu      sync.RWMutex
}

// NewLayerService creates a layer service, seeding the default overlays
// when nothing is stored yet.
func NewLayerService(dataDir string) *LayerService {
	s := &LayerService{
		dataDir: dataDir,
		layers:  make(map[string]LayerConfig),
	}
	if !s.loadFromDisk() {
		for _, l := range DefaultOverlays() {
			s.layers[l.ID] = l
		}
	}
	return s
}

// List returns all overlay configurations.
func (s *LayerService) List() map[string]LayerConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]LayerConfig, len(s.layers))
	for k, v := range s.layers {
		result[k] = v
	}
	return result
}

// Ordered returns the overlays sorted by Order, then ID.
func (s *LayerService) Ordered() []LayerConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]LayerConfig, 0, len(s.layers))
	for _, l := range s.layers {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Get returns an overlay by ID.
func (s *LayerService) Get(id string) (LayerConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	layer, ok := s.layers[id]
	return layer, ok
}

// Create adds a new overlay configuration.
func (s *LayerService) Create(layer LayerConfig) (LayerConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if layer.ID == "" {
		layer.ID = generateID(layer.Name)
	}
	if err := validateID(layer.ID); err != nil {
		return LayerConfig{}, err
	}
	if err := validateFile(layer.File); err != nil {
		return LayerConfig{}, err
	}

	if _, exists := s.layers[layer.ID]; exists {
		return LayerConfig{}, eris.Wrapf(ErrLayerExists, "layer %q", layer.ID)
	}

	s.layers[layer.ID] = layer
	if err := s.saveToDisk(); err != nil {
		return LayerConfig{}, err
	}

	return layer, nil
}

// Update replaces an overlay configuration by ID.
func (s *LayerService) Update(id string, layer LayerConfig) (LayerConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.layers[id]; !exists {
		return LayerConfig{}, eris.Wrapf(ErrNotFound, "layer %q", id)
	}
	if err := validateFile(layer.File); err != nil {
		return LayerConfig{}, err
	}

	layer.ID = id
	s.layers[id] = layer
	if err := s.saveToDisk(); err != nil {
		return LayerConfig{}, err
	}

	return layer, nil
}

// Delete removes an overlay by ID.
func (s *LayerService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.layers[id]; !exists {
		return eris.Wrapf(ErrNotFound, "layer %q", id)
	}

	delete(s.layers, id)
	return s.saveToDisk()
}

func (s *LayerService) configFile() string {
	return filepath.Join(s.dataDir, "layers.json")
}

// loadFromDisk reports whether a stored configuration was loaded.
func (s *LayerService) loadFromDisk() bool {
	data, err := os.ReadFile(s.configFile())
	if err != nil {
		return false
	}

	var layers map[string]LayerConfig
	if err := json.Unmarshal(data, &layers); err != nil {
		zap.L().Warn("ignoring invalid layer config", zap.String("file", s.configFile()), zap.Error(err))
		return false
	}

	if layers == nil {
		zap.L().Warn("ignoring empty layer config", zap.String("file", s.configFile()))
		return false
	}
	for id, l := range layers {
		l.ID = id
		layers[id] = l
	}

	s.layers = layers
	return true
}

func (s *LayerService) saveToDisk() error {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return eris.Wrap(err, "service: create data dir")
	}

	data, err := json.MarshalIndent(s.layers, "", "  ")
	if err != nil {
		return eris.Wrap(err, "service: encode layers")
	}

	if err := os.WriteFile(s.configFile(), data, 0644); err != nil {
		return eris.Wrap(err, "service: write layers")
	}
	return nil
}

func validateID(id string) error {
	if id == "" {
		return eris.Wrap(ErrInvalidLayer, "layer name must contain letters or digits")
	}
	if ReservedLayerID(id) {
		return eris.Wrapf(ErrInvalidLayer, "layer ID %q is reserved for district layers", id)
	}
	return nil
}

func validateFile(name string) error {
	if name == "" {
		return eris.Wrap(ErrInvalidLayer, "layer file is required")
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") || strings.Contains(name, "..") {
		return eris.Wrapf(ErrInvalidLayer, "invalid layer file %q", name)
	}
	return nil
}

// generateID creates a URL-safe ID from a name.
func generateID(name string) string {
	id := strings.ToLower(name)
	id = strings.NewReplacer(" ", "_", "-", "_").Replace(id)
	var result strings.Builder
	for _, r := range id {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			result.WriteRune(r)
		}
	}
	return result.String()
}
