package service

import (
	"context"
	"slices"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/joeblew999/colegis/internal/layer"
)

var (
	// ErrNotLoaded is returned while no atlas has been composed yet.
	ErrNotLoaded = eris.New("maps not loaded")
	// ErrNotFound is returned for an unknown map or overlay.
	ErrNotFound = eris.New("not found")
)

// AtlasService holds the current Atlas and swaps it on reload.
type AtlasService struct {
	composer *Composer
	bus      *EventBus

	mu     sync.RWMutex
	atlas  *Atlas
	onLoad []func(context.Context, *Atlas)
}

// NewAtlasService creates an atlas service with nothing loaded.
func NewAtlasService(composer *Composer, bus *EventBus) *AtlasService {
	if bus == nil {
		bus = NewEventBus()
	}
	return &AtlasService{composer: composer, bus: bus}
}

// Bus returns the event bus reload and toggle events are published on.
func (s *AtlasService) Bus() *EventBus {
	return s.bus
}

// OnLoad registers fn to run after every successful load.
func (s *AtlasService) OnLoad(fn func(context.Context, *Atlas)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLoad = append(s.onLoad, fn)
}

// Reload composes a new atlas. On failure the previous atlas stays in place.
func (s *AtlasService) Reload(ctx context.Context) error {
	atlas, err := s.composer.Load(ctx)
	if err != nil {
		zap.L().Error("atlas reload failed", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.atlas = atlas
	hooks := slices.Clone(s.onLoad)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(ctx, atlas)
	}
	s.bus.Publish(Event{Resource: "atlas", Action: "reloaded"})
	return nil
}

// Current returns the loaded atlas.
func (s *AtlasService) Current() (*Atlas, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.atlas == nil {
		return nil, ErrNotLoaded
	}
	return s.atlas, nil
}

// Map returns a chamber map of the current atlas.
func (s *AtlasService) Map(mapID string) (*ChamberMap, error) {
	atlas, err := s.Current()
	if err != nil {
		return nil, err
	}
	cm, ok := atlas.Map(mapID)
	if !ok {
		return nil, eris.Wrapf(ErrNotFound, "map %q", mapID)
	}
	return cm, nil
}

// ToggleOverlay flips an overlay's visibility on one map and publishes the
// change.
func (s *AtlasService) ToggleOverlay(mapID, overlayID string) (*layer.Toggle, error) {
	cm, err := s.Map(mapID)
	if err != nil {
		return nil, err
	}
	t, ok := cm.Toggle(overlayID)
	if !ok {
		return nil, eris.Wrapf(ErrNotFound, "overlay %q on map %q", overlayID, mapID)
	}

	action := "hidden"
	if t.Toggle() {
		action = "shown"
	}
	s.bus.Publish(Event{Resource: "overlays", Action: action, MapID: cm.Map.ID, ID: overlayID})
	return t, nil
}
