package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/joeblew999/colegis/internal/layer"
	"github.com/joeblew999/colegis/internal/legis"
	"github.com/joeblew999/colegis/internal/mapview"
	"github.com/joeblew999/colegis/internal/style"
)

// ChamberMap is one chamber's composed map with its overlay toggles.
type ChamberMap struct {
	Chamber   legis.Chamber
	Map       *mapview.Map
	Districts *mapview.Layer
	Toggles   []*layer.Toggle
}

// Toggle returns the toggle of an overlay by ID.
func (cm *ChamberMap) Toggle(overlayID string) (*layer.Toggle, bool) {
	for _, t := range cm.Toggles {
		if t.ID() == overlayID {
			return t, true
		}
	}
	return nil, false
}

// Atlas is the result of one composition: every chamber map built from one
// consistent set of inputs.
type Atlas struct {
	Records  []legis.Record
	Indexes  legis.ChamberIndexes
	LoadedAt time.Time
	maps     []*ChamberMap
}

// Maps returns the chamber maps in display order.
func (a *Atlas) Maps() []*ChamberMap {
	return append([]*ChamberMap(nil), a.maps...)
}

// Map returns a chamber map by ID ("senate", "house") or chamber name.
func (a *Atlas) Map(id string) (*ChamberMap, bool) {
	for _, cm := range a.maps {
		if cm.Map.ID == strings.ToLower(id) {
			return cm, true
		}
	}
	return nil, false
}

// MapID is the map identifier used for a chamber.
func MapID(ch legis.Chamber) string {
	return strings.ToLower(string(ch))
}

// Composer fetches the inputs and wires them into chamber maps.
type Composer struct {
	fetcher  Fetcher
	layers   *LayerService
	resolver *style.Resolver
	chambers []legis.Chamber
	view     mapview.View
}

// ComposerOptions configures a Composer.
type ComposerOptions struct {
	// Chambers to build maps for; empty means Senate and House.
	Chambers []legis.Chamber
	Resolver *style.Resolver
	View     *mapview.View
}

// NewComposer creates a composer.
func NewComposer(fetcher Fetcher, layers *LayerService, opts ComposerOptions) *Composer {
	c := &Composer{
		fetcher:  fetcher,
		layers:   layers,
		resolver: opts.Resolver,
		chambers: opts.Chambers,
		view:     mapview.ColoradoView,
	}
	if len(c.chambers) == 0 {
		c.chambers = legis.Chambers
	}
	if c.resolver == nil {
		c.resolver = style.NewResolver(nil)
	}
	if opts.View != nil {
		c.view = *opts.View
	}
	return c
}

type inputs struct {
	records     []legis.Record
	collections map[string]*geojson.FeatureCollection
}

// fetchAll downloads and parses every input concurrently. The first failure
// cancels the remaining fetches and is returned; no partial result is kept.
func (c *Composer) fetchAll(ctx context.Context, overlays []LayerConfig) (*inputs, error) {
	geoFiles := make([]string, 0, len(c.chambers)+len(overlays))
	for _, ch := range c.chambers {
		geoFiles = append(geoFiles, DistrictFiles[ch])
	}
	for _, o := range overlays {
		geoFiles = append(geoFiles, o.File)
	}
	geoFiles = dedupe(geoFiles)

	in := &inputs{collections: make(map[string]*geojson.FeatureCollection, len(geoFiles))}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := c.fetcher.Fetch(gctx, LegislatorsFile)
		if err != nil {
			return eris.Wrapf(err, "fetch %s", LegislatorsFile)
		}
		records, err := legis.ParseRecords(data)
		if err != nil {
			return eris.Wrapf(err, "parse %s", LegislatorsFile)
		}
		in.records = records
		return nil
	})
	for _, name := range geoFiles {
		g.Go(func() error {
			data, err := c.fetcher.Fetch(gctx, name)
			if err != nil {
				return eris.Wrapf(err, "fetch %s", name)
			}
			fc, err := geojson.UnmarshalFeatureCollection(data)
			if err != nil {
				return eris.Wrapf(err, "parse %s", name)
			}
			mu.Lock()
			in.collections[name] = fc
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}

// Load fetches every input and composes a fresh Atlas. Overlays start
// hidden.
func (c *Composer) Load(ctx context.Context) (*Atlas, error) {
	start := time.Now()

	var overlays []LayerConfig
	if c.layers != nil {
		for _, o := range c.layers.Ordered() {
			if ReservedLayerID(o.ID) {
				zap.L().Warn("skipping overlay with reserved ID", zap.String("id", o.ID))
				continue
			}
			overlays = append(overlays, o)
		}
	}

	in, err := c.fetchAll(ctx, overlays)
	if err != nil {
		return nil, eris.Wrap(err, "service: load inputs")
	}

	atlas := &Atlas{
		Records:  in.records,
		Indexes:  legis.BuildChamberIndexes(in.records),
		LoadedAt: time.Now(),
	}

	for _, ch := range c.chambers {
		m := mapview.New(MapID(ch), "Colorado "+string(ch)+" Districts", c.view)
		cm := &ChamberMap{Chamber: ch, Map: m}

		cm.Districts = layer.BuildDistrictLayer(in.collections[DistrictFiles[ch]], atlas.Indexes.For(ch), m, layer.DistrictOptions{
			ID:       DistrictLayerID(MapID(ch)),
			Name:     string(ch) + " Districts",
			Label:    string(ch) + " District",
			Resolver: c.resolver,
		})

		for _, o := range overlays {
			if !o.OnMap(ch) {
				continue
			}
			built := layer.BuildOverlay(in.collections[o.File], layer.OverlayOptions{
				ID:         o.ID,
				Name:       o.Name,
				NameFields: o.NameFields,
				Labels:     o.Labels,
				Color:      o.Stroke,
				Resolver:   c.resolver,
			})
			cm.Toggles = append(cm.Toggles, layer.NewToggle(built, m, o.Name))
		}
		atlas.maps = append(atlas.maps, cm)
	}

	zap.L().Info("atlas composed",
		zap.Int("legislators", len(in.records)),
		zap.Int("senate", atlas.Indexes.Senate.Len()),
		zap.Int("house", atlas.Indexes.House.Len()),
		zap.Int("dropped", atlas.Indexes.Dropped),
		zap.Int("overlays", len(overlays)),
		zap.Duration("took", time.Since(start)),
	)
	return atlas, nil
}
