// Package api defines the Huma API routes and handlers.
package api

import (
	"context"
	"sort"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/joeblew999/colegis/internal/legis"
	"github.com/joeblew999/colegis/internal/mapview"
	"github.com/joeblew999/colegis/internal/service"
	"github.com/joeblew999/colegis/internal/style"
)

// Services holds the service dependencies for API handlers.
type Services struct {
	Layer  *service.LayerService
	Source *service.SourceService
	Atlas  *service.AtlasService
}

// RegisterRoutes registers every REST route of APIHandler.
func RegisterRoutes(api huma.API, svc *Services) {
	huma.AutoRegister(api, NewAPIHandler(svc))
}

// Types

type IDInput struct {
	ID string `path:"id" doc:"Overlay ID" example:"counties"`
}

type MapInput struct {
	Map string `path:"map" doc:"Map ID" example:"senate"`
}

type ToggleInput struct {
	MapInput
	Overlay string `path:"overlay" doc:"Overlay ID" example:"counties"`
}

type LayerOutput struct {
	Body service.LayerConfig
}

type LayersOutput struct {
	Body map[string]service.LayerConfig
}

type MessageBody struct {
	Message string `json:"message" doc:"Result message"`
}

type CreatedLayerBody struct {
	ID      string              `json:"id" doc:"Generated overlay ID"`
	Layer   service.LayerConfig `json:"layer" doc:"Created overlay configuration"`
	Message string              `json:"message" doc:"Result message"`
}

type HealthBody struct {
	Status  string `json:"status" doc:"Health status" example:"ok"`
	Version string `json:"version" doc:"API version" example:"1.0.0"`
	Loaded  bool   `json:"loaded" doc:"Whether the maps are composed"`
}

// ToggleState describes an overlay toggle control.
type ToggleState struct {
	ID      string `json:"id" doc:"Overlay ID" example:"counties"`
	Label   string `json:"label" doc:"Control text" example:"Show Counties"`
	Visible bool   `json:"visible" doc:"Whether the overlay is attached"`
}

// MapSummary is a composed map without its geometry.
type MapSummary struct {
	ID      string        `json:"id" doc:"Map ID" example:"senate"`
	Title   string        `json:"title" doc:"Map title"`
	Chamber legis.Chamber `json:"chamber" doc:"Chamber" example:"Senate"`
	Toggles []ToggleState `json:"toggles" doc:"Overlay toggles"`
}

// MapBody is a composed map scene plus its toggles.
type MapBody struct {
	mapview.Scene
	Chamber legis.Chamber `json:"chamber" doc:"Chamber" example:"Senate"`
	Toggles []ToggleState `json:"toggles" doc:"Overlay toggles"`
}

type LegislatorsInput struct {
	Chamber string `query:"chamber" doc:"Restrict to one chamber (Senate or House)"`
}

type LegislatorInput struct {
	Chamber  string `path:"chamber" doc:"Senate or House" example:"senate"`
	District string `path:"district" doc:"District number" example:"3"`
}

// LegislatorBody is a legislator with its derived display values.
type LegislatorBody struct {
	legis.Record
	DisplayName string `json:"displayName" doc:"Name in First Last order"`
	Color       string `json:"color" doc:"Party fill color"`
}

// APIHandler holds all REST API handlers. Methods named Register* are
// auto-discovered by huma.AutoRegister.
type APIHandler struct {
	svc *Services
}

func NewAPIHandler(svc *Services) *APIHandler {
	return &APIHandler{svc: svc}
}

// RegisterHealth registers health check routes.
func (h *APIHandler) RegisterHealth(api huma.API) {
	huma.Get(api, "/health", h.GetHealth, huma.OperationTags("health"))
}

// RegisterMaps registers map scene and toggle routes.
func (h *APIHandler) RegisterMaps(api huma.API) {
	huma.Get(api, "/api/v1/maps", h.ListMaps, huma.OperationTags("maps"))
	huma.Get(api, "/api/v1/maps/{map}", h.GetMap, huma.OperationTags("maps"))
	huma.Post(api, "/api/v1/maps/{map}/overlays/{overlay}/toggle", h.ToggleOverlay, huma.OperationTags("maps"))
	huma.Post(api, "/api/v1/reload", h.Reload, huma.OperationTags("maps"))
}

// RegisterLegislators registers roster routes.
func (h *APIHandler) RegisterLegislators(api huma.API) {
	huma.Get(api, "/api/v1/legislators", h.ListLegislators, huma.OperationTags("legislators"))
	huma.Get(api, "/api/v1/legislators/issues", h.ListIssues, huma.OperationTags("legislators"))
	huma.Get(api, "/api/v1/legislators/{chamber}/{district}", h.GetLegislator, huma.OperationTags("legislators"))
}

// RegisterLayers registers overlay CRUD routes.
func (h *APIHandler) RegisterLayers(api huma.API) {
	huma.Get(api, "/api/v1/layers", h.GetLayers, huma.OperationTags("layers"))
	huma.Post(api, "/api/v1/layers", h.CreateLayer, huma.OperationTags("layers"))
	huma.Get(api, "/api/v1/layers/{id}", h.GetLayer, huma.OperationTags("layers"))
	huma.Put(api, "/api/v1/layers/{id}", h.PutLayer, huma.OperationTags("layers"))
	huma.Delete(api, "/api/v1/layers/{id}", h.DeleteLayer, huma.OperationTags("layers"))
}

// RegisterSources registers input file listing routes.
func (h *APIHandler) RegisterSources(api huma.API) {
	huma.Get(api, "/api/v1/sources", h.GetSources, huma.OperationTags("sources"))
}

// Handlers

func (h *APIHandler) GetHealth(ctx context.Context, input *struct{}) (*struct{ Body HealthBody }, error) {
	loaded := false
	if h.svc != nil && h.svc.Atlas != nil {
		_, err := h.svc.Atlas.Current()
		loaded = err == nil
	}
	return &struct{ Body HealthBody }{Body: HealthBody{Status: "ok", Version: "1.0.0", Loaded: loaded}}, nil
}

func (h *APIHandler) atlas() (*service.Atlas, error) {
	if h.svc == nil || h.svc.Atlas == nil {
		return nil, huma.Error503ServiceUnavailable("service not available")
	}
	a, err := h.svc.Atlas.Current()
	if err != nil {
		return nil, statusError(err)
	}
	return a, nil
}

// statusError maps service errors to HTTP problems.
func statusError(err error) error {
	switch {
	case eris.Is(err, service.ErrNotLoaded):
		return huma.Error503ServiceUnavailable("maps not loaded yet")
	case eris.Is(err, service.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case eris.Is(err, service.ErrInvalidLayer):
		return huma.Error400BadRequest(err.Error())
	case eris.Is(err, service.ErrLayerExists):
		return huma.Error409Conflict(err.Error())
	default:
		return huma.Error500InternalServerError("internal error", err)
	}
}

// Toggles returns the toggle states of a chamber map.
func Toggles(cm *service.ChamberMap) []ToggleState {
	out := make([]ToggleState, 0, len(cm.Toggles))
	for _, t := range cm.Toggles {
		out = append(out, ToggleState{ID: t.ID(), Label: t.Label(), Visible: t.IsVisible()})
	}
	return out
}

func (h *APIHandler) ListMaps(ctx context.Context, input *struct{}) (*struct{ Body []MapSummary }, error) {
	a, err := h.atlas()
	if err != nil {
		return nil, err
	}
	maps := make([]MapSummary, 0)
	for _, cm := range a.Maps() {
		maps = append(maps, MapSummary{ID: cm.Map.ID, Title: cm.Map.Title, Chamber: cm.Chamber, Toggles: Toggles(cm)})
	}
	return &struct{ Body []MapSummary }{Body: maps}, nil
}

func (h *APIHandler) GetMap(ctx context.Context, input *MapInput) (*struct{ Body MapBody }, error) {
	if _, err := h.atlas(); err != nil {
		return nil, err
	}
	cm, err := h.svc.Atlas.Map(input.Map)
	if err != nil {
		return nil, statusError(err)
	}
	return &struct{ Body MapBody }{Body: MapBody{
		Scene:   cm.Map.Scene(),
		Chamber: cm.Chamber,
		Toggles: Toggles(cm),
	}}, nil
}

func (h *APIHandler) ToggleOverlay(ctx context.Context, input *ToggleInput) (*struct{ Body ToggleState }, error) {
	if _, err := h.atlas(); err != nil {
		return nil, err
	}
	t, err := h.svc.Atlas.ToggleOverlay(input.Map, input.Overlay)
	if err != nil {
		return nil, statusError(err)
	}
	return &struct{ Body ToggleState }{Body: ToggleState{ID: t.ID(), Label: t.Label(), Visible: t.IsVisible()}}, nil
}

func (h *APIHandler) Reload(ctx context.Context, input *struct{}) (*struct{ Body MessageBody }, error) {
	if h.svc == nil || h.svc.Atlas == nil {
		return nil, huma.Error503ServiceUnavailable("service not available")
	}
	if err := h.svc.Atlas.Reload(ctx); err != nil {
		return nil, huma.Error502BadGateway("reload failed: " + err.Error())
	}
	return &struct{ Body MessageBody }{Body: MessageBody{Message: "Maps reloaded"}}, nil
}

func (h *APIHandler) ListLegislators(ctx context.Context, input *LegislatorsInput) (*struct{ Body []legis.Record }, error) {
	a, err := h.atlas()
	if err != nil {
		return nil, err
	}
	records := make([]legis.Record, 0, len(a.Records))
	if input.Chamber == "" {
		records = append(records, a.Records...)
	} else {
		ch, ok := legis.ParseChamber(input.Chamber)
		if !ok {
			return nil, huma.Error400BadRequest("unknown chamber " + input.Chamber)
		}
		records = append(records, a.Indexes.For(ch).Records()...)
	}
	return &struct{ Body []legis.Record }{Body: records}, nil
}

func (h *APIHandler) ListIssues(ctx context.Context, input *struct{}) (*struct{ Body []legis.Issue }, error) {
	a, err := h.atlas()
	if err != nil {
		return nil, err
	}
	issues := legis.Validate(a.Records)
	if issues == nil {
		issues = []legis.Issue{}
	}
	return &struct{ Body []legis.Issue }{Body: issues}, nil
}

func (h *APIHandler) GetLegislator(ctx context.Context, input *LegislatorInput) (*struct{ Body LegislatorBody }, error) {
	a, err := h.atlas()
	if err != nil {
		return nil, err
	}
	ch, ok := legis.ParseChamber(input.Chamber)
	if !ok {
		return nil, huma.Error404NotFound("unknown chamber " + input.Chamber)
	}
	rec, ok := a.Indexes.For(ch).Get(input.District)
	if !ok {
		return nil, huma.Error404NotFound("no legislator for " + string(ch) + " district " + input.District)
	}
	return &struct{ Body LegislatorBody }{Body: LegislatorBody{
		Record:      rec,
		DisplayName: style.DisplayName(rec.Name),
		Color:       style.ColorFor(rec.Party),
	}}, nil
}

// reload recomposes the maps after an overlay change. Failures are logged;
// the previous maps keep serving.
func (h *APIHandler) reload(ctx context.Context) {
	if h.svc.Atlas == nil {
		return
	}
	if err := h.svc.Atlas.Reload(ctx); err != nil {
		zap.L().Warn("reload after layer change failed", zap.Error(err))
	}
}

func (h *APIHandler) GetLayers(ctx context.Context, input *struct{}) (*LayersOutput, error) {
	if h.svc == nil || h.svc.Layer == nil {
		return &LayersOutput{Body: map[string]service.LayerConfig{}}, nil
	}
	return &LayersOutput{Body: h.svc.Layer.List()}, nil
}

func (h *APIHandler) CreateLayer(ctx context.Context, input *struct{ Body service.LayerConfig }) (*struct{ Body CreatedLayerBody }, error) {
	if h.svc == nil || h.svc.Layer == nil {
		return nil, huma.Error400BadRequest("service not available")
	}
	created, err := h.svc.Layer.Create(input.Body)
	if err != nil {
		return nil, statusError(err)
	}
	h.reload(ctx)
	return &struct{ Body CreatedLayerBody }{Body: CreatedLayerBody{
		ID: created.ID, Layer: created, Message: "Layer created",
	}}, nil
}

func (h *APIHandler) GetLayer(ctx context.Context, input *IDInput) (*LayerOutput, error) {
	if h.svc == nil || h.svc.Layer == nil {
		return nil, huma.Error404NotFound("service not available")
	}
	layer, ok := h.svc.Layer.Get(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("layer not found")
	}
	return &LayerOutput{Body: layer}, nil
}

func (h *APIHandler) PutLayer(ctx context.Context, input *struct {
	IDInput
	Body service.LayerConfig
}) (*LayerOutput, error) {
	if h.svc == nil || h.svc.Layer == nil {
		return nil, huma.Error400BadRequest("service not available")
	}
	updated, err := h.svc.Layer.Update(input.ID, input.Body)
	if err != nil {
		return nil, statusError(err)
	}
	h.reload(ctx)
	return &LayerOutput{Body: updated}, nil
}

func (h *APIHandler) DeleteLayer(ctx context.Context, input *IDInput) (*struct{ Body MessageBody }, error) {
	if h.svc == nil || h.svc.Layer == nil {
		return nil, huma.Error400BadRequest("service not available")
	}
	if err := h.svc.Layer.Delete(input.ID); err != nil {
		return nil, statusError(err)
	}
	h.reload(ctx)
	return &struct{ Body MessageBody }{Body: MessageBody{Message: "Layer deleted"}}, nil
}

func (h *APIHandler) GetSources(ctx context.Context, input *struct{}) (*struct{ Body []service.SourceFile }, error) {
	if h.svc == nil || h.svc.Source == nil {
		return &struct{ Body []service.SourceFile }{Body: []service.SourceFile{}}, nil
	}
	sources, err := h.svc.Source.List()
	if err != nil {
		return &struct{ Body []service.SourceFile }{Body: []service.SourceFile{}}, nil
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Name < sources[j].Name })
	return &struct{ Body []service.SourceFile }{Body: sources}, nil
}
