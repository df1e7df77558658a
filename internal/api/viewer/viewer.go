// Package viewer serves the Datastar side of the map viewer: overlay toggle
// buttons and the change event stream that tells pages to redraw.
package viewer

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/joeblew999/colegis/internal/humastar"
	"github.com/joeblew999/colegis/internal/service"
	"github.com/joeblew999/colegis/internal/templates"
)

// MapChangedEvent is the browser event that makes a page refetch a map.
const MapChangedEvent = "map-changed"

// ToggleView is the template data of one overlay toggle button.
type ToggleView struct {
	MapID     string
	OverlayID string
	Label     string
	Visible   bool
}

// MapView is the template data of one map section on the viewer page.
type MapView struct {
	ID      string
	Title   string
	Toggles []ToggleView
}

// PageData is the template data of the viewer page.
type PageData struct {
	Title string
	Maps  []MapView
}

// ToggleViews returns the button data for every overlay of a map.
func ToggleViews(cm *service.ChamberMap) []ToggleView {
	out := make([]ToggleView, 0, len(cm.Toggles))
	for _, t := range cm.Toggles {
		out = append(out, ToggleView{
			MapID:     cm.Map.ID,
			OverlayID: t.ID(),
			Label:     t.Label(),
			Visible:   t.IsVisible(),
		})
	}
	return out
}

// NewPageData builds the viewer page data from a composed atlas.
func NewPageData(atlas *service.Atlas) PageData {
	data := PageData{Title: "Colorado Legislative Districts"}
	if atlas == nil {
		return data
	}
	for _, cm := range atlas.Maps() {
		data.Maps = append(data.Maps, MapView{ID: cm.Map.ID, Title: cm.Map.Title, Toggles: ToggleViews(cm)})
	}
	return data
}

// Handler serves the viewer's toggle and event routes.
type Handler struct {
	humastar.Handler
	atlas *service.AtlasService
}

func NewHandler(atlas *service.AtlasService, renderer *templates.Renderer) *Handler {
	return &Handler{
		Handler: humastar.Handler{Renderer: renderer},
		atlas:   atlas,
	}
}

func (h *Handler) RegisterRoutes(api huma.API) {
	huma.Post(api, "/api/v1/viewer/maps/{map}/overlays/{overlay}/toggle", h.Toggle,
		huma.OperationTags("viewer"),
	)
	huma.Get(api, "/api/v1/viewer/events", h.Events,
		huma.OperationTags("viewer"),
	)
}

type ToggleInput struct {
	Map     string `path:"map" doc:"Map ID" example:"senate"`
	Overlay string `path:"overlay" doc:"Overlay ID" example:"counties"`
}

// Toggle flips an overlay and swaps the button for its new label.
func (h *Handler) Toggle(ctx context.Context, input *ToggleInput) (*huma.StreamResponse, error) {
	return h.Stream(func(sse humastar.SSE) {
		t, err := h.atlas.ToggleOverlay(input.Map, input.Overlay)
		if err != nil {
			sse.Error(err.Error())
			return
		}
		cm, err := h.atlas.Map(input.Map)
		if err != nil {
			sse.Error(err.Error())
			return
		}
		view := ToggleView{MapID: cm.Map.ID, OverlayID: t.ID(), Label: t.Label(), Visible: t.IsVisible()}
		sse.Replace(h.Renderer.MustRender("overlay-toggle", view), "#toggle-"+cm.Map.ID+"-"+t.ID())
		sse.DispatchCustomEvent(MapChangedEvent, map[string]any{"map": cm.Map.ID})
	}), nil
}

// Events streams map changes made by any client so every open page stays in
// sync.
func (h *Handler) Events(ctx context.Context, input *humastar.EmptyInput) (*huma.StreamResponse, error) {
	return &huma.StreamResponse{
		Body: func(humaCtx huma.Context) {
			sse := humastar.NewSSE(humaCtx)
			bus := h.atlas.Bus()
			ch := bus.Subscribe()
			defer bus.Unsubscribe(ch)

			done := humaCtx.Context().Done()
			for {
				select {
				case <-done:
					return
				case ev, ok := <-ch:
					if !ok {
						return
					}
					if err := h.forward(sse, ev); err != nil {
						zap.L().Debug("viewer event stream closed", zap.Error(err))
						return
					}
				}
			}
		},
	}, nil
}

// forward pushes one bus event to a page. Overlay events refresh a single map;
// atlas reloads refresh every map and its toggle bar.
func (h *Handler) forward(sse humastar.SSE, ev service.Event) error {
	switch ev.Resource {
	case "overlays":
		return sse.DispatchCustomEvent(MapChangedEvent, map[string]any{"map": ev.MapID})
	case "atlas":
		atlas, err := h.atlas.Current()
		if err != nil {
			return nil
		}
		for _, cm := range atlas.Maps() {
			sse.Patch(h.Renderer.MustRender("toggle-bar", ToggleViews(cm)), "#toggles-"+cm.Map.ID)
			if err := sse.DispatchCustomEvent(MapChangedEvent, map[string]any{"map": cm.Map.ID}); err != nil {
				return err
			}
		}
	}
	return nil
}
