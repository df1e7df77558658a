package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
)

// Version is the service version reported by /api/v1/info.
var Version = "0.1.0"

type InfoHandler struct {
	dataDir   string
	sourceURL string
	dbOK      bool
}

func NewInfoHandler(dataDir, sourceURL string, dbOK bool) *InfoHandler {
	return &InfoHandler{dataDir: dataDir, sourceURL: sourceURL, dbOK: dbOK}
}

func (h *InfoHandler) RegisterRoutes(api huma.API) {
	huma.Get(api, "/api/v1/info", h.GetInfo, huma.OperationTags("health"))
}

type InfoBody struct {
	Name      string   `json:"name" doc:"Service name"`
	Version   string   `json:"version" doc:"Service version"`
	DataDir   string   `json:"data_dir" doc:"Data directory path"`
	SourceURL string   `json:"source_url,omitempty" doc:"Remote base URL the inputs are fetched from"`
	DB        bool     `json:"db" doc:"Whether database is available"`
	Features  []string `json:"features" doc:"Available features"`
}

func (h *InfoHandler) GetInfo(ctx context.Context, input *struct{}) (*struct{ Body InfoBody }, error) {
	features := []string{"maps", "legislators", "overlays", "viewer"}
	if h.dbOK {
		features = append(features, "duckdb")
	}
	return &struct{ Body InfoBody }{Body: InfoBody{
		Name:      "colegis",
		Version:   Version,
		DataDir:   h.dataDir,
		SourceURL: h.sourceURL,
		DB:        h.dbOK,
		Features:  features,
	}}, nil
}
