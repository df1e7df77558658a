package style

import (
	"html"
	"strings"

	"go.uber.org/zap"

	"github.com/joeblew999/colegis/internal/legis"
	"github.com/joeblew999/colegis/internal/templates"
)

// Placeholder texts for missing data.
const (
	UnknownName  = "Unknown"
	UnknownParty = "Unknown Party"
	NoneListed   = "None listed"
)

// PopupData is the fully resolved content of a district popup. Every field
// is populated; nothing optional reaches the template.
type PopupData struct {
	Label      string
	District   string
	Name       string
	Party      string
	Link       string
	Counties   []string
	Committees []legis.Committee
}

// NewPopupData resolves popup content. rec is nil when no legislator is
// known for the district.
func NewPopupData(rec *legis.Record, districtID, fallbackLabel string) PopupData {
	d := PopupData{
		Label:    fallbackLabel,
		District: districtID,
		Name:     UnknownName,
		Party:    UnknownParty,
	}
	if rec == nil {
		return d
	}
	if n := strings.TrimSpace(DisplayName(rec.Name)); n != "" {
		d.Name = n
	}
	if p := strings.TrimSpace(rec.Party); p != "" {
		d.Party = p
	}
	d.Link = rec.Link
	d.Counties = rec.Counties
	d.Committees = rec.Committees
	return d
}

// Resolver renders popup HTML with a template renderer.
type Resolver struct {
	renderer *templates.Renderer
}

// NewResolver creates a resolver. A nil renderer uses the embedded templates.
func NewResolver(r *templates.Renderer) *Resolver {
	if r == nil {
		r = templates.Default()
	}
	return &Resolver{renderer: r}
}

// PopupHTML renders the district popup.
func (r *Resolver) PopupHTML(rec *legis.Record, districtID, fallbackLabel string) string {
	d := NewPopupData(rec, districtID, fallbackLabel)
	out, err := r.renderer.Render("district-popup", d)
	if err != nil {
		zap.L().Error("render district popup", zap.String("district", districtID), zap.Error(err))
		return html.EscapeString(d.Label + " " + d.District + ": " + d.Name)
	}
	return out
}

// OverlayPopupHTML renders the identity popup of a county or zip code.
func (r *Resolver) OverlayPopupHTML(name string) string {
	out, err := r.renderer.Render("overlay-popup", name)
	if err != nil {
		zap.L().Error("render overlay popup", zap.String("name", name), zap.Error(err))
		return html.EscapeString(name)
	}
	return out
}

// PopupHTML renders a district popup with the embedded templates.
func PopupHTML(rec *legis.Record, districtID, fallbackLabel string) string {
	return NewResolver(nil).PopupHTML(rec, districtID, fallbackLabel)
}
