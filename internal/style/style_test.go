package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeblew999/colegis/internal/legis"
)

func TestColorFor(t *testing.T) {
	tests := []struct {
		party string
		want  string
	}{
		{"Republican", ColorRepublican},
		{"REP", ColorRepublican},
		{"rep.", ColorRepublican},
		{"  Republican ", ColorRepublican},
		{"Democrat", ColorDemocrat},
		{"Democratic", ColorDemocrat},
		{"dem", ColorDemocrat},
		{"", ColorNeutral},
		{"   ", ColorNeutral},
		{"Independent", ColorNeutral},
		{"Unaffiliated", ColorNeutral},
		{"Libertarian", ColorNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.party, func(t *testing.T) {
			assert.Equal(t, tt.want, ColorFor(tt.party))
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Smith, Jane", "Jane Smith"},
		{"Jane Smith", "Jane Smith"},
		{"  Smith ,  Jane  ", "Jane Smith"},
		{"Smith, Jane, Jr.", "Jane Smith"},
		{"Smith,", " Smith"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.in))
		})
	}
}

func TestNewPopupData_Fallbacks(t *testing.T) {
	d := NewPopupData(nil, "9", "Senate District")

	assert.Equal(t, UnknownName, d.Name)
	assert.Equal(t, UnknownParty, d.Party)
	assert.Empty(t, d.Counties)

	d = NewPopupData(&legis.Record{Name: "", Party: " "}, "9", "Senate District")
	assert.Equal(t, UnknownName, d.Name)
	assert.Equal(t, UnknownParty, d.Party)
}

func TestPopupHTML(t *testing.T) {
	rec := &legis.Record{
		District:   "3",
		Name:       "Smith, Jane",
		Party:      "Democrat",
		Counties:   []string{"Denver", "Adams"},
		Committees: []legis.Committee{{Name: "Finance", Role: "Chair"}, {Name: "Judiciary"}},
	}

	out := PopupHTML(rec, "3", "Senate District")

	assert.Contains(t, out, "Senate District 3")
	assert.Contains(t, out, "Jane Smith")
	assert.Contains(t, out, "Democrat")
	assert.Contains(t, out, "Denver, Adams")
	assert.Contains(t, out, "<li>Finance (Chair)</li>")
	assert.Contains(t, out, "<li>Judiciary</li>")
	assert.NotContains(t, out, NoneListed)
}

func TestPopupHTML_MissingLegislator(t *testing.T) {
	out := PopupHTML(nil, "12", "House District")

	assert.Contains(t, out, "House District 12")
	assert.Contains(t, out, "Unknown")
	assert.Contains(t, out, "Unknown Party")
	assert.Contains(t, out, "Counties:</b> None listed")
	assert.Contains(t, out, "Committees:</b> None listed")
}

func TestPopupHTML_Escapes(t *testing.T) {
	out := PopupHTML(&legis.Record{Name: "<script>x</script>"}, "1", "District")

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestOverlayPopupHTML(t *testing.T) {
	r := NewResolver(nil)
	require.NotNil(t, r)

	assert.Equal(t, `<div class="overlay-popup"><strong>Mesa &amp; Delta</strong></div>`, r.OverlayPopupHTML("Mesa & Delta"))
}
