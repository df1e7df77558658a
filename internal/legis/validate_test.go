package legis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() Record {
	return Record{
		District:   "7",
		Chamber:    Senate,
		Name:       "Smith, Jane",
		Party:      "Republican",
		Link:       "https://leg.colorado.gov/legislators/jane-smith",
		Committees: []Committee{{Name: "Appropriations", Role: "Member"}},
		Counties:   []string{"Mesa", "Delta"},
	}
}

func TestValidate_Clean(t *testing.T) {
	assert.Empty(t, Validate([]Record{validRecord()}))
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Record)
		want   string
	}{
		{"blank district", func(r *Record) { r.District = "" }, "District is blank or not numeric"},
		{"non numeric district", func(r *Record) { r.District = "N/A" }, "District is blank or not numeric"},
		{"bad chamber", func(r *Record) { r.Chamber = "Assembly" }, `Chamber is invalid: "Assembly"`},
		{"blank name", func(r *Record) { r.Name = "" }, "Name is blank"},
		{"non ascii name", func(r *Record) { r.Name = "Peña, José" }, "Name is not ASCII"},
		{"blank party", func(r *Record) { r.Party = " " }, "Party is blank"},
		{"bad link", func(r *Record) { r.Link = "leg.colorado.gov" }, "Link is blank or not a valid URL"},
		{"committee without name", func(r *Record) { r.Committees = []Committee{{Role: "Chair"}} }, "Committee entry missing name"},
		{"no counties", func(r *Record) { r.Counties = nil }, "Counties is not a non-empty list"},
		{"blank county", func(r *Record) { r.Counties = []string{""} }, `County name not ASCII or blank: ""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)

			issues := Validate([]Record{validRecord(), rec})
			require.Len(t, issues, 1)
			assert.Equal(t, 1, issues[0].Index)
			assert.Contains(t, issues[0].Problems, tt.want)
		})
	}
}

func TestIssueString(t *testing.T) {
	issues := Validate([]Record{{}})
	require.Len(t, issues, 1)

	assert.Equal(t, "Unknown", issues[0].Name)
	assert.Contains(t, issues[0].String(), "Legislator #1 (Unknown)")
}

func TestValidate_OneProblemPerUnnamedCommittee(t *testing.T) {
	rec := validRecord()
	rec.Committees = []Committee{{Role: "Chair"}, {Name: "Finance"}, {Role: "Member"}}

	issues := Validate([]Record{rec})
	require.Len(t, issues, 1)

	var missing int
	for _, p := range issues[0].Problems {
		if p == "Committee entry missing name" {
			missing++
		}
	}
	assert.Equal(t, 2, missing)
}
