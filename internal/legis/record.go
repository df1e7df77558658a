// Package legis models Colorado legislators and the district index used to
// join them against boundary features.
package legis

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
)

// Chamber identifies a legislative chamber.
type Chamber string

const (
	Senate Chamber = "Senate"
	House  Chamber = "House"
)

// Chambers lists the chambers in display order.
var Chambers = []Chamber{Senate, House}

// Valid reports whether c is exactly one of the known chambers.
func (c Chamber) Valid() bool {
	return c == Senate || c == House
}

// ParseChamber matches a chamber name case-insensitively.
func ParseChamber(s string) (Chamber, bool) {
	for _, c := range Chambers {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, true
		}
	}
	return "", false
}

// District is a district identifier. The roster encodes it either as a JSON
// number or a string; both decode to the same textual form.
type District string

// UnmarshalJSON accepts numbers, strings and null.
func (d *District) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return eris.Wrap(err, "legis: decode district")
		}
		*d = District(Key(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return eris.Wrapf(err, "legis: district %s is neither string nor number", string(data))
	}
	*d = District(Key(n))
	return nil
}

// Committee is a committee assignment.
type Committee struct {
	Name string `json:"name" doc:"Committee name"`
	Role string `json:"role,omitempty" doc:"Role on the committee, if any"`
}

// Record is one legislator as published in legislators.json.
// An empty Party or Chamber means the roster did not provide one.
type Record struct {
	District   District    `json:"District" doc:"District number"`
	Chamber    Chamber     `json:"Chamber,omitempty" doc:"Senate or House"`
	Name       string      `json:"Name" doc:"Legislator name, 'Last, First' or 'First Last'"`
	Party      string      `json:"Party,omitempty" doc:"Party affiliation"`
	Link       string      `json:"Link,omitempty" doc:"Legislator page URL"`
	Counties   []string    `json:"Counties,omitempty" doc:"Counties served"`
	Committees []Committee `json:"Committees,omitempty" doc:"Committee assignments"`
}

// ParseRecords decodes a legislators.json array.
func ParseRecords(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, eris.Wrap(err, "legis: parse records")
	}
	return records, nil
}
