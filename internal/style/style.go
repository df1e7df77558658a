// Package style derives what a district looks like on the map: party fill
// colors, display names and popup content.
package style

import (
	"strings"
)

// Fill colors.
const (
	ColorRepublican = "#d73027"
	ColorDemocrat   = "#4575b4"
	ColorNeutral    = "#ffffb2"
)

// ColorFor maps a party to a fill color by case-insensitive prefix:
// "rep..." is red, "dem..." is blue, everything else (blank, third parties,
// Unaffiliated) is neutral.
func ColorFor(party string) string {
	p := strings.ToLower(strings.TrimSpace(party))
	switch {
	case strings.HasPrefix(p, "rep"):
		return ColorRepublican
	case strings.HasPrefix(p, "dem"):
		return ColorDemocrat
	default:
		return ColorNeutral
	}
}

// DisplayName turns "Last, First" into "First Last". Names without a comma
// are returned unchanged. Only the first two comma-separated parts are used;
// anything after a second comma is dropped.
func DisplayName(name string) string {
	if !strings.Contains(name, ",") {
		return name
	}
	parts := strings.Split(name, ",")
	last := strings.TrimSpace(parts[0])
	first := strings.TrimSpace(parts[1])
	return first + " " + last
}
