package legis

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	asciiRe = regexp.MustCompile(`^[\x00-\x7F]+$`)
	urlRe   = regexp.MustCompile(`^https?://`)
	digitRe = regexp.MustCompile(`^[0-9]+$`)
)

// Issue lists the problems found in one roster entry.
type Issue struct {
	Index    int      `json:"index" doc:"Zero-based position in the roster"`
	Name     string   `json:"name" doc:"Legislator name, or Unknown"`
	Problems []string `json:"problems" doc:"Validation failures"`
}

func (i Issue) String() string {
	return fmt.Sprintf("Legislator #%d (%s): %s", i.Index+1, i.Name, strings.Join(i.Problems, "; "))
}

// Validate checks every record for completeness and returns one Issue per
// record that fails. An empty result means the roster is clean.
func Validate(records []Record) []Issue {
	var issues []Issue
	for i, r := range records {
		if problems := validateRecord(r); len(problems) > 0 {
			name := r.Name
			if name == "" {
				name = "Unknown"
			}
			issues = append(issues, Issue{Index: i, Name: name, Problems: problems})
		}
	}
	return issues
}

func validateRecord(r Record) []string {
	var p []string

	if !digitRe.MatchString(string(r.District)) {
		p = append(p, "District is blank or not numeric")
	}
	if !r.Chamber.Valid() {
		p = append(p, fmt.Sprintf("Chamber is invalid: %q", r.Chamber))
	}

	switch {
	case r.Name == "":
		p = append(p, "Name is blank")
	case !asciiRe.MatchString(r.Name):
		p = append(p, "Name is not ASCII")
	}

	if strings.TrimSpace(r.Party) == "" {
		p = append(p, "Party is blank")
	}
	if !urlRe.MatchString(r.Link) {
		p = append(p, "Link is blank or not a valid URL")
	}

	for _, c := range r.Committees {
		if c.Name == "" {
			p = append(p, "Committee entry missing name")
		}
	}

	if len(r.Counties) == 0 {
		p = append(p, "Counties is not a non-empty list")
	}
	for _, c := range r.Counties {
		if c == "" || !asciiRe.MatchString(c) {
			p = append(p, fmt.Sprintf("County name not ASCII or blank: %q", c))
		}
	}

	return p
}
