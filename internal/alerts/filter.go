package alerts

import (
	"strings"

	"github.com/me/skywarn/pkg/model"
)

// Filter returns the alerts whose title or description contains
// searchText (case-insensitive) and whose severity equals severity.
// model.SeverityAll (or an empty severity) matches every severity.
//
// Pure function: items is never mutated and the relative order of the
// input is preserved.
func Filter(items []model.Alert, searchText string, severity model.Severity) []model.Alert {
	needle := strings.ToLower(strings.TrimSpace(searchText))
	matchAll := severity == model.SeverityAll || severity == ""

	out := make([]model.Alert, 0, len(items))
	for _, a := range items {
		if needle != "" &&
			!strings.Contains(strings.ToLower(a.Title), needle) &&
			!strings.Contains(strings.ToLower(a.Description), needle) {
			continue
		}
		if !matchAll && a.Severity != severity {
			continue
		}
		out = append(out, a)
	}
	return out
}
