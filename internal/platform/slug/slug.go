package slug

import (
	"regexp"
	"strings"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9.]+`)

// Make turns a display name into a stable key, e.g.
// "Ag/AgCl (Sat'd KCl)" -> "ag-agcl-sat-d-kcl". Molarities keep their
// dot so "3.5M" stays distinguishable from "35M".
func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "unnamed"
	}
	return s
}
