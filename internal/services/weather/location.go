package weather

import (
	"regexp"
	"strings"
)

var (
	parenthetical = regexp.MustCompile(`\s*\([^)]*\)`)
	marketSuffix  = regexp.MustCompile(`(?i)\b(APMC|F&V|Mandi|Market|Yard|Sabzi)\b\.?`)
	multiSpace    = regexp.MustCompile(`\s{2,}`)
)

// CleanMandiLocation strips market-designation noise from a mandi name
// so it resolves as a geographic place. "Azadpur (F&V) APMC Mandi"
// becomes "Azadpur".
func CleanMandiLocation(name string) string {
	s := parenthetical.ReplaceAllString(name, "")
	s = marketSuffix.ReplaceAllString(s, "")
	s = strings.Trim(s, " ,-")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
