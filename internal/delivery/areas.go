package delivery

import "strings"

// Areas is the fixed list of estates and hotels the shop delivers to around
// Akure. "Other" covers addresses outside the named areas; the free-text
// delivery address carries the detail.
var Areas = []string{
	"FUTA Estate",
	"Alagbaka Estate",
	"Oba Ile Estate",
	"Presidential Hotel",
	"Elizade University",
	"Other",
}

// IsKnownArea reports whether the submitted estate/hotel selection is one of
// the serviced areas. Matching is case-insensitive.
func IsKnownArea(value string) bool {
	trimmed := strings.TrimSpace(value)
	for _, area := range Areas {
		if strings.EqualFold(area, trimmed) {
			return true
		}
	}
	return false
}
