package planner

import (
	"strings"

	"tripcraft/models"
)

// Matchable is what interest matching looks at.
type Matchable struct {
	Type        string
	Title       string
	Description string
}

func eventMatchable(e models.CatalogEvent, lng string) Matchable {
	return Matchable{Type: e.Type, Title: e.Title(lng), Description: e.Description(lng)}
}

// Attractions are scored as if they were culture events described by their
// summary.
func attractionMatchable(a models.Attraction, lng string) Matchable {
	return Matchable{Type: models.TypeCulture, Title: a.Title(lng), Description: a.Summary(lng)}
}

// NormalizeInterests lower-cases, trims and dedupes keywords. Blank entries
// are dropped.
func NormalizeInterests(interests []string) []string {
	seen := make(map[string]bool, len(interests))
	out := make([]string, 0, len(interests))
	for _, in := range interests {
		k := strings.ToLower(strings.TrimSpace(in))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// MatchInterests scores item against normalized interest keywords. No
// interests is a perfect match. Each keyword adds 3 for the type, 2 for the
// title and 1 for the description; the sum is divided by 3 per keyword and
// not clipped.
func MatchInterests(item Matchable, interests []string) float64 {
	if len(interests) == 0 {
		return 1
	}
	typ := strings.ToLower(item.Type)
	title := strings.ToLower(item.Title)
	desc := strings.ToLower(item.Description)

	score := 0
	for _, in := range interests {
		if strings.Contains(typ, in) {
			score += 3
		}
		if strings.Contains(title, in) {
			score += 2
		}
		if strings.Contains(desc, in) {
			score += 1
		}
	}
	return float64(score) / float64(len(interests)*3)
}
