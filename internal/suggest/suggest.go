package suggest

import "strings"

// MaxSuggestions caps how many matches the dropdown renders.
const MaxSuggestions = 10

// Suggestion is a municipality name that matched the query, plus the
// byte span of the first case-insensitive occurrence so the renderer
// can emphasize it.
type Suggestion struct {
	Value      string
	MatchStart int
	MatchEnd   int
}

// Filter returns the municipalities whose name contains query as a
// literal, case-insensitive substring. Regex metacharacters in the
// query have no special meaning. Ordering follows the input list and
// the result is capped at MaxSuggestions after filtering; the input
// slice is never modified.
func Filter(names []string, query string) []Suggestion {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	needle := strings.ToLower(query)
	var out []Suggestion
	for _, name := range names {
		idx := strings.Index(strings.ToLower(name), needle)
		if idx < 0 {
			continue
		}
		out = append(out, Suggestion{
			Value:      name,
			MatchStart: idx,
			MatchEnd:   idx + len(needle),
		})
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}
