package graph

import (
	"strings"
)

// DefaultSuggestions caps the number of suggestions returned by Suggest.
const DefaultSuggestions = 5

// Suggestion is a search hit offered while the user types.
type Suggestion struct {
	ID   NodeID `json:"id"`
	Name string `json:"name"`
}

// FormatName cleans a construction form for display: runs of dashes collapse
// to one and angle brackets are dropped.
func FormatName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	prevDash := false
	for _, r := range name {
		switch r {
		case '<', '>':
			continue
		case '-':
			if prevDash {
				continue
			}
			prevDash = true
		default:
			prevDash = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FindByText returns the first node in store order whose id or name contains
// query, ignoring case. An empty query matches nothing.
func (s *Store) FindByText(query string) (NodeID, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}
	for _, id := range s.order {
		n := s.nodes[id]
		if strings.Contains(strings.ToLower(n.Name), q) || strings.Contains(strings.ToLower(string(id)), q) {
			return id, true
		}
	}
	return "", false
}

// Suggest returns up to limit nodes whose "<id> <display name>" text contains
// query, ignoring case, in store order.
func (s *Store) Suggest(query string, limit int) []Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSuggestions
	}

	var out []Suggestion
	for _, id := range s.order {
		name := FormatName(s.nodes[id].Name)
		text := strings.ToLower(string(id) + " " + name)
		if !strings.Contains(text, q) {
			continue
		}
		out = append(out, Suggestion{ID: id, Name: name})
		if len(out) == limit {
			break
		}
	}
	return out
}
