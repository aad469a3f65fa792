package views

import (
	"strings"

	"github.com/Tshenolo1994/fe-dev-test-tshenolo/models"
)

// FilterByTitle returns the posts whose title contains term, ignoring case.
// Order is preserved and an empty term matches everything.
func FilterByTitle(posts []models.Post, term string) []models.Post {
	needle := strings.ToLower(term)
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), needle) {
			out = append(out, p)
		}
	}
	return out
}
