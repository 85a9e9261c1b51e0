package filter

import (
	"strings"

	"github.com/DeafMist/news-dashboard/internal/models"
)

// All disables a filter.
const All = "all"

// Criteria is the active (source, country) filter pair.
type Criteria struct {
	Source  string
	Country string
}

// Normalize maps empty values to All.
func (c Criteria) Normalize() Criteria {
	if c.Source == "" {
		c.Source = All
	}
	if c.Country == "" {
		c.Country = All
	}
	return c
}

// Apply returns the articles matching both filters. Source matches exactly.
// Country matches as a case-sensitive substring of title and description
// joined without a separator, so "Iran" also matches "Iranian".
func Apply(articles []models.Article, c Criteria) []models.Article {
	c = c.Normalize()

	out := make([]models.Article, 0, len(articles))
	for _, article := range articles {
		if c.Source != All && article.Source != c.Source {
			continue
		}
		if c.Country != All && !strings.Contains(article.Title+article.Description, c.Country) {
			continue
		}
		out = append(out, article)
	}
	return out
}
