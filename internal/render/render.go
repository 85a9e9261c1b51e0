// Package render maps dataset slices onto the named mount points of a
// dashboard page. Renderers only write; they never read the page back.
package render

import (
	"strconv"

	"golang.org/x/net/html"
)

// Surface is the set of page operations renderers need.
type Surface interface {
	Has(id string) bool
	SetText(id, text string) error
	Clear(id string) error
	Append(id string, nodes ...*html.Node) error
	SetAttr(id, key, value string) error
}

// Mount points of the simple page.
const (
	MountSummary        = "ai-summary"
	MountTotalArticles  = "total-articles"
	MountDataPoints     = "data-points"
	MountCountriesCount = "countries-count"
	MountGenerationDate = "generation-date"
	MountArticlesList   = "articles-list"
)

// Mount points of the interactive page.
const (
	MountTopicButtons  = "topic-buttons"
	MountCurrentTopic  = "current-topic-display"
	MountTopicSummary  = "topic-summary"
	MountStatArticles  = "stat-articles"
	MountStatSources   = "stat-sources"
	MountStatCountries = "stat-countries"
	MountStatDateRange = "stat-date-range"
	MountSourceFilter  = "source-filter"
	MountCountryFilter = "country-filter"
	MountResetFilters  = "reset-filters"
	MountResultsCount  = "results-count"
	MountArticlesGrid  = "articles-grid"
)

// Placeholder texts.
const (
	NoSummary       = "No summary available."
	NoDescription   = "No description available."
	NoArticles      = "No articles match the selected filters."
	NoTopics        = "No topics available."
	LoadFailureText = "Error loading news data. Please check console for details."
)

// DefaultPlaceholderImage replaces missing or broken article images.
const DefaultPlaceholderImage = "https://via.placeholder.com/300x180?text=No+Image"

// Summary writes summary text, or the placeholder when it is empty.
func Summary(s Surface, mount, summary string) error {
	if summary == "" {
		summary = NoSummary
	}
	return s.SetText(mount, summary)
}

// LoadFailure replaces the summary with the static error text and empties
// the article list.
func LoadFailure(s Surface, summaryMount, listMount string) error {
	if err := s.SetText(summaryMount, LoadFailureText); err != nil {
		return err
	}
	return s.Clear(listMount)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

type setter struct {
	s   Surface
	err error
}

func (w *setter) text(mount, value string) {
	if w.err != nil {
		return
	}
	w.err = w.s.SetText(mount, value)
}
