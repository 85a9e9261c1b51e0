package state

import "github.com/DeafMist/news-dashboard/internal/filter"

// ViewState is the mutable view of an interactive dashboard. CurrentTopic is
// meaningful only once Initialized reports true; any key, the empty one
// included, can be selected.
type ViewState struct {
	CurrentTopic  string
	SourceFilter  string
	CountryFilter string

	selected bool
}

// New returns an uninitialized state with both filters disabled.
func New() *ViewState {
	return &ViewState{SourceFilter: filter.All, CountryFilter: filter.All}
}

// Initialized reports whether a topic has been selected.
func (s *ViewState) Initialized() bool {
	return s.selected
}

// Select switches to key and resets both filters, since filter values only
// make sense against the article set of the current topic.
func (s *ViewState) Select(key string) {
	s.CurrentTopic = key
	s.selected = true
	s.ResetFilters()
}

// ResetFilters disables both filters.
func (s *ViewState) ResetFilters() {
	s.SourceFilter = filter.All
	s.CountryFilter = filter.All
}

// SetSource sets the source filter; empty disables it.
func (s *ViewState) SetSource(value string) {
	if value == "" {
		value = filter.All
	}
	s.SourceFilter = value
}

// SetCountry sets the country filter; empty disables it.
func (s *ViewState) SetCountry(value string) {
	if value == "" {
		value = filter.All
	}
	s.CountryFilter = value
}

// Criteria returns the active filter pair.
func (s *ViewState) Criteria() filter.Criteria {
	return filter.Criteria{Source: s.SourceFilter, Country: s.CountryFilter}
}
