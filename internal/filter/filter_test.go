package filter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/news-dashboard/internal/filter"
	"github.com/DeafMist/news-dashboard/internal/models"
)

func sampleArticles() []models.Article {
	return []models.Article{
		{Title: "Elections in France", Description: "Polls open", Source: "BBC"},
		{Title: "Markets", Description: "The france index fell", Source: "BBC"},
		{Title: "Storm hits", Description: "Coastal France braces", Source: "Reuters"},
		{Title: "Tech IPO", Source: "Reuters"},
		{Title: "Elections in France", Description: "Polls open", Source: "BBC"},
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria filter.Criteria
		want     []int
	}{
		{name: "no filters", criteria: filter.Criteria{Source: filter.All, Country: filter.All}, want: []int{0, 1, 2, 3, 4}},
		{name: "empty means all", criteria: filter.Criteria{}, want: []int{0, 1, 2, 3, 4}},
		{name: "source exact", criteria: filter.Criteria{Source: "Reuters", Country: filter.All}, want: []int{2, 3}},
		{name: "source case sensitive", criteria: filter.Criteria{Source: "bbc", Country: filter.All}, want: []int{}},
		{name: "country substring", criteria: filter.Criteria{Source: filter.All, Country: "France"}, want: []int{0, 2, 4}},
		{name: "country case sensitive", criteria: filter.Criteria{Source: filter.All, Country: "france"}, want: []int{1}},
		{name: "conjunctive", criteria: filter.Criteria{Source: "BBC", Country: "France"}, want: []int{0, 4}},
	}

	articles := sampleArticles()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := make([]models.Article, 0, len(tt.want))
			for _, i := range tt.want {
				want = append(want, articles[i])
			}
			require.Equal(t, want, filter.Apply(articles, tt.criteria))
		})
	}
}

func TestApplyJoinsTitleAndDescriptionWithoutSeparator(t *testing.T) {
	articles := []models.Article{{Title: "Visit Ch", Description: "ad for sale", Source: "X"}}

	got := filter.Apply(articles, filter.Criteria{Source: filter.All, Country: "Chad"})
	require.Len(t, got, 1)
}

func TestApplyIdempotent(t *testing.T) {
	articles := sampleArticles()
	c := filter.Criteria{Source: "BBC", Country: "France"}

	first := filter.Apply(articles, c)
	second := filter.Apply(articles, c)
	require.Equal(t, first, second)
	require.Equal(t, first, filter.Apply(first, c))
}

func TestApplyComposes(t *testing.T) {
	articles := sampleArticles()
	for _, source := range []string{filter.All, "BBC", "Reuters", "CNN"} {
		for _, country := range []string{filter.All, "France", "france", "Tech"} {
			direct := filter.Apply(articles, filter.Criteria{Source: source, Country: country})
			staged := filter.Apply(
				filter.Apply(articles, filter.Criteria{Source: source, Country: filter.All}),
				filter.Criteria{Source: filter.All, Country: country},
			)
			require.Equal(t, direct, staged, "source=%s country=%s", source, country)
		}
	}
}

func TestApplyDoesNotAliasInput(t *testing.T) {
	articles := sampleArticles()
	got := filter.Apply(articles, filter.Criteria{})
	got[0].Title = "changed"
	require.Equal(t, "Elections in France", articles[0].Title)
	require.NotNil(t, filter.Apply(nil, filter.Criteria{}))
}
