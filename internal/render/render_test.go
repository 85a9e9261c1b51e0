package render_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/news-dashboard/internal/chart"
	"github.com/DeafMist/news-dashboard/internal/dom"
	"github.com/DeafMist/news-dashboard/internal/filter"
	"github.com/DeafMist/news-dashboard/internal/models"
	"github.com/DeafMist/news-dashboard/internal/render"
)

const testPage = `<!DOCTYPE html><html><body>
<div id="ai-summary"></div><span id="total-articles"></span><span id="data-points"></span>
<span id="countries-count"></span><span id="generation-date"></span><div id="articles-list"></div>
<div id="viz-source-distribution"></div><div id="viz-timeline"></div><div id="viz-country-mentions"></div>
<div id="topic-buttons"></div><h2 id="current-topic-display"></h2><div id="topic-summary"></div>
<span id="stat-articles"></span><span id="stat-sources"></span><span id="stat-countries"></span><span id="stat-date-range"></span>
<select id="source-filter"></select><select id="country-filter"></select><span id="results-count"></span>
<div id="articles-grid"></div><div id="viz-sources"></div><div id="viz-countries"></div>
</body></html>`

func requireDoc(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseBytes([]byte(testPage))
	require.NoError(t, err)
	return doc
}

func renderHTML(t *testing.T, doc *dom.Document) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, doc.Render(&buf))
	return buf.String()
}

func TestSummaryPlaceholder(t *testing.T) {
	doc := requireDoc(t)
	require.NoError(t, render.Summary(doc, render.MountSummary, ""))
	require.Equal(t, render.NoSummary, doc.TextOf(render.MountSummary))

	require.NoError(t, render.Summary(doc, render.MountSummary, "Markets rallied."))
	require.Equal(t, "Markets rallied.", doc.TextOf(render.MountSummary))
}

func TestSimpleStats(t *testing.T) {
	doc := requireDoc(t)
	ds := &models.SimpleDataset{
		Metadata: models.Metadata{TotalArticles: 12},
		Stats:    models.SimpleStats{TotalNumbersExtracted: 0, CountriesMentioned: []string{"UK", "France"}},
	}
	require.NoError(t, render.SimpleStats(doc, ds))
	require.Equal(t, "12", doc.TextOf(render.MountTotalArticles))
	require.Equal(t, "0", doc.TextOf(render.MountDataPoints))
	require.Equal(t, "2", doc.TextOf(render.MountCountriesCount))
}

func TestFormatTimestamp(t *testing.T) {
	require.Equal(t, "3/5/2024, 2:30:00 PM", render.FormatTimestamp("2024-03-05T14:30:00Z", time.UTC))
	require.Equal(t, "soon", render.FormatTimestamp("soon", time.UTC))
	require.Equal(t, "", render.FormatTimestamp("  ", time.UTC))

	doc := requireDoc(t)
	require.NoError(t, render.GenerationDate(doc, "2024-03-05T14:30:00Z", time.UTC))
	require.Equal(t, "3/5/2024, 2:30:00 PM", doc.TextOf(render.MountGenerationDate))
}

func TestSimpleArticlesOmitMissingImage(t *testing.T) {
	doc := requireDoc(t)
	articles := []models.Article{
		{Title: "Rally", Description: "Stocks up", Source: "BBC", Date: "2024-03-01", URL: "https://example.com/a", Image: "https://example.com/a.jpg"},
		{Title: "Quiet day", Source: "Reuters", Date: "2024-03-02", URL: "https://example.com/b"},
	}
	require.NoError(t, render.SimpleArticles(doc, articles, render.DefaultPlaceholderImage))
	require.Equal(t, 2, doc.Count(render.MountArticlesList, render.CardClass))
	require.Equal(t, 1, doc.Count(render.MountArticlesList, "article-image"))
	require.Equal(t, 2, doc.Count(render.MountArticlesList, "article-link"))

	text := doc.TextOf(render.MountArticlesList)
	require.Contains(t, text, render.NoDescription)
	require.Contains(t, text, "Quiet day")
	require.NotContains(t, text, "undefined")

	out := renderHTML(t, doc)
	require.Contains(t, out, `target="_blank"`)
	require.Contains(t, out, `rel="noopener noreferrer"`)
	require.NotContains(t, out, "onerror")
}

func TestTopicArticlesUsesPlaceholderAndCount(t *testing.T) {
	doc := requireDoc(t)
	articles := []models.Article{{Title: "Chips", Source: "BBC", URL: "https://example.com/3"}}

	require.NoError(t, render.TopicArticles(doc, articles, "https://img.test/none.png"))
	require.Equal(t, 1, doc.Count(render.MountArticlesGrid, render.CardClass))
	require.Equal(t, "Showing 1 article", doc.TextOf(render.MountResultsCount))
	require.Contains(t, renderHTML(t, doc), `src="https://img.test/none.png"`)

	require.NoError(t, render.TopicArticles(doc, nil, render.DefaultPlaceholderImage))
	require.Equal(t, 0, doc.Count(render.MountArticlesGrid, render.CardClass))
	require.Equal(t, "Showing 0 articles", doc.TextOf(render.MountResultsCount))
	require.Equal(t, render.NoArticles, doc.TextOf(render.MountArticlesGrid))
}

func TestTopicButtonsAndStats(t *testing.T) {
	doc := requireDoc(t)
	topics := []models.TopicEntry{
		{Key: "tech", Data: models.TopicData{TopicName: "Tech"}},
		{Key: "world_news"},
	}
	require.NoError(t, render.TopicButtons(doc, topics, "world_news"))
	require.Equal(t, 2, doc.Count(render.MountTopicButtons, "topic-btn"))
	require.Equal(t, 1, doc.Count(render.MountTopicButtons, "active"))
	require.Equal(t, "TechWorld News", doc.TextOf(render.MountTopicButtons))

	td := models.TopicData{
		TopicName: "Tech",
		Stats:     models.TopicStats{TotalArticles: 1, Sources: []string{"BBC"}, Countries: []string{"UK", "US"}, DateRange: "2024"},
	}
	require.NoError(t, render.TopicStats(doc, "tech", td))
	require.Equal(t, "Tech", doc.TextOf(render.MountCurrentTopic))
	require.Equal(t, "1", doc.TextOf(render.MountStatArticles))
	require.Equal(t, "1", doc.TextOf(render.MountStatSources))
	require.Equal(t, "2", doc.TextOf(render.MountStatCountries))
	require.Equal(t, "2024", doc.TextOf(render.MountStatDateRange))
}

func TestFilterOptions(t *testing.T) {
	doc := requireDoc(t)
	stats := models.TopicStats{Sources: []string{"BBC", "Reuters"}, Countries: []string{"UK"}}

	require.NoError(t, render.FilterOptions(doc, stats, filter.Criteria{Source: "Reuters", Country: filter.All}))
	require.Equal(t, "All SourcesBBCReuters", doc.TextOf(render.MountSourceFilter))
	require.Equal(t, "All CountriesUK", doc.TextOf(render.MountCountryFilter))

	out := renderHTML(t, doc)
	require.Contains(t, out, `<option value="Reuters" selected="">Reuters</option>`)
	require.Contains(t, out, `<option value="all" selected="">All Countries</option>`)
}

func TestLoadFailure(t *testing.T) {
	doc := requireDoc(t)
	require.NoError(t, render.SimpleArticles(doc, []models.Article{{Title: "x"}}, ""))
	require.NoError(t, render.LoadFailure(doc, render.MountSummary, render.MountArticlesList))
	require.Equal(t, render.LoadFailureText, doc.TextOf(render.MountSummary))
	require.Equal(t, 0, doc.Count(render.MountArticlesList, render.CardClass))
}

func TestContainerID(t *testing.T) {
	require.Equal(t, "viz-source-distribution", render.ContainerID("source_distribution"))
	require.Equal(t, "viz-country-mentions_by-day", render.ContainerID("country_mentions_by-day"))
	require.Equal(t, "viz-timeline", render.ContainerID("timeline"))
}

func TestSimpleChartsIsolateFailures(t *testing.T) {
	doc := requireDoc(t)
	charts := render.NewCharts(chart.NewPlotlySink(doc), nil)

	failures := charts.Simple(doc, []models.Visualization{
		{Name: "source_distribution", Spec: json.RawMessage(`{"data":[{"type":"bar","x":["BBC"],"y":[2]}],"layout":{}}`)},
		{Name: "timeline", Spec: json.RawMessage(`not json`)},
		{Name: "country_mentions", Spec: json.RawMessage(`{"data":[{"type":"pie"}]}`)},
		{Name: "no_container", Spec: json.RawMessage(`{"data":[]}`)},
	})

	require.Len(t, failures, 1)
	require.Equal(t, "timeline", failures[0].Chart)
	require.True(t, errors.Is(failures[0].Err, chart.ErrMalformedFigure))

	require.Equal(t, 1, doc.Count("viz-source-distribution", "chart-draw"))
	require.Equal(t, 0, doc.Count("viz-timeline", "chart-draw"))
	require.Equal(t, 1, doc.Count("viz-country-mentions", "chart-draw"))
}

func TestTopicChartsIsolateFailures(t *testing.T) {
	doc := requireDoc(t)
	charts := render.NewCharts(chart.NewPlotlySink(doc), nil)

	failures := charts.Topic(doc, models.TopicData{
		SourceCounts:  json.RawMessage(`{"BBC":1}`),
		DateCounts:    json.RawMessage(`"broken"`),
		CountryCounts: json.RawMessage(`{"UK":1}`),
	})

	names := make([]string, 0, len(failures))
	for _, f := range failures {
		names = append(names, f.Chart)
	}
	// Broken date counts only cost the timeline chart.
	require.Equal(t, []string{"timeline"}, names)
	require.Equal(t, 1, doc.Count(render.ContainerSources, "chart-draw"))
	require.Equal(t, 1, doc.Count(render.ContainerCountries, "chart-draw"))
}

type brokenSink struct{ calls []string }

func (b *brokenSink) Draw(container string, _ chart.Figure, _ chart.Options) error {
	b.calls = append(b.calls, container)
	if strings.HasSuffix(container, "sources") {
		return errors.New("sink exploded")
	}
	return nil
}

func TestTopicChartsContinueAfterSinkError(t *testing.T) {
	doc := requireDoc(t)
	sink := &brokenSink{}
	failures := render.NewCharts(sink, nil).Topic(doc, models.TopicData{
		SourceCounts:  json.RawMessage(`{"BBC":1}`),
		DateCounts:    json.RawMessage(`{"2024-01-01":1}`),
		CountryCounts: json.RawMessage(`{"UK":1}`),
	})
	require.Len(t, failures, 1)
	require.Equal(t, "sources", failures[0].Chart)
	require.Equal(t, []string{render.ContainerSources, render.ContainerTimeline, render.ContainerCountries}, sink.calls)
}
