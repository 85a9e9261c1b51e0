package models

import "encoding/json"

// SimpleDataset is the single-topic analysis document.
type SimpleDataset struct {
	Metadata       Metadata
	Stats          SimpleStats
	Summary        string
	Visualizations []Visualization
	Articles       []Article
}

// Metadata describes when and how the document was generated.
type Metadata struct {
	GeneratedAt   string `json:"generated_at"`
	TotalArticles int    `json:"total_articles"`
}

// SimpleStats holds the aggregate counters of the single-topic document.
type SimpleStats struct {
	TotalNumbersExtracted int      `json:"total_numbers_extracted"`
	CountriesMentioned    []string `json:"countries_mentioned"`
}

// Visualization is one named chart spec, kept in document order.
// Spec holds the Plotly figure JSON as it appeared in the document.
type Visualization struct {
	Name string
	Spec json.RawMessage
}

// InteractiveDataset is the multi-topic analysis document.
type InteractiveDataset struct {
	Topics []TopicEntry
}

// TopicEntry pairs a topic key with its data. The slice order in
// InteractiveDataset is the insertion order of the source document.
type TopicEntry struct {
	Key  string
	Data TopicData
}

// Topic returns the data for key.
func (d *InteractiveDataset) Topic(key string) (TopicData, bool) {
	if d == nil {
		return TopicData{}, false
	}
	for _, entry := range d.Topics {
		if entry.Key == key {
			return entry.Data, true
		}
	}
	return TopicData{}, false
}

// TopicData is the slice of the document belonging to one topic.
type TopicData struct {
	TopicName     string          `json:"topic_name"`
	Summary       string          `json:"summary"`
	Stats         TopicStats      `json:"stats"`
	SourceCounts  json.RawMessage `json:"source_counts"`
	DateCounts    json.RawMessage `json:"date_counts"`
	CountryCounts json.RawMessage `json:"country_counts"`
	Articles      []Article       `json:"articles"`
}

// TopicStats holds per-topic aggregates.
type TopicStats struct {
	TotalArticles int      `json:"total_articles"`
	Sources       []string `json:"sources"`
	Countries     []string `json:"countries"`
	DateRange     string   `json:"date_range"`
}
