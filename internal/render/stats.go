package render

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/DeafMist/news-dashboard/internal/models"
)

// SimpleStats fills the counters of the simple page. Zero shows as "0".
func SimpleStats(s Surface, ds *models.SimpleDataset) error {
	w := &setter{s: s}
	w.text(MountTotalArticles, itoa(ds.Metadata.TotalArticles))
	w.text(MountDataPoints, itoa(ds.Stats.TotalNumbersExtracted))
	w.text(MountCountriesCount, itoa(len(ds.Stats.CountriesMentioned)))
	return w.err
}

// GenerationDate writes the document timestamp in loc.
func GenerationDate(s Surface, raw string, loc *time.Location) error {
	return s.SetText(MountGenerationDate, FormatTimestamp(raw, loc))
}

// FormatTimestamp renders raw as "1/2/2006, 3:04:05 PM" in loc. Values that
// do not parse are returned unchanged.
func FormatTimestamp(raw string, loc *time.Location) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	ts, err := dateparse.ParseAny(raw)
	if err != nil {
		return raw
	}
	if loc == nil {
		loc = time.Local
	}
	return ts.In(loc).Format("1/2/2006, 3:04:05 PM")
}

// TopicStats fills the counters and heading for one topic.
func TopicStats(s Surface, key string, td models.TopicData) error {
	w := &setter{s: s}
	w.text(MountCurrentTopic, TopicLabel(key, td))
	w.text(MountStatArticles, itoa(td.Stats.TotalArticles))
	w.text(MountStatSources, itoa(len(td.Stats.Sources)))
	w.text(MountStatCountries, itoa(len(td.Stats.Countries)))
	w.text(MountStatDateRange, td.Stats.DateRange)
	return w.err
}

// TopicLabel is the display name of a topic, falling back to the title-cased key.
func TopicLabel(key string, td models.TopicData) string {
	if td.TopicName != "" {
		return td.TopicName
	}
	words := strings.NewReplacer("_", " ", "-", " ").Replace(key)
	return cases.Title(language.English).String(words)
}
