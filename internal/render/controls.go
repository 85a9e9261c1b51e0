package render

import (
	"golang.org/x/net/html"

	"github.com/DeafMist/news-dashboard/internal/dom"
	"github.com/DeafMist/news-dashboard/internal/filter"
	"github.com/DeafMist/news-dashboard/internal/models"
)

// TopicButtons renders one button per topic in dataset order. The button
// for current is marked active.
func TopicButtons(s Surface, topics []models.TopicEntry, current string) error {
	if err := s.Clear(MountTopicButtons); err != nil {
		return err
	}
	buttons := make([]*html.Node, 0, len(topics))
	for _, t := range topics {
		class := "topic-btn"
		if t.Key == current {
			class += " active"
		}
		buttons = append(buttons, dom.Element("button", dom.Attrs(
			"type", "submit",
			"name", "value",
			"value", t.Key,
			"class", class,
			"data-topic", t.Key,
		), dom.Text(TopicLabel(t.Key, t.Data))))
	}
	return s.Append(MountTopicButtons, buttons...)
}

// FilterOptions rebuilds both filter dropdowns for a topic and marks the
// active criteria as selected.
func FilterOptions(s Surface, stats models.TopicStats, c filter.Criteria) error {
	c = c.Normalize()
	if err := options(s, MountSourceFilter, "All Sources", stats.Sources, c.Source); err != nil {
		return err
	}
	return options(s, MountCountryFilter, "All Countries", stats.Countries, c.Country)
}

func options(s Surface, mount, allLabel string, values []string, selected string) error {
	if err := s.Clear(mount); err != nil {
		return err
	}
	nodes := make([]*html.Node, 0, len(values)+1)
	nodes = append(nodes, option(filter.All, allLabel, selected == filter.All))
	for _, v := range values {
		nodes = append(nodes, option(v, v, v == selected))
	}
	return s.Append(mount, nodes...)
}

func option(value, label string, selected bool) *html.Node {
	attrs := dom.Attrs("value", value)
	if selected {
		attrs = append(attrs, html.Attribute{Key: "selected"})
	}
	return dom.Element("option", attrs, dom.Text(label))
}
