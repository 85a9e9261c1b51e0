package chart

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/araddon/dateparse"
	"github.com/tidwall/gjson"
)

// Count is one labelled value of an aggregated count mapping.
type Count struct {
	Label string
	Value float64
}

// ParseCounts reads a {label: number} mapping in document order.
func ParseCounts(raw json.RawMessage) ([]Count, error) {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: missing or invalid counts", ErrMalformedFigure)
	}

	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: counts must be an object", ErrMalformedFigure)
	}

	var (
		counts []Count
		bad    string
	)
	root.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number {
			bad = key.String()
			return false
		}
		counts = append(counts, Count{Label: key.String(), Value: value.Float()})
		return true
	})
	if bad != "" {
		return nil, fmt.Errorf("%w: count %q is not a number", ErrMalformedFigure, bad)
	}

	return counts, nil
}

type xyTrace struct {
	Type string    `json:"type"`
	Mode string    `json:"mode,omitempty"`
	X    []string  `json:"x"`
	Y    []float64 `json:"y"`
}

type pieTrace struct {
	Type   string    `json:"type"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Hole   float64   `json:"hole,omitempty"`
}

func layout(title, xTitle, yTitle string) map[string]any {
	l := map[string]any{
		"title":  map[string]any{"text": title},
		"margin": map[string]any{"t": 40, "r": 20, "b": 60, "l": 50},
	}
	if xTitle != "" {
		l["xaxis"] = map[string]any{"title": map[string]any{"text": xTitle}}
	}
	if yTitle != "" {
		l["yaxis"] = map[string]any{"title": map[string]any{"text": yTitle}}
	}
	return l
}

func split(counts []Count) ([]string, []float64) {
	labels := make([]string, 0, len(counts))
	values := make([]float64, 0, len(counts))
	for _, c := range counts {
		labels = append(labels, c.Label)
		values = append(values, c.Value)
	}
	return labels, values
}

// SourceBar charts articles per source, largest first.
func SourceBar(raw json.RawMessage) (Figure, error) {
	counts, err := ParseCounts(raw)
	if err != nil {
		return Figure{}, err
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Value > counts[j].Value })

	x, y := split(counts)
	return newFigure([]xyTrace{{Type: "bar", X: x, Y: y}}, layout("Articles by Source", "Source", "Articles"))
}

// Timeline charts articles per day in chronological order. Labels that do
// not parse as dates keep their relative order after the dated ones.
func Timeline(raw json.RawMessage) (Figure, error) {
	counts, err := ParseCounts(raw)
	if err != nil {
		return Figure{}, err
	}

	parsed := make(map[string]time.Time, len(counts))
	for _, c := range counts {
		if ts, perr := dateparse.ParseAny(c.Label); perr == nil {
			parsed[c.Label] = ts
		}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		ti, iok := parsed[counts[i].Label]
		tj, jok := parsed[counts[j].Label]
		switch {
		case iok && jok:
			return ti.Before(tj)
		case iok:
			return true
		default:
			return false
		}
	})

	x, y := split(counts)
	return newFigure([]xyTrace{{Type: "scatter", Mode: "lines+markers", X: x, Y: y}}, layout("Articles over Time", "Date", "Articles"))
}

// CountryPie charts country mentions.
func CountryPie(raw json.RawMessage) (Figure, error) {
	counts, err := ParseCounts(raw)
	if err != nil {
		return Figure{}, err
	}

	labels, values := split(counts)
	return newFigure([]pieTrace{{Type: "pie", Labels: labels, Values: values, Hole: 0.4}}, layout("Country Mentions", "", ""))
}
