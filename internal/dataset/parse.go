package dataset

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/DeafMist/news-dashboard/internal/models"
)

var errInvalidJSON = errors.New("document is not valid json")

// ParseSimple decodes a single-topic document. Visualizations keep their
// document order; each value may be a JSON-encoded string or an inline object.
func ParseSimple(data []byte) (*models.SimpleDataset, error) {
	if !gjson.ValidBytes(data) {
		return nil, errInvalidJSON
	}

	var raw struct {
		Metadata models.Metadata    `json:"metadata"`
		Stats    models.SimpleStats `json:"stats"`
		Summary  string             `json:"summary"`
		Articles []models.Article   `json:"articles"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New("document root must be an object")
	}

	ds := &models.SimpleDataset{
		Metadata: raw.Metadata,
		Stats:    raw.Stats,
		Summary:  raw.Summary,
		Articles: raw.Articles,
	}

	viz := root.Get("visualizations")
	if viz.Exists() && viz.Type != gjson.Null {
		if !viz.IsObject() {
			return nil, errors.New("visualizations must be an object")
		}
		viz.ForEach(func(key, value gjson.Result) bool {
			spec := value.Raw
			if value.Type == gjson.String {
				spec = value.Str
			}
			ds.Visualizations = append(ds.Visualizations, models.Visualization{
				Name: key.String(),
				Spec: json.RawMessage(spec),
			})
			return true
		})
	}

	return ds, nil
}

// ParseInteractive decodes a multi-topic document. Topics keep the insertion
// order of the "topics" object.
func ParseInteractive(data []byte) (*models.InteractiveDataset, error) {
	if !gjson.ValidBytes(data) {
		return nil, errInvalidJSON
	}

	topics := gjson.GetBytes(data, "topics")
	if !topics.IsObject() {
		return nil, errors.New("topics must be an object")
	}

	ds := &models.InteractiveDataset{}
	var decodeErr error
	topics.ForEach(func(key, value gjson.Result) bool {
		var td models.TopicData
		if err := json.Unmarshal([]byte(value.Raw), &td); err != nil {
			decodeErr = fmt.Errorf("decode topic %q: %w", key.String(), err)
			return false
		}
		ds.Topics = append(ds.Topics, models.TopicEntry{Key: key.String(), Data: td})
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}

	return ds, nil
}
