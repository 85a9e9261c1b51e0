package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/news-dashboard/internal/logger"
)

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "dashboard", "info", "json")
	log.Info("dataset loaded", "topics", 3)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "dashboard", line["service"])
	require.Equal(t, "dataset loaded", line["msg"])
	require.Equal(t, float64(3), line["topics"])
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "dashboard", "warn", "")
	log.Info("hidden")
	require.Empty(t, buf.String())

	log.Warn("shown")
	require.Contains(t, buf.String(), "msg=shown")
	require.Contains(t, buf.String(), "service=dashboard")
}
