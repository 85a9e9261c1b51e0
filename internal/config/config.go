package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Variants of the dashboard page.
const (
	VariantSimple      = "simple"
	VariantInteractive = "interactive"
)

// Common contains Elasticsearch parameters shared by every service.
type Common struct {
	ElasticsearchAddr     string
	ElasticsearchIndex    string
	ElasticsearchDocument string
}

// UsesElasticsearch reports whether the dataset lives in Elasticsearch.
func (c Common) UsesElasticsearch() bool {
	return c.ElasticsearchDocument != ""
}

// Dashboard describes the HTTP dashboard configuration.
type Dashboard struct {
	Common
	BindAddr         string
	Variant          string
	DataSource       string
	FetchTimeout     time.Duration
	PlaceholderImage string
	SessionCapacity  int
	SessionTTL       time.Duration
}

// Publish configures the tool that stores a dataset document in Elasticsearch.
type Publish struct {
	Common
	Variant      string
	DataSource   string
	FetchTimeout time.Duration
}

// LoadDashboard builds a Dashboard config from environment variables and an
// optional .env file.
func LoadDashboard() (*Dashboard, error) {
	_ = godotenv.Load()

	variant := strings.ToLower(getEnv("DASHBOARD_VARIANT", VariantInteractive))
	c := &Dashboard{
		Common:           loadCommon(),
		BindAddr:         getEnv("DASHBOARD_BIND_ADDR", "0.0.0.0:8080"),
		Variant:          variant,
		DataSource:       getEnv("DASHBOARD_DATA_SOURCE", defaultDataSource(variant)),
		FetchTimeout:     getDuration("DASHBOARD_FETCH_TIMEOUT", "0s"),
		PlaceholderImage: getEnv("DASHBOARD_PLACEHOLDER_IMAGE", "https://via.placeholder.com/300x180?text=No+Image"),
		SessionCapacity:  getInt("DASHBOARD_SESSION_CAPACITY", 1000),
		SessionTTL:       getDuration("DASHBOARD_SESSION_TTL", "2h"),
	}

	if err := validateVariant(c.Variant); err != nil {
		return nil, err
	}
	if c.FetchTimeout < 0 {
		return nil, fmt.Errorf("DASHBOARD_FETCH_TIMEOUT cannot be negative")
	}
	if c.SessionCapacity <= 0 {
		return nil, fmt.Errorf("DASHBOARD_SESSION_CAPACITY must be positive")
	}
	if c.SessionTTL <= 0 {
		return nil, fmt.Errorf("DASHBOARD_SESSION_TTL must be positive")
	}

	return c, nil
}

// LoadPublish builds a Publish config from environment variables.
func LoadPublish() (*Publish, error) {
	_ = godotenv.Load()

	variant := strings.ToLower(getEnv("DASHBOARD_VARIANT", VariantInteractive))
	c := &Publish{
		Common:       loadCommon(),
		Variant:      variant,
		DataSource:   getEnv("DASHBOARD_DATA_SOURCE", defaultDataSource(variant)),
		FetchTimeout: getDuration("DASHBOARD_FETCH_TIMEOUT", "30s"),
	}

	if err := validateVariant(c.Variant); err != nil {
		return nil, err
	}
	if !c.UsesElasticsearch() {
		return nil, fmt.Errorf("ELASTICSEARCH_DOCUMENT must be set")
	}

	return c, nil
}

func loadCommon() Common {
	return Common{
		ElasticsearchAddr:     getEnv("ELASTICSEARCH_ADDR", "http://elasticsearch:9200"),
		ElasticsearchIndex:    getEnv("ELASTICSEARCH_INDEX", "dashboards"),
		ElasticsearchDocument: getEnv("ELASTICSEARCH_DOCUMENT", ""),
	}
}

func validateVariant(variant string) error {
	switch variant {
	case VariantSimple, VariantInteractive:
		return nil
	default:
		return fmt.Errorf("DASHBOARD_VARIANT must be %q or %q, got %q", VariantSimple, VariantInteractive, variant)
	}
}

func defaultDataSource(variant string) string {
	if variant == VariantSimple {
		return "./data/news_data.json"
	}
	return "./data/news_data_interactive.json"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}
