package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/birchwood/ethnograph/internal/enrich"
	"github.com/birchwood/ethnograph/internal/models"
)

// Config collects all environment-driven settings in one place.
type Config struct {
	Port     string
	LogLevel string
	LogFile  string

	NLPServiceURL       string
	ConfidenceThreshold float64
	TaxonomyFile        string

	DatabaseURL   string
	RedisHost     string
	RedisPort     string
	RedisPassword string

	OTLPEndpoint     string
	TracingEnabled   bool
	TraceSampleRate  float64
	Environment      string
	YouTubeAPIKey    string
}

// Load reads configuration from the environment. Call after godotenv has
// loaded any .env file.
func Load() Config {
	return Config{
		Port:     getEnvOrDefault("PORT", "8787"),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:  getEnvOrDefault("LOG_FILE", "server.log"),

		NLPServiceURL:       getEnvOrDefault("NLP_SERVICE_URL", "http://localhost:8000"),
		ConfidenceThreshold: getEnvFloat("TOPIC_CONFIDENCE_THRESHOLD", enrich.DefaultConfidenceThreshold),
		TaxonomyFile:        os.Getenv("TOPIC_TAXONOMY_FILE"),

		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     os.Getenv("REDIS_PORT"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		OTLPEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		TracingEnabled:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "",
		TraceSampleRate: getEnvFloat("OTEL_TRACE_SAMPLE_RATE", 1.0),
		Environment:     getEnvOrDefault("ENVIRONMENT", "development"),
		YouTubeAPIKey:   os.Getenv("YOUTUBE_API_KEY"),
	}
}

// LoadTaxonomy reads the topic taxonomy from the configured JSON file: an
// ordered array of {label, description} objects. Order matters — equal
// similarity scores resolve to the earlier entry. Falls back to the default
// taxonomy when no file is configured.
func (c Config) LoadTaxonomy() ([]models.TopicEntry, error) {
	if c.TaxonomyFile == "" {
		return DefaultTaxonomy(), nil
	}

	raw, err := os.ReadFile(c.TaxonomyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}

	var taxonomy []models.TopicEntry
	if err := json.Unmarshal(raw, &taxonomy); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy file: %w", err)
	}
	if len(taxonomy) == 0 {
		return nil, fmt.Errorf("taxonomy file %s contains no topics", c.TaxonomyFile)
	}
	return taxonomy, nil
}

// DefaultTaxonomy covers the broad discussion themes of a local community
// forum.
func DefaultTaxonomy() []models.TopicEntry {
	return []models.TopicEntry{
		{Label: "Sports", Description: "football, gaa, hurling, rugby, matches, training, club fixtures"},
		{Label: "Politics", Description: "government, election, policy, council, taoiseach, voting, referendum"},
		{Label: "Housing", Description: "rent, mortgage, housing market, landlord, tenancy, property prices"},
		{Label: "Transport", Description: "bus, train, traffic, cycling, roads, commuting, parking"},
		{Label: "Events", Description: "festival, concert, gig, market, exhibition, nightlife, things to do"},
		{Label: "Food", Description: "restaurant, cafe, takeaway, pub, dinner, recommendations for eating out"},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return defaultValue
	}
	return v
}
