package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "8787", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "http://localhost:8000", cfg.NLPServiceURL)
	assert.InDelta(t, 0.3, cfg.ConfidenceThreshold, 1e-9)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("TOPIC_CONFIDENCE_THRESHOLD", "0.55")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4318")

	cfg := Load()
	assert.Equal(t, "9999", cfg.Port)
	assert.InDelta(t, 0.55, cfg.ConfidenceThreshold, 1e-9)
	assert.True(t, cfg.TracingEnabled)
}

func TestLoadIgnoresBadThreshold(t *testing.T) {
	t.Setenv("TOPIC_CONFIDENCE_THRESHOLD", "not-a-number")
	cfg := Load()
	assert.InDelta(t, 0.3, cfg.ConfidenceThreshold, 1e-9)
}

func TestLoadTaxonomyDefault(t *testing.T) {
	cfg := Config{}
	taxonomy, err := cfg.LoadTaxonomy()
	require.NoError(t, err)
	require.NotEmpty(t, taxonomy)
	assert.Equal(t, "Sports", taxonomy[0].Label, "default taxonomy order is fixed")
}

func TestLoadTaxonomyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"label": "Weather", "description": "rain, storms, forecasts"},
		{"label": "Wildlife", "description": "birds, foxes, nature sightings"}
	]`), 0644))

	cfg := Config{TaxonomyFile: path}
	taxonomy, err := cfg.LoadTaxonomy()
	require.NoError(t, err)
	require.Len(t, taxonomy, 2)
	assert.Equal(t, "Weather", taxonomy[0].Label)
	assert.Equal(t, "birds, foxes, nature sightings", taxonomy[1].Description)
}

func TestLoadTaxonomyRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0644))

	cfg := Config{TaxonomyFile: path}
	_, err := cfg.LoadTaxonomy()
	assert.Error(t, err)
}
