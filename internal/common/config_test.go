package common

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/sanctions-tracker/constants"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"SANCTIONS_DATA_DIR", "SANCTIONS_OUTPUT", "PDF_TIMEOUT", "PDF_FALLBACK_PDFTOTEXT", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()

	assert.Equal(t, "./data", cfg.Data.Dir)
	assert.Equal(t, filepath.Join("./data", constants.OutputXLSX), cfg.Output.Path)
	assert.Equal(t, constants.DefaultWebLink, cfg.Output.WebLink)
	assert.Equal(t, constants.DefaultSource, cfg.Output.SourceLabel)
	assert.True(t, cfg.PDF.FallbackPdftotext)
	assert.Equal(t, 2*time.Minute, cfg.PDF.Timeout)
	assert.Equal(t, filepath.Join("./data", constants.PDFChunksDir), cfg.PDFChunksDir())
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("SANCTIONS_DATA_DIR", "/srv/sanctions")
	t.Setenv("SANCTIONS_OUTPUT", "")
	t.Setenv("PDF_TIMEOUT", "30s")
	t.Setenv("PDF_FALLBACK_PDFTOTEXT", "false")
	t.Setenv("LOG_FORMAT", "text")

	cfg := LoadConfig()
	assert.Equal(t, "/srv/sanctions/sanctions_output.xlsx", cfg.Output.Path)
	assert.Equal(t, 30*time.Second, cfg.PDF.Timeout)
	assert.False(t, cfg.PDF.FallbackPdftotext)
	assert.Equal(t, "/srv/sanctions/xml_chunks", cfg.XMLChunksDir())
	require.NoError(t, cfg.Validate())
}

func TestConfig_SetDataDir(t *testing.T) {
	t.Setenv("SANCTIONS_DATA_DIR", "")
	t.Setenv("SANCTIONS_OUTPUT", "")

	cfg := LoadConfig()
	cfg.SetDataDir("/tmp/run")
	assert.Equal(t, "/tmp/run/sanctions_output.xlsx", cfg.Output.Path)

	cfg.Output.Path = "/elsewhere/out.xlsx"
	cfg.SetDataDir("/tmp/other")
	assert.Equal(t, "/elsewhere/out.xlsx", cfg.Output.Path)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "empty data dir", mutate: func(c *Config) { c.Data.Dir = " " }},
		{name: "empty output", mutate: func(c *Config) { c.Output.Path = "" }},
		{name: "output not xlsx", mutate: func(c *Config) { c.Output.Path = "out.csv" }},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var appErr *AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, CodeConfig, appErr.Code)
		})
	}
}
