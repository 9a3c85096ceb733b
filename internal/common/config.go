package common

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joseph-ayodele/sanctions-tracker/constants"
)

// Config holds all application configuration
type Config struct {
	Data   DataConfig
	PDF    PDFConfig
	Output OutputConfig
	Gender GenderConfig
	Log    LogConfig
}

// DataConfig holds input and trace folder locations
type DataConfig struct {
	Dir     string
	XMLPath string // explicit XML input; empty -> newest file in <Dir>/xml_files
	PDFPath string // explicit PDF (or extracted .txt) input; empty -> newest file in <Dir>/pdf
}

// PDFConfig holds PDF text extraction settings
type PDFConfig struct {
	Pdftotext         string
	FallbackPdftotext bool
	Timeout           time.Duration
}

// OutputConfig holds spreadsheet settings
type OutputConfig struct {
	Path        string
	WebLink     string
	SourceLabel string
}

// GenderConfig holds the gender classification dataset location
type GenderConfig struct {
	DatasetPath string // empty -> embedded default dataset
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string
	Format string // "json" | "text"
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	dataDir := getEnv("SANCTIONS_DATA_DIR", "./data")
	return &Config{
		Data: DataConfig{
			Dir:     dataDir,
			XMLPath: getEnv("SANCTIONS_XML_PATH", ""),
			PDFPath: getEnv("SANCTIONS_PDF_PATH", ""),
		},
		PDF: PDFConfig{
			Pdftotext:         getEnv("PDFTOTEXT_BIN", "pdftotext"),
			FallbackPdftotext: getEnvAsBool("PDF_FALLBACK_PDFTOTEXT", true),
			Timeout:           getEnvAsDuration("PDF_TIMEOUT", 2*time.Minute),
		},
		Output: OutputConfig{
			Path:        getEnv("SANCTIONS_OUTPUT", filepath.Join(dataDir, constants.OutputXLSX)),
			WebLink:     getEnv("SANCTIONS_WEB_LINK", constants.DefaultWebLink),
			SourceLabel: getEnv("SANCTIONS_SOURCE_LABEL", constants.DefaultSource),
		},
		Gender: GenderConfig{
			DatasetPath: getEnv("GENDER_DATASET", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// SetDataDir moves the data folder. The output path follows it unless it
// was set explicitly.
func (c *Config) SetDataDir(dir string) {
	if c.Output.Path == filepath.Join(c.Data.Dir, constants.OutputXLSX) {
		c.Output.Path = filepath.Join(dir, constants.OutputXLSX)
	}
	c.Data.Dir = dir
}

// Trace folder helpers

func (c *Config) XMLInputDir() string  { return filepath.Join(c.Data.Dir, constants.XMLInputDir) }
func (c *Config) XMLChunksDir() string { return filepath.Join(c.Data.Dir, constants.XMLChunksDir) }
func (c *Config) PDFInputDir() string  { return filepath.Join(c.Data.Dir, constants.PDFInputDir) }
func (c *Config) PDFChunksDir() string { return filepath.Join(c.Data.Dir, constants.PDFChunksDir) }

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Data.Dir) == "" {
		return NewAppError(CodeConfig, "SANCTIONS_DATA_DIR is required", ErrInvalidInput)
	}
	if strings.TrimSpace(c.Output.Path) == "" {
		return NewAppError(CodeConfig, "SANCTIONS_OUTPUT is required", ErrInvalidInput)
	}
	if !strings.EqualFold(filepath.Ext(c.Output.Path), ".xlsx") {
		return NewAppError(CodeConfig, "SANCTIONS_OUTPUT must be an .xlsx path", ErrInvalidInput)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return NewAppError(CodeConfig, "LOG_FORMAT must be json or text", ErrInvalidInput)
	}
	return nil
}
