package config

import (
	"fmt"
	"os"

	"shopscan/internal/logger"
)

type Config struct {
	// Google Cloud Configuration
	GoogleCloudProject    string
	GoogleCloudLocation   string
	GoogleCredentials     string
	DocumentAIProcessorID string

	// OCR Configuration
	OCRBackend string // "vision" or "documentai"

	// Google Places Configuration
	GoogleMapsAPIKey string
	PlacesBaseURL    string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		GoogleCloudProject:    getEnv("GOOGLE_CLOUD_PROJECT", ""),
		GoogleCloudLocation:   getEnv("GOOGLE_CLOUD_LOCATION", "us"),
		GoogleCredentials:     getEnv("GOOGLE_CREDENTIALS", ""),
		DocumentAIProcessorID: getEnv("DOCUMENT_AI_PROCESSOR_ID", ""),
		OCRBackend:            getEnv("OCR_BACKEND", "vision"),
		GoogleMapsAPIKey:      getEnv("GOOGLE_MAPS_API_KEY", ""),
		PlacesBaseURL:         getEnv("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:         getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:             getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.OCRBackend {
	case "vision", "documentai":
	default:
		return fmt.Errorf("OCR_BACKEND must be \"vision\" or \"documentai\", got %q", c.OCRBackend)
	}
	if c.OCRBackend == "documentai" && c.DocumentAIProcessorID == "" {
		return fmt.Errorf("DOCUMENT_AI_PROCESSOR_ID is required when OCR_BACKEND=documentai")
	}
	if c.GoogleMapsAPIKey == "" {
		return fmt.Errorf("GOOGLE_MAPS_API_KEY is required")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
