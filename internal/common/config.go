package common

import (
	"os"
	"strconv"
)

// Config holds all CLI-facing configuration. The engine itself takes an
// explicit extract.Config value; this loader only supplies the defaults the
// command line front-ends feed into it.
type Config struct {
	Engine EngineConfig
	Batch  BatchConfig
}

// EngineConfig mirrors the engine tunables that may come from the
// environment.
type EngineConfig struct {
	Locale         string
	HeaderFraction float64
	ItemsCeiling   float64
	Tolerance      float64
}

// BatchConfig holds worker settings for batch extraction.
type BatchConfig struct {
	Workers   int
	QueueSize int
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Locale:         getEnv("EXTRACT_LOCALE", "fr-CA"),
			HeaderFraction: getEnvAsFloat64("EXTRACT_HEADER_FRACTION", 0.20),
			ItemsCeiling:   getEnvAsFloat64("EXTRACT_ITEMS_CEILING", 0.75),
			Tolerance:      getEnvAsFloat64("EXTRACT_TOLERANCE", 0.02),
		},
		Batch: BatchConfig{
			Workers:   getEnvAsInt("BATCH_WORKERS", 4),
			QueueSize: getEnvAsInt("BATCH_QUEUE_SIZE", 256),
		},
	}
}

// Validate validates the loaded configuration.
func (c *Config) Validate() error {
	if c.Engine.HeaderFraction <= 0 || c.Engine.HeaderFraction > 1 {
		return NewAppError("CONFIG_ERROR", "EXTRACT_HEADER_FRACTION must be in (0,1]", ErrInvalidInput)
	}
	if c.Engine.ItemsCeiling <= 0 || c.Engine.ItemsCeiling > 1 {
		return NewAppError("CONFIG_ERROR", "EXTRACT_ITEMS_CEILING must be in (0,1]", ErrInvalidInput)
	}
	if c.Engine.Tolerance < 0 {
		return NewAppError("CONFIG_ERROR", "EXTRACT_TOLERANCE must be >= 0", ErrInvalidInput)
	}
	if c.Batch.Workers <= 0 {
		return NewAppError("CONFIG_ERROR", "BATCH_WORKERS must be positive", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
