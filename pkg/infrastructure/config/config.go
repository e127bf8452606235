package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds server settings read from the environment
type Config struct {
	HTTPAddr        string
	ScenarioDir     string
	KafkaBrokers    string
	KafkaTopic      string
	GinMode         string
	ShutdownTimeout time.Duration
	AccessLog       bool
}

// Load reads configuration from the environment, falling back to defaults
func Load() *Config {
	return &Config{
		HTTPAddr:        getEnv("MRP_HTTP_ADDR", ":8080"),
		ScenarioDir:     getEnv("MRP_SCENARIO_DIR", ""),
		KafkaBrokers:    getEnv("MRP_KAFKA_BROKERS", ""),
		KafkaTopic:      getEnv("MRP_KAFKA_TOPIC", "mrp-analysis-events"),
		GinMode:         strings.ToLower(getEnv("MRP_GIN_MODE", "release")),
		ShutdownTimeout: time.Duration(getEnvInt("MRP_SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		AccessLog:       getEnvBool("MRP_ACCESS_LOG", true),
	}
}

// KafkaEnabled reports whether analysis events should be forwarded to Kafka
func (c *Config) KafkaEnabled() bool {
	return strings.TrimSpace(c.KafkaBrokers) != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
