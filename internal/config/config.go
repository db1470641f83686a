package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config aggregates the client and mock-server settings.
type Config struct {
	Client ClientConfig
	Mock   MockConfig
}

// ClientConfig describes how the terminal client reaches the backend.
type ClientConfig struct {
	APIURL          string
	RequestTimeout  time.Duration
	RefreshInterval time.Duration
	CredentialsPath string
}

// MockConfig describes the mock backend's listen address.
type MockConfig struct {
	Addr string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	client, err := loadClientConfig()
	if err != nil {
		return nil, err
	}

	mock, err := loadMockConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Client: client, Mock: mock}, nil
}

func loadClientConfig() (ClientConfig, error) {
	timeout, err := parseOptionalDurationEnv("MYMENTOR_REQUEST_TIMEOUT")
	if err != nil {
		return ClientConfig{}, err
	}

	refresh, err := parseOptionalDurationEnv("MYMENTOR_REFRESH_INTERVAL")
	if err != nil {
		return ClientConfig{}, err
	}

	credPath := strings.TrimSpace(os.Getenv("MYMENTOR_CREDENTIALS_DB"))
	if credPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ClientConfig{}, fmt.Errorf("resolve home directory: %w", err)
		}
		credPath = filepath.Join(home, ".mymentor", "credentials.db")
	}

	cfg := ClientConfig{
		APIURL:          getEnvOrDefault("MYMENTOR_API_URL", "http://localhost:8080"),
		CredentialsPath: credPath,
	}
	if timeout != nil {
		cfg.RequestTimeout = *timeout
	}
	if refresh != nil {
		cfg.RefreshInterval = *refresh
	}
	return cfg, nil
}

func loadMockConfig() (MockConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return MockConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return MockConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return MockConfig{Addr: ":" + port}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalDurationEnv(key string) (*time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := time.ParseDuration(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
