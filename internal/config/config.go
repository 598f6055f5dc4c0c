package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
	"github.com/joho/godotenv"
)

type Config struct {
	GitHubToken     string
	StrictStatus    bool
	FetchTimeout    time.Duration
	Repositories    []string
	DBURL           string
	RabbitMQURL     string
	RefreshInterval time.Duration
	ServerPort      string
	Debug           bool
}

// * LoadConfiguration reads the configuration from the environment, loading
// * a .env file first when one exists
func LoadConfiguration() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		GitHubToken:  os.Getenv("GITHUB_TOKEN"),
		StrictStatus: os.Getenv("GITHUB_STRICT_STATUS") == "true",
		DBURL:        os.Getenv("DB_URL"),
		RabbitMQURL:  os.Getenv("RABBITMQ_URL"),
		ServerPort:   os.Getenv("SERVER_PORT"),
		Debug:        os.Getenv("DEBUG") == "true",
	}

	repos, err := ParseRepositories(os.Getenv("REPOSITORIES"))
	if err != nil {
		return nil, err
	}
	cfg.Repositories = repos

	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("FETCH_TIMEOUT must be a non-negative duration, got %q", v)
		}
		cfg.FetchTimeout = d
	}

	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("REFRESH_INTERVAL must be a positive duration, got %q", v)
		}
		cfg.RefreshInterval = d
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = ":8081"
	}

	logger.Info("✅ env content loaded successfully 🎉")
	return cfg, nil
}

// * ParseRepositories splits a comma-separated descriptor list, keeping its
// * order and rejecting any entry that is not owner/name
func ParseRepositories(list string) ([]string, error) {
	repos := []string{}
	for _, raw := range strings.Split(list, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if _, _, err := ParseRepository(raw); err != nil {
			return nil, fmt.Errorf("invalid entry %q in REPOSITORIES: %w", raw, err)
		}
		repos = append(repos, raw)
	}
	return repos, nil
}

// * ParseRepository takes a string in the format owner/name and returns the
// * owner and name as two separate strings. If the string does not match
// * the expected format, an error is returned.
func ParseRepository(repo string) (owner, name string, err error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository should be in format owner/name")
	}
	return parts[0], parts[1], nil
}
