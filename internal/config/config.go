package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
)

const (
	DefaultHost        = "localhost"
	DefaultDatasetsDir = "SQL"
	DefaultDriver      = "pgx"
)

// Config holds tool level settings. Dataset connection details live in each
// dataset's config.json.
type Config struct {
	Host        string
	DatasetsDir string
	Driver      string
	SSLMode     string
	LogLevel    string
}

var loadOnce sync.Once

func Load() Config {
	loadOnce.Do(func() {
		_ = godotenv.Load(".env.local")
		_ = godotenv.Load(".env")
	})
	return Config{
		Host:        getEnv("SQLLOADER_HOST", DefaultHost),
		DatasetsDir: getEnv("SQLLOADER_DATASETS", DefaultDatasetsDir),
		Driver:      getEnv("SQLLOADER_DRIVER", DefaultDriver),
		SSLMode:     os.Getenv("SQLLOADER_SSLMODE"),
		LogLevel:    getEnv("SQLLOADER_LOG_LEVEL", "warn"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
