package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	StorageBucket string
	FEOrigins     []string
	GinMode       string
}

// Load reads configuration from the environment, with a .env file as a
// local-development fallback.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Port:          os.Getenv("PORT"),
		DBUser:        os.Getenv("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"),
		DBHost:        os.Getenv("DB_HOST"),
		DBName:        os.Getenv("DB_NAME"),
		StorageBucket: os.Getenv("STORAGE_BUCKET"),
		GinMode:       os.Getenv("GIN_MODE"),
	}
	if config.DBName == "" {
		config.DBName = "neighborly"
	}
	if origins := os.Getenv("FE_ORIGINS"); origins != "" {
		config.FEOrigins = strings.Split(origins, ";")
	}

	for envVar, val := range map[string]string{
		"PORT":           config.Port,
		"DB_USER":        config.DBUser,
		"DB_PASS":        config.DBPass,
		"DB_HOST":        config.DBHost,
		"STORAGE_BUCKET": config.StorageBucket,
		"FE_ORIGINS":     strings.Join(config.FEOrigins, ";"),
	} {
		if val == "" {
			return nil, fmt.Errorf("$%v must be set", envVar)
		}
	}
	return config, nil
}
