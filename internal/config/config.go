package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config interface {
	EnvConfig
	GatewayConfig
	StorageConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetBaseURL() string
	GetDataFolder() string
}

type mainConfig struct {
	EnvVars
	Gateway
	Storage
}

// New loads the given dotenv files (".env" when none are named) into the
// process environment and returns the environment backed configuration.
// Variables already set in the environment win over file values.
func New(envFiles ...string) Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("file", f).Msg("Failed to load env file")
		}
	}
	return mainConfig{}
}
