package config

import "path/filepath"

const (
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type StorageConfig interface {
	GetSessionStore() string
	GetSessionFile() string
	GetSessionKey() string
	GetSessionNamespace() string
	GetRedisURL() string
	GetRedisPassword() string
	GetRedisDB() int
	GetDatabaseDSN() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

func (Storage) GetSessionStore() string {
	return GetEnv("SESSION_STORE", StoreFile)
}

func (Storage) GetSessionFile() string {
	return GetEnv("SESSION_FILE", filepath.Join(EnvVars{}.GetDataFolder(), "session.yaml"))
}

// GetSessionKey returns the passphrase used to encrypt the session file; empty means plaintext
func (Storage) GetSessionKey() string {
	return GetEnv("SESSION_KEY", "")
}

// GetSessionNamespace prefixes keys in shared stores (redis, postgres)
func (Storage) GetSessionNamespace() string {
	return GetEnv("SESSION_NAMESPACE", "docadmin")
}

func (Storage) GetRedisURL() string {
	return GetEnv("REDIS_URL", "")
}

func (Storage) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}

func (Storage) GetRedisDB() int {
	return GetEnvInt("REDIS_DB", 0)
}

func (Storage) GetDatabaseDSN() string {
	return GetEnv("DB_DSN", "")
}
