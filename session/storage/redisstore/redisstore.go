package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jrsteele09/go-docadmin/session/storage"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var _ storage.Repo = (*Store)(nil)

type Options struct {
	Addr      string
	Password  string
	DB        int
	Namespace string
}

// Store mirrors the session into a single redis hash, so every Set and
// Delete is one atomic HSET/HDEL.
type Store struct {
	client *redis.Client
	hash   string
}

// OptionsFromURL accepts either a redis:// URL or a bare host:port address
func OptionsFromURL(raw, password string, db int, namespace string) (Options, error) {
	opts := Options{Addr: raw, Password: password, DB: db, Namespace: namespace}
	if !strings.Contains(raw, "://") {
		return opts, nil
	}
	parsed, err := redis.ParseURL(raw)
	if err != nil {
		return Options{}, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.Addr = parsed.Addr
	if parsed.Password != "" {
		opts.Password = parsed.Password
	}
	if parsed.DB != 0 {
		opts.DB = parsed.DB
	}
	return opts, nil
}

// New connects and pings the server before returning the store
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Str("addr", opts.Addr).Msg("Failed to establish Redis connection")
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewWithClient(client, opts.Namespace), nil
}

func NewWithClient(client *redis.Client, namespace string) *Store {
	if namespace == "" {
		namespace = "docadmin"
	}
	return &Store{client: client, hash: namespace + ":session"}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.HGet(ctx, s.hash, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Redis HGET failed")
		return "", false, err
	}
	return val, true, nil
}

func (s *Store) Set(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	fields := make(map[string]interface{}, len(values))
	for k, v := range values {
		fields[k] = v
	}
	if err := s.client.HSet(ctx, s.hash, fields).Err(); err != nil {
		log.Error().Err(err).Str("hash", s.hash).Msg("Redis HSET failed")
		return err
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.HDel(ctx, s.hash, keys...).Err(); err != nil {
		log.Error().Err(err).Str("hash", s.hash).Msg("Redis HDEL failed")
		return err
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
