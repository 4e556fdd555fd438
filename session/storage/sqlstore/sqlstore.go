package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrsteele09/go-docadmin/session/storage"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var _ storage.Repo = (*Store)(nil)

// Entry is one persisted session key within a namespace
type Entry struct {
	Namespace string `gorm:"primaryKey;size:64"`
	EntryKey  string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string {
	return "docadmin_session_entries"
}

// Store mirrors the session into a Postgres table through gorm
type Store struct {
	db        *gorm.DB
	namespace string
}

// Open connects to Postgres and migrates the entries table
func Open(dsn, namespace string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("DB_DSN is required for the postgres session store")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect postgres database: %w", err)
	}
	return NewWithDB(db, namespace)
}

func NewWithDB(db *gorm.DB, namespace string) (*Store, error) {
	if namespace == "" {
		namespace = "docadmin"
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migration failed (session entries): %w", err)
	}
	return &Store{db: db, namespace: namespace}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var e Entry
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND entry_key = ?", s.namespace, key).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		log.Err(err).Str("key", key).Msg("Session entry lookup failed")
		return "", false, err
	}
	return e.Value, true, nil
}

func (s *Store) Set(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	entries := make([]Entry, 0, len(values))
	for k, v := range values {
		entries = append(entries, Entry{Namespace: s.namespace, EntryKey: k, Value: v})
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "namespace"}, {Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&entries).Error
	})
	if err != nil {
		log.Err(err).Int("keys", len(values)).Msg("Session entry upsert failed")
	}
	return err
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND entry_key IN ?", s.namespace, keys).
		Delete(&Entry{}).Error
	if err != nil {
		log.Err(err).Strs("keys", keys).Msg("Session entry delete failed")
	}
	return err
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
