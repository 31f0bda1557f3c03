package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/simaogato/ledgerflow-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// entry is one row of the kv table
type entry struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

func (entry) TableName() string { return "kv_store" }

// KVRepository implements domain.KVStore on a local SQLite file
type KVRepository struct {
	db *gorm.DB
}

var _ domain.KVStore = (*KVRepository)(nil)

// NewKVRepository creates a new KVRepository over an opened database
func NewKVRepository(db *gorm.DB) *KVRepository {
	return &KVRepository{db: db}
}

// Get retrieves the value stored under key
func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var row entry
	err := r.db.WithContext(ctx).Where("key = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get key %s: %w", key, err)
	}
	return []byte(row.Value), true, nil
}

// Set replaces the value stored under key
func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	row := entry{Key: key, Value: string(value)}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("set key %s: %w", key, err)
	}
	return nil
}
