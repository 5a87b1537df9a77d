package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kpsunited/kps-admin-backend/pkg/logger"
)

// Entry is the single table the Postgres backend uses: one row per
// collection key, the whole JSON blob as the value.
type Entry struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value []byte `gorm:"column:value"`
}

func (Entry) TableName() string { return "kv_entries" }

// GormBackend stores the key space in a relational table. Like the Redis
// backend it leaves quota enforcement to the database.
type GormBackend struct {
	db *gorm.DB
}

func NewGormBackend(db *gorm.DB) (*GormBackend, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv_entries: %w", err)
	}
	logger.Info("Postgres storage backend ready", nil)
	return &GormBackend{db: db}, nil
}

func (g *GormBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry Entry
	err := g.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if err == gorm.ErrRecordNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv get %s: %w", key, err)
	}
	return entry.Value, true, nil
}

func (g *GormBackend) Set(ctx context.Context, key string, value []byte) error {
	entry := Entry{Key: key, Value: value}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

func (g *GormBackend) Delete(ctx context.Context, key string) error {
	if err := g.db.WithContext(ctx).Delete(&Entry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}

func (g *GormBackend) Used(ctx context.Context) (int64, error) {
	var used int64
	err := g.db.WithContext(ctx).Model(&Entry{}).
		Select("COALESCE(SUM(LENGTH(value)), 0)").
		Scan(&used).Error
	if err != nil {
		return 0, fmt.Errorf("kv used: %w", err)
	}
	return used, nil
}

func (g *GormBackend) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
