package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// document is one whole collection kept as a single row.
type document struct {
	Name      string `gorm:"primaryKey;type:varchar(64)"`
	Data      string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (document) TableName() string {
	return "collections"
}

// GormBackend keeps the whole-collection contract on top of a SQL database:
// one row per collection, rewritten on every save.
type GormBackend struct {
	db *gorm.DB
}

// OpenGorm connects with the named driver ("postgres" or "sqlite") and
// migrates the collections table.
func OpenGorm(driver, dsn string) (*GormBackend, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}
	return NewGormBackend(db)
}

func NewGormBackend(db *gorm.DB) (*GormBackend, error) {
	if err := db.AutoMigrate(&document{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return &GormBackend{db: db}, nil
}

func (b *GormBackend) Load(ctx context.Context, name string) ([]byte, error) {
	var doc document
	err := b.db.WithContext(ctx).First(&doc, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc.Data), nil
}

func (b *GormBackend) Save(ctx context.Context, name string, data []byte) error {
	doc := document{Name: name, Data: string(data), UpdatedAt: time.Now()}
	return b.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&doc).Error
}

func (b *GormBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
