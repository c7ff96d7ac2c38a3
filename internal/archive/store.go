// Package archive keeps finished games in PostgreSQL.
package archive

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DoyleJ11/monopoly-lobby/internal/lobby"
)

type Store struct {
	db *gorm.DB
}

// Open connects to dsn and migrates the results table.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if err := db.AutoMigrate(&GameResult{}); err != nil {
		return nil, fmt.Errorf("migrate archive: %w", err)
	}
	return New(db), nil
}

func New(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) RecordResult(ctx context.Context, r lobby.Result) error {
	row, err := fromResult(r)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert result for lobby %s: %w", r.LobbyID, err)
	}
	return nil
}

func (s *Store) RecentResults(ctx context.Context, limit int) ([]lobby.Result, error) {
	var rows []GameResult
	if err := s.recent(ctx, limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	out := make([]lobby.Result, 0, len(rows))
	for _, row := range rows {
		r, err := row.toResult()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) recent(ctx context.Context, limit int) *gorm.DB {
	return s.db.WithContext(ctx).Order("finished_at DESC").Order("id DESC").Limit(limit)
}

// Close releases the pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
