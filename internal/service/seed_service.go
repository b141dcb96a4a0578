package service

import (
	"candypang_backend/internal/config"
	"candypang_backend/internal/model"
	"candypang_backend/pkg/logger"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedService owns the run-once roster seeding. The decision is gated by a
// persisted version marker, never an in-memory flag, so it stays correct
// across restarts.
type SeedService struct {
	DB *gorm.DB
}

func NewSeedService(db *gorm.DB) *SeedService {
	return &SeedService{DB: db}
}

// EnsureSeed wipes and repopulates the student collection when the stored
// seed version is absent or differs from the configured one. The wipe and
// the reseed run in a single transaction, so readers never observe an empty
// roster.
func (s *SeedService) EnsureSeed(cfg config.SeedConfig, force bool) error {
	if cfg.Version == "" || len(cfg.Students) == 0 {
		return nil
	}

	var current model.SeedVersion
	err := s.DB.Order("id DESC").First(&current).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil && current.Version == cfg.Version && !force {
		return nil
	}

	logger.Log.Info("Reseeding student roster",
		zap.String("from", current.Version),
		zap.String("to", cfg.Version),
		zap.Int("students", len(cfg.Students)))

	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, table := range []interface{}{
			&model.Quest{},
			&model.PraiseRecord{},
			&model.Message{},
			&model.Transaction{},
			&model.Coupon{},
			&model.ExpEvent{},
			&model.Notification{},
			&model.Student{},
			&model.SeedVersion{},
		} {
			if err := tx.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
				return err
			}
		}

		for _, seed := range cfg.Students {
			student := model.Student{
				ID:   seed.ID,
				Name: seed.Name,
			}
			if err := tx.Create(&student).Error; err != nil {
				return err
			}
		}

		return tx.Create(&model.SeedVersion{Version: cfg.Version}).Error
	})
}
