package repository

import (
	"candypang_backend/internal/model"
	"candypang_backend/internal/util"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestRepository struct {
	DB *gorm.DB
}

func NewQuestRepository(db *gorm.DB) *QuestRepository {
	return &QuestRepository{DB: db}
}

// FindByIDForUpdate reads the quest row under FOR UPDATE, taken after the
// student row lock. Two concurrent resolutions of the same quest serialize
// here, so the loser sees the terminal status and fails the transition
// check instead of committing a second outcome.
func (r *QuestRepository) FindByIDForUpdate(tx *gorm.DB, studentID, questID string) (*model.Quest, error) {
	var quest model.Quest
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&quest, "id = ? AND student_id = ?", questID, studentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quest, nil
}

func (r *QuestRepository) FindByStudent(studentID string) ([]model.Quest, error) {
	var quests []model.Quest
	err := r.DB.Where("student_id = ?", studentID).Order("created_at DESC").Find(&quests).Error
	return quests, err
}
