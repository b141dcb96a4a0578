package repository

import (
	"candypang_backend/internal/model"
	"candypang_backend/internal/util"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PraiseRepository struct {
	DB *gorm.DB
}

func NewPraiseRepository(db *gorm.DB) *PraiseRepository {
	return &PraiseRepository{DB: db}
}

func (r *PraiseRepository) FindByID(tx *gorm.DB, studentID, praiseID string) (*model.PraiseRecord, error) {
	var praise model.PraiseRecord
	err := tx.First(&praise, "id = ? AND student_id = ?", praiseID, studentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPraiseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &praise, nil
}

func (r *PraiseRepository) FindByStudent(studentID string) ([]model.PraiseRecord, error) {
	var praises []model.PraiseRecord
	err := r.DB.Where("student_id = ?", studentID).Order("created_at DESC").Find(&praises).Error
	return praises, err
}

func (r *PraiseRepository) Create(praise *model.PraiseRecord) error {
	return r.DB.Create(praise).Error
}

type MessageRepository struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) FindByID(studentID, messageID string) (*model.Message, error) {
	var message model.Message
	err := r.DB.First(&message, "id = ? AND student_id = ?", messageID, studentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepository) FindByStudent(studentID string) ([]model.Message, error) {
	var messages []model.Message
	err := r.DB.Where("student_id = ?", studentID).Order("created_at DESC").Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) Create(message *model.Message) error {
	return r.DB.Create(message).Error
}

// MarkChecked flips only the checked column, so it cannot clobber
// concurrent writes to the rest of the row.
func (r *MessageRepository) MarkChecked(messageID string) error {
	return r.DB.Model(&model.Message{}).Where("id = ?", messageID).
		Update("checked", true).Error
}

// FindByIDForUpdate re-reads the praise row under FOR UPDATE once the
// involved student rows are locked, so two concurrent approvals cannot both
// see it unchecked.
func (r *PraiseRepository) FindByIDForUpdate(tx *gorm.DB, studentID, praiseID string) (*model.PraiseRecord, error) {
	var praise model.PraiseRecord
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&praise, "id = ? AND student_id = ?", praiseID, studentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPraiseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &praise, nil
}
