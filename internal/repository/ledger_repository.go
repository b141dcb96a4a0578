package repository

import (
	"candypang_backend/internal/model"

	"gorm.io/gorm"
)

// LedgerRepository reads the append-only exp event history and the derived
// notifications. All writes to these tables happen inside the workflow
// transactions, never here.
type LedgerRepository struct {
	DB *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{DB: db}
}

func (r *LedgerRepository) FindExpEventsByStudent(studentID string, limit int) ([]model.ExpEvent, error) {
	var events []model.ExpEvent
	query := r.DB.Where("student_id = ?", studentID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&events).Error
	return events, err
}

func (r *LedgerRepository) FindNotificationsByStudent(studentID string) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.DB.Where("student_id = ?", studentID).Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *LedgerRepository) MarkNotificationRead(studentID, notificationID string) error {
	return r.DB.Model(&model.Notification{}).
		Where("id = ? AND student_id = ?", notificationID, studentID).
		Update("read", true).Error
}
