package repository

import (
	"candypang_backend/internal/model"
	"candypang_backend/internal/util"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) FindByID(id string) (*model.Student, error) {
	var student model.Student
	err := r.DB.First(&student, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByIDWithHistory loads the full card: quests, praises, messages,
// transactions, coupons and the exp ledger, newest first.
func (r *StudentRepository) FindByIDWithHistory(id string) (*model.Student, error) {
	var student model.Student
	err := r.DB.
		Preload("Quests", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("PraiseRecords", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Coupons", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("ExpEvents", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Notifications", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		First(&student, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepository) List() ([]model.Student, error) {
	var students []model.Student
	err := r.DB.Order("name ASC").Find(&students).Error
	return students, err
}

func (r *StudentRepository) FindByIDs(ids []string) ([]model.Student, error) {
	var students []model.Student
	err := r.DB.Where("id IN ?", ids).Find(&students).Error
	return students, err
}

// FindAllWithPendingItems loads every student together with the three
// collections the pending aggregator scans. Filtering happens in the
// service; the aggregator is recomputed from scratch on every call.
func (r *StudentRepository) FindAllWithPendingItems() ([]model.Student, error) {
	var students []model.Student
	err := r.DB.
		Preload("Quests").
		Preload("PraiseRecords").
		Preload("Messages").
		Find(&students).Error
	return students, err
}

func (r *StudentRepository) Create(student *model.Student) error {
	return r.DB.Create(student).Error
}

// Delete removes the student and every sub-entity. This is the only path
// that physically removes ledger rows.
func (r *StudentRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		tx = tx.Unscoped()
		if err := tx.Where("student_id = ?", id).Delete(&model.Quest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&model.PraiseRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&model.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&model.Coupon{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&model.ExpEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&model.Notification{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Student{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return util.ErrStudentNotFound
		}
		return nil
	})
}

// LockForUpdate fetches a student row with SELECT ... FOR UPDATE inside the
// given transaction. Every read-modify-write on exp/level/balance goes
// through here so concurrent credits serialize instead of losing updates.
func (r *StudentRepository) LockForUpdate(tx *gorm.DB, id string) (*model.Student, error) {
	var student model.Student
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&student, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}
