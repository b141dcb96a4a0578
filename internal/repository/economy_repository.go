package repository

import (
	"candypang_backend/internal/model"
	"candypang_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type EconomyRepository struct {
	DB *gorm.DB
}

func NewEconomyRepository(db *gorm.DB) *EconomyRepository {
	return &EconomyRepository{DB: db}
}

func (r *EconomyRepository) FindTransactionsByStudent(studentID string) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.DB.Where("student_id = ?", studentID).Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

func (r *EconomyRepository) FindCouponByID(tx *gorm.DB, studentID, couponID string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := tx.First(&coupon, "id = ? AND student_id = ?", couponID, studentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCouponNotFound
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *EconomyRepository) FindCouponsByStudent(studentID string) ([]model.Coupon, error) {
	var coupons []model.Coupon
	err := r.DB.Where("student_id = ?", studentID).Order("created_at DESC").Find(&coupons).Error
	return coupons, err
}

func (r *EconomyRepository) CreateCoupon(coupon *model.Coupon) error {
	return r.DB.Create(coupon).Error
}
