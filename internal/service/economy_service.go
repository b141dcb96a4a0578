package service

import (
	"candypang_backend/internal/model"
	"candypang_backend/internal/repository"
	"candypang_backend/internal/util"
	"candypang_backend/pkg/monitoring"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// couponCreditLabels is the fixed set of currency-denominated coupon labels.
// Redeeming one of these credits the balance; every other label is a plain
// single-use perk.
var couponCreditLabels = map[string]int{
	"candy-100":  100,
	"candy-500":  500,
	"candy-1000": 1000,
}

type EconomyService struct {
	StudentRepo *repository.StudentRepository
	EconomyRepo *repository.EconomyRepository
	Notifier    *Notifier
	DB          *gorm.DB
}

func NewEconomyService(
	studentRepo *repository.StudentRepository,
	economyRepo *repository.EconomyRepository,
	notifier *Notifier,
	db *gorm.DB,
) *EconomyService {
	return &EconomyService{
		StudentRepo: studentRepo,
		EconomyRepo: economyRepo,
		Notifier:    notifier,
		DB:          db,
	}
}

type BankRequest struct {
	Amount int    `json:"amount" binding:"required"`
	Reason string `json:"reason"`
}

type SpendRequest struct {
	Amount int            `json:"amount" binding:"required"`
	Items  map[string]int `json:"items,omitempty"`
	Reason string         `json:"reason"`
}

func (s *EconomyService) Deposit(studentID string, req BankRequest) error {
	return s.applyBalanceChange(studentID, model.TransactionDeposit, req.Amount, req.Reason, nil)
}

func (s *EconomyService) Withdraw(studentID string, req BankRequest) error {
	return s.applyBalanceChange(studentID, model.TransactionWithdraw, req.Amount, req.Reason, nil)
}

// Spend is a withdrawal whose transaction also records what was bought. The
// caller prices the basket; the ledger only books the total.
func (s *EconomyService) Spend(studentID string, req SpendRequest) error {
	return s.applyBalanceChange(studentID, model.TransactionSpend, req.Amount, req.Reason, req.Items)
}

// applyBalanceChange is the single write path for the economy ledger: lock
// the student row, move the balance, and append exactly one Transaction
// describing the change. Withdrawals and spends may not overdraw.
func (s *EconomyService) applyBalanceChange(studentID string, kind model.TransactionKind, amount int, reason string, items map[string]int) error {
	if amount <= 0 {
		return util.ErrNonPositiveAmount
	}

	itemsJSON := ""
	if len(items) > 0 {
		raw, err := json.Marshal(items)
		if err != nil {
			return err
		}
		itemsJSON = string(raw)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		student, err := s.StudentRepo.LockForUpdate(tx, studentID)
		if err != nil {
			return err
		}

		delta := amount
		if kind != model.TransactionDeposit {
			if student.Balance < amount {
				return util.ErrInsufficientBalance
			}
			delta = -amount
		}
		student.Balance += delta

		if err := tx.Save(student).Error; err != nil {
			return err
		}

		transaction := model.Transaction{
			StudentID: student.ID,
			Kind:      kind,
			Amount:    amount,
			Reason:    reason,
			Items:     itemsJSON,
		}
		return tx.Create(&transaction).Error
	})
	if err != nil {
		return err
	}

	s.Notifier.Publish(studentID, "transaction")
	return nil
}

func (s *EconomyService) GrantCoupon(studentID, label string) (*model.Coupon, error) {
	student, err := s.StudentRepo.FindByID(studentID)
	if err != nil {
		return nil, err
	}

	coupon := &model.Coupon{
		StudentID: student.ID,
		Label:     label,
	}
	if err := s.EconomyRepo.CreateCoupon(coupon); err != nil {
		return nil, err
	}

	s.Notifier.Publish(studentID, "coupon")
	return coupon, nil
}

// RedeemCoupon consumes a coupon exactly once. A currency-denominated label
// also credits the balance, and that credit is booked as a regular deposit
// Transaction so the no-silent-drift invariant holds. A second redemption
// changes nothing and reports ErrCouponUsed.
func (s *EconomyService) RedeemCoupon(studentID, couponID string) error {
	now := time.Now()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		student, err := s.StudentRepo.LockForUpdate(tx, studentID)
		if err != nil {
			return err
		}

		coupon, err := s.EconomyRepo.FindCouponByID(tx, studentID, couponID)
		if err != nil {
			return err
		}

		credit, err := redeemCoupon(coupon, now)
		if err != nil {
			return err
		}

		if err := tx.Save(coupon).Error; err != nil {
			return err
		}

		if credit > 0 {
			student.Balance += credit
			if err := tx.Save(student).Error; err != nil {
				return err
			}

			transaction := model.Transaction{
				StudentID: student.ID,
				Kind:      model.TransactionDeposit,
				Amount:    credit,
				Reason:    "coupon: " + coupon.Label,
			}
			if err := tx.Create(&transaction).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	monitoring.CouponRedemptions.Inc()
	s.Notifier.Publish(studentID, "coupon")
	return nil
}

func (s *EconomyService) ListTransactions(studentID string) ([]model.Transaction, error) {
	if _, err := s.StudentRepo.FindByID(studentID); err != nil {
		return nil, err
	}
	return s.EconomyRepo.FindTransactionsByStudent(studentID)
}

func (s *EconomyService) ListCoupons(studentID string) ([]model.Coupon, error) {
	if _, err := s.StudentRepo.FindByID(studentID); err != nil {
		return nil, err
	}
	return s.EconomyRepo.FindCouponsByStudent(studentID)
}

// redeemCoupon flips used exactly once and returns the balance credit the
// label carries, 0 for plain perks.
func redeemCoupon(c *model.Coupon, now time.Time) (int, error) {
	if c.Used {
		return 0, util.ErrCouponUsed
	}
	c.Used = true
	c.UsedAt = &now
	return couponCreditLabels[c.Label], nil
}
