package service

import (
	"candypang_backend/internal/model"
	"candypang_backend/internal/repository"
	"candypang_backend/internal/util"
	"candypang_backend/pkg/monitoring"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

type BulkOp string

const (
	BulkDeposit   BulkOp = "deposit"
	BulkWithdraw  BulkOp = "withdraw"
	BulkGrantExp  BulkOp = "grantExp"
	BulkBroadcast BulkOp = "broadcast"
)

// BatchService applies one mutation to many students as a single
// all-or-nothing unit. Every bulk path goes through here; there is no
// sequential-loop variant with partial-failure semantics.
type BatchService struct {
	StudentRepo *repository.StudentRepository
	Fever       *FeverService
	Notifier    *Notifier
	DB          *gorm.DB
}

func NewBatchService(
	studentRepo *repository.StudentRepository,
	fever *FeverService,
	notifier *Notifier,
	db *gorm.DB,
) *BatchService {
	return &BatchService{
		StudentRepo: studentRepo,
		Fever:       fever,
		Notifier:    notifier,
		DB:          db,
	}
}

type BulkRequest struct {
	StudentIDs []string `json:"studentIds" binding:"required,min=1"`
	Op         BulkOp   `json:"op" binding:"required"`
	Amount     int      `json:"amount"`
	Reason     string   `json:"reason"`
	Text       string   `json:"text"`
}

// bulkChange is one student's share of a bulk plan: the new scalar values
// plus the ledger rows to append.
type bulkChange struct {
	StudentID   string
	Balance     int
	Exp         int
	Level       int
	Transaction *model.Transaction
	Events      []model.ExpEvent
}

// ApplyBulk validates the whole plan first and then commits it in one
// transaction over every selected row. On any failure no student is
// touched.
func (s *BatchService) ApplyBulk(req BulkRequest) error {
	if len(req.StudentIDs) == 0 {
		return util.ErrEmptyBatch
	}

	now := time.Now()
	multiplier := s.Fever.Multiplier()
	ids := uniqueSortedIDs(req.StudentIDs)
	var granted, levelUps int

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		students := make([]model.Student, 0, len(ids))
		for _, id := range ids {
			student, err := s.StudentRepo.LockForUpdate(tx, id)
			if err != nil {
				return err
			}
			students = append(students, *student)
		}

		plan, err := buildBulkPlan(students, req, multiplier, now)
		if err != nil {
			return err
		}

		for _, change := range plan {
			updates := map[string]interface{}{
				"balance": change.Balance,
				"exp":     change.Exp,
				"level":   change.Level,
			}
			err := tx.Model(&model.Student{}).
				Where("id = ?", change.StudentID).
				Updates(updates).Error
			if err != nil {
				return err
			}

			if change.Transaction != nil {
				if err := tx.Create(change.Transaction).Error; err != nil {
					return err
				}
			}
			if len(change.Events) > 0 {
				if err := tx.Create(&change.Events).Error; err != nil {
					return err
				}
			}

			for _, ev := range change.Events {
				if ev.Kind == model.ExpEventLevelUp {
					levelUps++
				} else {
					granted += ev.Amount
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if req.Op == BulkGrantExp {
		monitoring.XPGranted.WithLabelValues("bulk").Add(float64(granted))
		monitoring.LevelUps.Add(float64(levelUps))
	}
	for _, id := range ids {
		s.Notifier.Publish(id, string(req.Op))
	}
	return nil
}

// uniqueSortedIDs drops duplicate selections and fixes the lock order.
// A student listed twice must still receive exactly one change and one
// Transaction row.
func uniqueSortedIDs(ids []string) []string {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	sort.Strings(unique)
	return unique
}

// buildBulkPlan computes every student's change up front. Any validation
// failure aborts the whole plan, so the commit can only ever be
// all-or-nothing.
func buildBulkPlan(students []model.Student, req BulkRequest, multiplier int, now time.Time) ([]bulkChange, error) {
	switch req.Op {
	case BulkDeposit, BulkWithdraw, BulkGrantExp:
		if req.Amount <= 0 {
			return nil, util.ErrNonPositiveAmount
		}
	case BulkBroadcast:
		if strings.TrimSpace(req.Text) == "" {
			return nil, util.ErrEmptyReason
		}
	default:
		return nil, util.ErrInvalidState
	}

	plan := make([]bulkChange, 0, len(students))

	for _, student := range students {
		change := bulkChange{
			StudentID: student.ID,
			Balance:   student.Balance,
			Exp:       student.Exp,
			Level:     student.Level,
		}

		switch req.Op {
		case BulkDeposit:
			change.Balance += req.Amount
			change.Transaction = &model.Transaction{
				StudentID: student.ID,
				Kind:      model.TransactionDeposit,
				Amount:    req.Amount,
				Reason:    req.Reason,
			}

		case BulkWithdraw:
			if student.Balance < req.Amount {
				return nil, util.ErrInsufficientBalance
			}
			change.Balance -= req.Amount
			change.Transaction = &model.Transaction{
				StudentID: student.ID,
				Kind:      model.TransactionWithdraw,
				Amount:    req.Amount,
				Reason:    req.Reason,
			}

		case BulkGrantExp:
			amount := req.Amount * multiplier
			exp, level, ups := ApplyGain(student.ID, student.Exp, student.Level, amount, now)
			change.Exp = exp
			change.Level = level
			change.Events = append(ups, model.ExpEvent{
				UUIDBase:  model.UUIDBase{CreatedAt: now},
				StudentID: student.ID,
				Kind:      model.ExpEventExp,
				Amount:    amount,
				Text:      req.Reason,
			})

		case BulkBroadcast:
			change.Events = []model.ExpEvent{{
				UUIDBase:  model.UUIDBase{CreatedAt: now},
				StudentID: student.ID,
				Kind:      model.ExpEventBroadcast,
				Text:      req.Text,
			}}
		}

		plan = append(plan, change)
	}

	return plan, nil
}
