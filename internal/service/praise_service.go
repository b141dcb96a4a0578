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

type PraiseService struct {
	StudentRepo *repository.StudentRepository
	PraiseRepo  *repository.PraiseRepository
	Fever       *FeverService
	Notifier    *Notifier
	DB          *gorm.DB
}

func NewPraiseService(
	studentRepo *repository.StudentRepository,
	praiseRepo *repository.PraiseRepository,
	fever *FeverService,
	notifier *Notifier,
	db *gorm.DB,
) *PraiseService {
	return &PraiseService{
		StudentRepo: studentRepo,
		PraiseRepo:  praiseRepo,
		Fever:       fever,
		Notifier:    notifier,
		DB:          db,
	}
}

type CreatePraiseRequest struct {
	Text         string `json:"text" binding:"required"`
	RequestedExp int    `json:"requestedExp" binding:"required,min=1"`
	From         string `json:"from,omitempty"`
}

// CreateSelfPraise files a commendation by the student on their own card.
func (s *PraiseService) CreateSelfPraise(studentID string, req CreatePraiseRequest) (*model.PraiseRecord, error) {
	student, err := s.StudentRepo.FindByID(studentID)
	if err != nil {
		return nil, err
	}

	praise := &model.PraiseRecord{
		StudentID:    student.ID,
		Kind:         model.PraiseSelf,
		Text:         req.Text,
		RequestedExp: req.RequestedExp,
	}
	if err := s.PraiseRepo.Create(praise); err != nil {
		return nil, err
	}

	s.Notifier.Publish(studentID, "praise")
	return praise, nil
}

// CreateFriendPraise files a commendation on the praised student's card,
// recording the praiser by value (id and name), never by foreign key.
func (s *PraiseService) CreateFriendPraise(studentID string, req CreatePraiseRequest) (*model.PraiseRecord, error) {
	if req.From == studentID {
		return nil, util.ErrSelfFriendPraise
	}

	student, err := s.StudentRepo.FindByID(studentID)
	if err != nil {
		return nil, err
	}
	praiser, err := s.StudentRepo.FindByID(req.From)
	if err != nil {
		return nil, err
	}

	praise := &model.PraiseRecord{
		StudentID:    student.ID,
		Kind:         model.PraiseFriend,
		Text:         req.Text,
		RequestedExp: req.RequestedExp,
		From:         praiser.ID,
		FromName:     praiser.Name,
	}
	if err := s.PraiseRepo.Create(praise); err != nil {
		return nil, err
	}

	s.Notifier.Publish(studentID, "praise")
	return praise, nil
}

// ApprovePraise credits the praised student and, for a friend praise
// answered "yes", the praiser as well. Both rows are mutated inside one
// transaction; student locks are taken in ascending id order.
func (s *PraiseService) ApprovePraise(studentID, praiseID, response string) error {
	now := time.Now()
	multiplier := s.Fever.Multiplier()
	var granted, levelUps int
	var touched []string

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Plain read first, only to learn the lock set.
		peek, err := s.PraiseRepo.FindByID(tx, studentID, praiseID)
		if err != nil {
			return err
		}
		if peek.Checked {
			return util.ErrInvalidState
		}

		credits := praiseCredits(peek, response, multiplier)

		ids := make([]string, 0, len(credits))
		for _, cr := range credits {
			ids = append(ids, cr.StudentID)
		}
		sort.Strings(ids)

		locked := make(map[string]*model.Student, len(ids))
		for _, id := range ids {
			student, err := s.StudentRepo.LockForUpdate(tx, id)
			if err != nil {
				return err
			}
			locked[id] = student
		}

		praise, err := s.PraiseRepo.FindByIDForUpdate(tx, studentID, praiseID)
		if err != nil {
			return err
		}
		if err := resolvePraise(praise, model.PraiseApproved, ""); err != nil {
			return err
		}

		for _, cr := range credits {
			student := locked[cr.StudentID]
			exp, level, ups := ApplyGain(student.ID, student.Exp, student.Level, cr.Amount, now)
			student.Exp = exp
			student.Level = level
			granted += cr.Amount
			levelUps += len(ups)

			events := append(ups, model.ExpEvent{
				UUIDBase:  model.UUIDBase{CreatedAt: now},
				StudentID: student.ID,
				Kind:      cr.Kind,
				Amount:    cr.Amount,
				Text:      praise.Text,
				Result:    "approved",
			})

			if err := tx.Save(student).Error; err != nil {
				return err
			}
			if err := tx.Create(&events).Error; err != nil {
				return err
			}
			touched = append(touched, student.ID)
		}

		if err := tx.Save(praise).Error; err != nil {
			return err
		}

		notification := model.Notification{
			StudentID: studentID,
			Kind:      "praise",
			Text:      "Praise approved: " + praise.Text,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return err
	}

	monitoring.XPGranted.WithLabelValues("praise").Add(float64(granted))
	monitoring.LevelUps.Add(float64(levelUps))
	for _, id := range touched {
		s.Notifier.Publish(id, "praise")
	}
	return nil
}

// RejectPraise closes the record without XP. The reason is mandatory and
// kept for audit.
func (s *PraiseService) RejectPraise(studentID, praiseID, reason string) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		praise, err := s.PraiseRepo.FindByIDForUpdate(tx, studentID, praiseID)
		if err != nil {
			return err
		}
		if err := resolvePraise(praise, model.PraiseRejected, reason); err != nil {
			return err
		}

		if err := tx.Save(praise).Error; err != nil {
			return err
		}

		notification := model.Notification{
			StudentID: studentID,
			Kind:      "praise",
			Text:      "Praise rejected: " + reason,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return err
	}

	s.Notifier.Publish(studentID, "praise")
	return nil
}

// MarkRead flips checked without recording a result, for praises that need
// acknowledgment but no approve/reject decision.
func (s *PraiseService) MarkRead(studentID, praiseID string) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		praise, err := s.PraiseRepo.FindByIDForUpdate(tx, studentID, praiseID)
		if err != nil {
			return err
		}
		if !markPraiseRead(praise) {
			return nil
		}
		// Only the checked column moves; a verdict written by a racing
		// reject keeps its result and reason.
		return tx.Model(praise).Update("checked", true).Error
	})
	if err != nil {
		return err
	}

	s.Notifier.Publish(studentID, "praise")
	return nil
}

func (s *PraiseService) ListPraises(studentID string) ([]model.PraiseRecord, error) {
	if _, err := s.StudentRepo.FindByID(studentID); err != nil {
		return nil, err
	}
	return s.PraiseRepo.FindByStudent(studentID)
}

type praiseCredit struct {
	StudentID string
	Amount    int
	Kind      model.ExpEventKind
}

// praiseCredits lists every XP credit an approval produces. The praised
// student always gets the requested amount (fever-scaled); a friend praise
// approved with response "yes" also rewards the praiser with the fixed
// secondary amount.
func praiseCredits(p *model.PraiseRecord, response string, multiplier int) []praiseCredit {
	kind := model.ExpEventSelfPraise
	if p.Kind == model.PraiseFriend {
		kind = model.ExpEventFriendPraise
	}

	credits := []praiseCredit{{
		StudentID: p.StudentID,
		Amount:    p.RequestedExp * multiplier,
		Kind:      kind,
	}}

	if p.Kind == model.PraiseFriend && response == "yes" && p.From != "" {
		credits = append(credits, praiseCredit{
			StudentID: p.From,
			Amount:    friendPraiseReward,
			Kind:      model.ExpEventFriendPraise,
		})
	}

	return credits
}

// markPraiseRead flips checked without touching the verdict fields.
// Returns false when the record was already checked.
func markPraiseRead(p *model.PraiseRecord) bool {
	if p.Checked {
		return false
	}
	p.Checked = true
	return true
}

// resolvePraise applies the only legal transition, checked=false ->
// checked=true with a terminal result.
func resolvePraise(p *model.PraiseRecord, result model.PraiseResult, reason string) error {
	if p.Checked {
		return util.ErrInvalidState
	}
	if result == model.PraiseRejected && strings.TrimSpace(reason) == "" {
		return util.ErrEmptyReason
	}

	p.Checked = true
	p.Result = result
	p.Reason = reason
	return nil
}
