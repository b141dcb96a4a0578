package service

import (
	"candypang_backend/internal/model"
	"candypang_backend/internal/repository"
	"candypang_backend/internal/util"
	"candypang_backend/pkg/monitoring"
	"strings"
	"time"

	"gorm.io/gorm"
)

type QuestService struct {
	StudentRepo *repository.StudentRepository
	QuestRepo   *repository.QuestRepository
	Fever       *FeverService
	Notifier    *Notifier
	DB          *gorm.DB
}

func NewQuestService(
	studentRepo *repository.StudentRepository,
	questRepo *repository.QuestRepository,
	fever *FeverService,
	notifier *Notifier,
	db *gorm.DB,
) *QuestService {
	return &QuestService{
		StudentRepo: studentRepo,
		QuestRepo:   questRepo,
		Fever:       fever,
		Notifier:    notifier,
		DB:          db,
	}
}

type AssignQuestRequest struct {
	StudentIDs []string `json:"studentIds" binding:"required,min=1"`
	Text       string   `json:"text" binding:"required"`
	RewardExp  int      `json:"rewardExp" binding:"required,min=1"`
}

// AssignQuest creates the same quest on every selected student, all or
// nothing.
func (s *QuestService) AssignQuest(req AssignQuestRequest) ([]model.Quest, error) {
	if len(req.StudentIDs) == 0 {
		return nil, util.ErrEmptyBatch
	}
	if req.RewardExp <= 0 {
		return nil, util.ErrNonPositiveAmount
	}

	// A student selected twice still gets the quest once.
	ids := uniqueSortedIDs(req.StudentIDs)
	quests := make([]model.Quest, 0, len(ids))

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		students, err := s.StudentRepo.FindByIDs(ids)
		if err != nil {
			return err
		}
		if len(students) != len(ids) {
			return util.ErrStudentNotFound
		}

		for _, student := range students {
			quest := model.Quest{
				StudentID: student.ID,
				Text:      req.Text,
				RewardExp: req.RewardExp,
				Status:    model.QuestOngoing,
			}
			if err := tx.Create(&quest).Error; err != nil {
				return err
			}
			quests = append(quests, quest)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, quest := range quests {
		s.Notifier.Publish(quest.StudentID, "quest")
	}
	return quests, nil
}

// RequestApproval is the student side: flag an ongoing quest as waiting for
// the teacher's decision.
func (s *QuestService) RequestApproval(studentID, questID string) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		quest, err := s.QuestRepo.FindByIDForUpdate(tx, studentID, questID)
		if err != nil {
			return err
		}
		if quest.Status != model.QuestOngoing {
			return util.ErrInvalidState
		}
		quest.RequestPending = true
		return tx.Save(quest).Error
	})
	if err != nil {
		return err
	}

	s.Notifier.Publish(studentID, "quest")
	return nil
}

// ApproveQuest marks the quest done and credits its reward through the
// calculator, all inside one transaction holding the student row lock.
func (s *QuestService) ApproveQuest(studentID, questID string) error {
	now := time.Now()
	multiplier := s.Fever.Multiplier()
	var reward, levelUps int

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		student, err := s.StudentRepo.LockForUpdate(tx, studentID)
		if err != nil {
			return err
		}

		quest, err := s.QuestRepo.FindByIDForUpdate(tx, studentID, questID)
		if err != nil {
			return err
		}
		if err := resolveQuest(quest, true, "", now); err != nil {
			return err
		}

		reward = quest.RewardExp * multiplier
		exp, level, ups := ApplyGain(student.ID, student.Exp, student.Level, reward, now)
		levelUps = len(ups)

		events := append(ups, model.ExpEvent{
			UUIDBase:  model.UUIDBase{CreatedAt: now},
			StudentID: student.ID,
			Kind:      model.ExpEventQuest,
			Amount:    reward,
			Text:      quest.Text,
			Result:    "approved",
		})

		student.Exp = exp
		student.Level = level

		if err := tx.Save(student).Error; err != nil {
			return err
		}
		if err := tx.Save(quest).Error; err != nil {
			return err
		}
		if err := tx.Create(&events).Error; err != nil {
			return err
		}

		notification := model.Notification{
			StudentID: student.ID,
			Kind:      "quest",
			Text:      "Quest approved: " + quest.Text,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return err
	}

	monitoring.XPGranted.WithLabelValues("quest").Add(float64(reward))
	monitoring.LevelUps.Add(float64(levelUps))
	s.Notifier.Publish(studentID, "quest")
	return nil
}

// FailQuest marks the quest failed with an audit reason. No XP is granted;
// the ledger still records the outcome with amount 0.
func (s *QuestService) FailQuest(studentID, questID, reason string) error {
	now := time.Now()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Same lock order as ApproveQuest: student row first, then the
		// quest row, so a concurrent approve and fail serialize and the
		// loser hits the terminal-status check.
		if _, err := s.StudentRepo.LockForUpdate(tx, studentID); err != nil {
			return err
		}

		quest, err := s.QuestRepo.FindByIDForUpdate(tx, studentID, questID)
		if err != nil {
			return err
		}
		if err := resolveQuest(quest, false, reason, now); err != nil {
			return err
		}

		if err := tx.Save(quest).Error; err != nil {
			return err
		}

		event := model.ExpEvent{
			UUIDBase:  model.UUIDBase{CreatedAt: now},
			StudentID: studentID,
			Kind:      model.ExpEventQuest,
			Amount:    0,
			Text:      quest.Text,
			Result:    "rejected",
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		notification := model.Notification{
			StudentID: studentID,
			Kind:      "quest",
			Text:      "Quest failed: " + reason,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return err
	}

	s.Notifier.Publish(studentID, "quest")
	return nil
}

func (s *QuestService) ListQuests(studentID string) ([]model.Quest, error) {
	if _, err := s.StudentRepo.FindByID(studentID); err != nil {
		return nil, err
	}
	return s.QuestRepo.FindByStudent(studentID)
}

// resolveQuest applies the only legal transition, ongoing -> done|failed.
// A resolved quest never re-enters ongoing.
func resolveQuest(q *model.Quest, done bool, reason string, now time.Time) error {
	if q.Status != model.QuestOngoing {
		return util.ErrInvalidState
	}

	if done {
		q.Status = model.QuestDone
		q.CompletedAt = &now
	} else {
		if strings.TrimSpace(reason) == "" {
			return util.ErrEmptyReason
		}
		q.Status = model.QuestFailed
		q.FailedAt = &now
		q.Reason = reason
	}
	q.RequestPending = false
	return nil
}
