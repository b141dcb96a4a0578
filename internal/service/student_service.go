package service

import (
	"candypang_backend/internal/model"
	"candypang_backend/internal/repository"
	"sort"
)

type StudentService struct {
	StudentRepo *repository.StudentRepository
	LedgerRepo  *repository.LedgerRepository
	Notifier    *Notifier
}

func NewStudentService(
	studentRepo *repository.StudentRepository,
	ledgerRepo *repository.LedgerRepository,
	notifier *Notifier,
) *StudentService {
	return &StudentService{
		StudentRepo: studentRepo,
		LedgerRepo:  ledgerRepo,
		Notifier:    notifier,
	}
}

// StudentCard is the board view of one student: the scalar state plus the
// XP still needed for the next level.
type StudentCard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Exp         int    `json:"exp"`
	Level       int    `json:"level"`
	Balance     int    `json:"balance"`
	NextLevelXP int    `json:"nextLevelXp"`
}

type CreateStudentRequest struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name" binding:"required"`
}

func (s *StudentService) ListCards() ([]StudentCard, error) {
	students, err := s.StudentRepo.List()
	if err != nil {
		return nil, err
	}

	cards := make([]StudentCard, len(students))
	for i, student := range students {
		cards[i] = StudentCard{
			ID:          student.ID,
			Name:        student.Name,
			Exp:         student.Exp,
			Level:       student.Level,
			Balance:     student.Balance,
			NextLevelXP: RequiredExp(student.Level),
		}
	}
	return cards, nil
}

func (s *StudentService) GetStudent(id string) (*model.Student, error) {
	return s.StudentRepo.FindByIDWithHistory(id)
}

func (s *StudentService) CreateStudent(req CreateStudentRequest) (*model.Student, error) {
	student := &model.Student{
		ID:   req.ID,
		Name: req.Name,
	}
	if err := s.StudentRepo.Create(student); err != nil {
		return nil, err
	}

	s.Notifier.Publish(student.ID, "student")
	return student, nil
}

func (s *StudentService) DeleteStudent(id string) error {
	if err := s.StudentRepo.Delete(id); err != nil {
		return err
	}

	s.Notifier.Publish(id, "student")
	return nil
}

type BoardEntry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Level int    `json:"level"`
	Exp   int    `json:"exp"`
}

// GetBoard ranks the class by level, then exp within a level.
func (s *StudentService) GetBoard() ([]BoardEntry, error) {
	students, err := s.StudentRepo.List()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(students, func(i, j int) bool {
		if students[i].Level != students[j].Level {
			return students[i].Level > students[j].Level
		}
		return students[i].Exp > students[j].Exp
	})

	board := make([]BoardEntry, len(students))
	for i, student := range students {
		board[i] = BoardEntry{
			Rank:  i + 1,
			Name:  student.Name,
			Level: student.Level,
			Exp:   student.Exp,
		}
	}
	return board, nil
}

func (s *StudentService) GetExpEvents(studentID string, limit int) ([]model.ExpEvent, error) {
	if _, err := s.StudentRepo.FindByID(studentID); err != nil {
		return nil, err
	}
	return s.LedgerRepo.FindExpEventsByStudent(studentID, limit)
}

func (s *StudentService) GetNotifications(studentID string) ([]model.Notification, error) {
	if _, err := s.StudentRepo.FindByID(studentID); err != nil {
		return nil, err
	}
	return s.LedgerRepo.FindNotificationsByStudent(studentID)
}

func (s *StudentService) MarkNotificationRead(studentID, notificationID string) error {
	return s.LedgerRepo.MarkNotificationRead(studentID, notificationID)
}
