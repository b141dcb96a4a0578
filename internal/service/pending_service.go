package service

import (
	"candypang_backend/internal/model"
	"candypang_backend/internal/repository"
	"candypang_backend/pkg/monitoring"
	"sort"
	"time"
)

// PendingRequest is one unresolved item in the teacher's inbox, tagged with
// the student it came from.
type PendingRequest struct {
	StudentID    string    `json:"studentId"`
	StudentName  string    `json:"studentName"`
	Kind         string    `json:"kind"` // message | praise | quest
	ItemID       string    `json:"itemId"`
	Text         string    `json:"text"`
	RequestedExp int       `json:"requestedExp,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type PendingService struct {
	StudentRepo *repository.StudentRepository
}

func NewPendingService(studentRepo *repository.StudentRepository) *PendingService {
	return &PendingService{StudentRepo: studentRepo}
}

// ListPending derives the inbox from scratch: every unresolved message,
// praise and quest across all students, newest first. No incremental index
// is kept, so re-running it on every change notification is always safe.
func (s *PendingService) ListPending() ([]PendingRequest, error) {
	students, err := s.StudentRepo.FindAllWithPendingItems()
	if err != nil {
		return nil, err
	}

	pending := collectPending(students)
	monitoring.PendingRequests.Set(float64(len(pending)))
	return pending, nil
}

// collectPending selects unread messages, unchecked praises and ongoing
// quests with an approval request, sorted by createdAt descending.
func collectPending(students []model.Student) []PendingRequest {
	var pending []PendingRequest

	for _, student := range students {
		for _, message := range student.Messages {
			if message.Checked {
				continue
			}
			pending = append(pending, PendingRequest{
				StudentID:   student.ID,
				StudentName: student.Name,
				Kind:        "message",
				ItemID:      message.ID,
				Text:        message.Text,
				CreatedAt:   message.CreatedAt,
			})
		}

		for _, praise := range student.PraiseRecords {
			if praise.Checked {
				continue
			}
			pending = append(pending, PendingRequest{
				StudentID:    student.ID,
				StudentName:  student.Name,
				Kind:         "praise",
				ItemID:       praise.ID,
				Text:         praise.Text,
				RequestedExp: praise.RequestedExp,
				CreatedAt:    praise.CreatedAt,
			})
		}

		for _, quest := range student.Quests {
			if quest.Status != model.QuestOngoing || !quest.RequestPending {
				continue
			}
			pending = append(pending, PendingRequest{
				StudentID:    student.ID,
				StudentName:  student.Name,
				Kind:         "quest",
				ItemID:       quest.ID,
				Text:         quest.Text,
				RequestedExp: quest.RewardExp,
				CreatedAt:    quest.CreatedAt,
			})
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].CreatedAt.After(pending[j].CreatedAt)
	})

	return pending
}
