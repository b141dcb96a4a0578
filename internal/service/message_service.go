package service

import (
	"candypang_backend/internal/model"
	"candypang_backend/internal/repository"
)

type MessageService struct {
	StudentRepo *repository.StudentRepository
	MessageRepo *repository.MessageRepository
	Notifier    *Notifier
}

func NewMessageService(
	studentRepo *repository.StudentRepository,
	messageRepo *repository.MessageRepository,
	notifier *Notifier,
) *MessageService {
	return &MessageService{
		StudentRepo: studentRepo,
		MessageRepo: messageRepo,
		Notifier:    notifier,
	}
}

type SendMessageRequest struct {
	FromName string `json:"fromName"`
	Text     string `json:"text" binding:"required"`
}

func (s *MessageService) Send(studentID string, req SendMessageRequest) (*model.Message, error) {
	student, err := s.StudentRepo.FindByID(studentID)
	if err != nil {
		return nil, err
	}

	message := &model.Message{
		StudentID: student.ID,
		FromName:  req.FromName,
		Text:      req.Text,
	}
	if err := s.MessageRepo.Create(message); err != nil {
		return nil, err
	}

	s.Notifier.Publish(studentID, "message")
	return message, nil
}

// MarkRead flips checked once; marking an already read message is a no-op.
func (s *MessageService) MarkRead(studentID, messageID string) error {
	message, err := s.MessageRepo.FindByID(studentID, messageID)
	if err != nil {
		return err
	}
	if message.Checked {
		return nil
	}

	if err := s.MessageRepo.MarkChecked(message.ID); err != nil {
		return err
	}

	s.Notifier.Publish(studentID, "message")
	return nil
}

func (s *MessageService) ListMessages(studentID string) ([]model.Message, error) {
	if _, err := s.StudentRepo.FindByID(studentID); err != nil {
		return nil, err
	}
	return s.MessageRepo.FindByStudent(studentID)
}
