package model

import "time"

type QuestStatus string

const (
	QuestOngoing QuestStatus = "ongoing"
	QuestDone    QuestStatus = "done"
	QuestFailed  QuestStatus = "failed"
)

// swagger:model Quest
type Quest struct {
	UUIDBase
	StudentID      string      `gorm:"index;type:varchar(36)" json:"studentId"`
	Text           string      `gorm:"type:text;not null" json:"text"`
	RewardExp      int         `gorm:"default:0" json:"rewardExp"`
	Status         QuestStatus `gorm:"type:enum('ongoing','done','failed');default:'ongoing'" json:"status"`
	RequestPending bool        `gorm:"default:false" json:"requestPending"`
	CompletedAt    *time.Time  `json:"completedAt,omitempty"`
	FailedAt       *time.Time  `json:"failedAt,omitempty"`
	Reason         string      `gorm:"type:text" json:"reason,omitempty"`
}

func (Quest) TableName() string {
	return "quests"
}
