package model

type ExpEventKind string

const (
	ExpEventExp          ExpEventKind = "exp"
	ExpEventLevelUp      ExpEventKind = "levelUp"
	ExpEventQuest        ExpEventKind = "quest"
	ExpEventSelfPraise   ExpEventKind = "selfPraise"
	ExpEventFriendPraise ExpEventKind = "friendPraise"
	ExpEventBroadcast    ExpEventKind = "event"
)

// ExpEvent is one row of the append-only per-student history. Rows are never
// updated after insertion; an administrative student delete is the only way
// they go away.
// swagger:model ExpEvent
type ExpEvent struct {
	UUIDBase
	StudentID string       `gorm:"index;type:varchar(36)" json:"studentId"`
	Kind      ExpEventKind `gorm:"type:enum('exp','levelUp','quest','selfPraise','friendPraise','event');not null" json:"kind"`
	Amount    int          `gorm:"default:0" json:"amount"`
	Text      string       `gorm:"type:text" json:"text,omitempty"`
	Result    string       `gorm:"size:20" json:"result,omitempty"`
	FromLevel int          `gorm:"default:0" json:"fromLevel,omitempty"`
	ToLevel   int          `gorm:"default:0" json:"toLevel,omitempty"`
}

func (ExpEvent) TableName() string {
	return "exp_events"
}
