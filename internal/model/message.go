package model

// swagger:model Message
type Message struct {
	UUIDBase
	StudentID string `gorm:"index;type:varchar(36)" json:"studentId"`
	FromName  string `gorm:"size:100" json:"fromName"`
	Text      string `gorm:"type:text;not null" json:"text"`
	Checked   bool   `gorm:"default:false" json:"checked"`
}

func (Message) TableName() string {
	return "messages"
}
