package model

// swagger:model Notification
type Notification struct {
	UUIDBase
	StudentID string `gorm:"index;type:varchar(36)" json:"studentId"`
	Kind      string `gorm:"size:30" json:"kind"`
	Text      string `gorm:"type:text" json:"text"`
	Read      bool   `gorm:"default:false" json:"read"`
}

func (Notification) TableName() string {
	return "notifications"
}
