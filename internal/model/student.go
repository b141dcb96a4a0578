package model

import (
	"time"

	"gorm.io/gorm"
)

// Student is the card a teacher sees on the board. The id is the seat code
// assigned by the classroom roster, not an auto-increment.
// swagger:model Student
type Student struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Exp       int            `gorm:"default:0" json:"exp"`
	Level     int            `gorm:"default:0" json:"level"`
	Balance   int            `gorm:"default:0" json:"balance"` // classroom currency, signed
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Quests        []Quest        `gorm:"foreignKey:StudentID" json:"quests,omitempty"`
	PraiseRecords []PraiseRecord `gorm:"foreignKey:StudentID" json:"praiseRecords,omitempty"`
	Messages      []Message      `gorm:"foreignKey:StudentID" json:"messages,omitempty"`
	Transactions  []Transaction  `gorm:"foreignKey:StudentID" json:"transactions,omitempty"`
	Coupons       []Coupon       `gorm:"foreignKey:StudentID" json:"coupons,omitempty"`
	ExpEvents     []ExpEvent     `gorm:"foreignKey:StudentID" json:"expEvents,omitempty"`
	Notifications []Notification `gorm:"foreignKey:StudentID" json:"notifications,omitempty"`
}

func (Student) TableName() string {
	return "students"
}
