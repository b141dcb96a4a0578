package model

import "time"

// swagger:model Coupon
type Coupon struct {
	UUIDBase
	StudentID string     `gorm:"index;type:varchar(36)" json:"studentId"`
	Label     string     `gorm:"size:100;not null" json:"label"`
	Used      bool       `gorm:"default:false" json:"used"`
	UsedAt    *time.Time `json:"usedAt,omitempty"`
}

func (Coupon) TableName() string {
	return "coupons"
}
