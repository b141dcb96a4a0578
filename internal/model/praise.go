package model

type PraiseKind string

const (
	PraiseSelf   PraiseKind = "self"
	PraiseFriend PraiseKind = "friend"
)

type PraiseResult string

const (
	PraiseApproved PraiseResult = "approved"
	PraiseRejected PraiseResult = "rejected"
)

// PraiseRecord is a self- or peer-submitted commendation waiting for the
// teacher's decision. For friend praise, From/FromName identify the praiser
// by value; there is no foreign key into another student row.
// swagger:model PraiseRecord
type PraiseRecord struct {
	UUIDBase
	StudentID    string       `gorm:"index;type:varchar(36)" json:"studentId"`
	Kind         PraiseKind   `gorm:"type:enum('self','friend');not null" json:"kind"`
	Text         string       `gorm:"type:text;not null" json:"text"`
	RequestedExp int          `gorm:"default:0" json:"requestedExp"`
	From         string       `gorm:"type:varchar(36)" json:"from,omitempty"`
	FromName     string       `gorm:"size:100" json:"fromName,omitempty"`
	Checked      bool         `gorm:"default:false" json:"checked"`
	Result       PraiseResult `gorm:"type:enum('','approved','rejected');default:''" json:"result,omitempty"`
	Reason       string       `gorm:"type:text" json:"reason,omitempty"`
}

func (PraiseRecord) TableName() string {
	return "praise_records"
}
