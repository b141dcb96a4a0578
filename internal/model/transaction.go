package model

type TransactionKind string

const (
	TransactionDeposit  TransactionKind = "deposit"
	TransactionWithdraw TransactionKind = "withdraw"
	TransactionSpend    TransactionKind = "spend"
)

// Transaction describes exactly one balance change. Amount is always
// positive; the kind carries the sign. Items is the purchased item→quantity
// map for shop spends, stored as JSON text.
// swagger:model Transaction
type Transaction struct {
	UUIDBase
	StudentID string          `gorm:"index;type:varchar(36)" json:"studentId"`
	Kind      TransactionKind `gorm:"type:enum('deposit','withdraw','spend');not null" json:"kind"`
	Amount    int             `gorm:"not null" json:"amount"`
	Reason    string          `gorm:"type:text" json:"reason,omitempty"`
	Items     string          `gorm:"type:json" json:"items,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}
