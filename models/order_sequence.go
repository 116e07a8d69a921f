package models

// OrderSequence holds the last order number allocated within a scope
// (for example "SF-2026")
type OrderSequence struct {
	Scope string `gorm:"primaryKey;size:32"`
	Value int64  `gorm:"not null;default:0"`
}

// TableName specifies the table name for the OrderSequence model
func (OrderSequence) TableName() string {
	return "order_sequences"
}

// All lists every persisted model, in migration order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Order{},
		&Document{},
		&QCReport{},
		&OrderSequence{},
	}
}
