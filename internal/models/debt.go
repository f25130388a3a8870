package models

import "debtwise/internal/planner"

// Debt represents a single liability tracked for a user. Amounts are integer
// cents and the rate is in basis points, matching the planner's canonical
// shape. Balance only decreases through payments or explicit corrections; a
// debt is retired (IsActive=false), not deleted, when it reaches zero.
type Debt struct {
	Base
	UserID         uint             `gorm:"not null;index" json:"user_id"`
	Name           string           `gorm:"not null" json:"name"`
	Category       planner.Category `gorm:"not null" json:"category"`
	OriginalAmount int64            `gorm:"not null" json:"original_amount"`
	Balance        int64            `gorm:"not null" json:"balance"`
	APRBps         int64            `gorm:"not null" json:"apr_bps"`
	MinPayment     int64            `gorm:"not null" json:"min_payment"`
	DueDay         int              `gorm:"not null" json:"due_day"`
	// No default tag here: the service computes this from the balance, and a
	// default would make gorm omit a false value from the insert.
	IsActive bool `gorm:"not null" json:"is_active"`
}
