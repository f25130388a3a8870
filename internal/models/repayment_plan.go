package models

import "debtwise/internal/planner"

// RepaymentPlan stores a committed plan: the chosen strategy and its computed
// trajectory. Plans are recomputed, never patched; committing a new plan
// deactivates the previous one in the same transaction so exactly one plan
// per user is active. Superseded plans stay around for auditability.
type RepaymentPlan struct {
	Base
	UserID        uint             `gorm:"not null;index" json:"user_id"`
	Reference     string           `gorm:"size:36;uniqueIndex" json:"reference"`
	Strategy      planner.Strategy `gorm:"not null" json:"strategy"`
	MonthlyBudget int64            `gorm:"not null" json:"monthly_budget"`
	GoalWeighting int              `gorm:"not null" json:"goal_weighting"`
	Months        int              `gorm:"not null" json:"months"`
	TotalInterest int64            `gorm:"not null" json:"total_interest"`
	PayoffOrder   string           `gorm:"type:text" json:"payoff_order"`
	IsActive      bool             `gorm:"default:true" json:"is_active"`
}
