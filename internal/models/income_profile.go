package models

// IncomeProfile is a user's monthly financial baseline: gross income, income
// net of tax and mandatory deductions, and discretionary expenses, all in
// cents. One row per user, always the latest snapshot.
type IncomeProfile struct {
	Base
	UserID         uint  `gorm:"not null;uniqueIndex" json:"user_id"`
	GrossMonthly   int64 `gorm:"not null" json:"gross_monthly"`
	NetMonthly     int64 `gorm:"not null" json:"net_monthly"`
	MonthlyExpense int64 `gorm:"not null" json:"monthly_expense"`
}
