package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "debtwise/internal/errors"
	"debtwise/internal/models"
)

// incomeService handles income-profile business logic.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

// UpsertProfile creates or replaces the user's income snapshot. Net income
// must not exceed gross when gross is known; a negative disposable income is
// allowed — it is a risk signal, not an input error.
func (s *incomeService) UpsertProfile(userID uint, grossCents, netCents, expenseCents int64) (*models.IncomeProfile, error) {
	var fields []apperrors.FieldError
	if grossCents < 0 {
		fields = append(fields, apperrors.FieldError{Field: "gross_monthly", Reason: "must not be negative"})
	}
	if netCents < 0 {
		fields = append(fields, apperrors.FieldError{Field: "net_monthly", Reason: "must not be negative"})
	}
	if expenseCents < 0 {
		fields = append(fields, apperrors.FieldError{Field: "monthly_expense", Reason: "must not be negative"})
	}
	if grossCents > 0 && netCents > grossCents {
		fields = append(fields, apperrors.FieldError{Field: "net_monthly", Reason: "must not exceed gross income"})
	}
	if len(fields) > 0 {
		return nil, apperrors.WithFields(apperrors.ErrValidation, fields...)
	}

	profile := &models.IncomeProfile{UserID: userID}
	err := s.db.Where("user_id = ?", userID).First(profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	profile.GrossMonthly = grossCents
	profile.NetMonthly = netCents
	profile.MonthlyExpense = expenseCents

	if err := s.db.Save(profile).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return profile, nil
}

// GetProfile returns the user's income snapshot.
func (s *incomeService) GetProfile(userID uint) (*models.IncomeProfile, error) {
	var profile models.IncomeProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}
