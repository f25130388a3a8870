package services

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	apperrors "debtwise/internal/errors"
	"debtwise/internal/models"
	"debtwise/internal/pagination"
	"debtwise/internal/planner"
)

// debtService handles debt-record business logic.
type debtService struct {
	db *gorm.DB
}

// NewDebtService creates a new DebtServicer.
func NewDebtService(db *gorm.DB) DebtServicer {
	return &debtService{db: db}
}

// CreateDebt normalizes raw user input through the planner and persists the
// canonical record. Validation failures carry the offending fields.
func (s *debtService) CreateDebt(userID uint, input DebtInput) (*models.Debt, error) {
	normalized, err := planner.NormalizeDebt(rawDebt(input))
	if err != nil {
		return nil, err
	}

	debt := &models.Debt{
		UserID:         userID,
		Name:           normalized.Name,
		Category:       normalized.Category,
		OriginalAmount: normalized.OriginalCents,
		Balance:        normalized.BalanceCents,
		APRBps:         normalized.APRBps,
		MinPayment:     normalized.MinPaymentCents,
		DueDay:         normalized.DueDay,
		IsActive:       normalized.BalanceCents > 0,
	}

	if err := s.db.Create(debt).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return debt, nil
}

// GetUserDebts returns a paginated list of debts for the user with optional filters.
func (s *debtService) GetUserDebts(
	userID uint,
	page pagination.PageRequest,
	isActive *bool,
	category *planner.Category,
) (*pagination.PageResponse[models.Debt], error) {
	page.Defaults()

	base := s.db.Model(&models.Debt{}).Where("user_id = ?", userID)
	if isActive != nil {
		base = base.Where("is_active = ?", *isActive)
	}
	if category != nil {
		base = base.Where("category = ?", *category)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var debts []models.Debt
	if err := base.Order("balance ASC").Scopes(pagination.Paginate(page)).Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(debts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetDebtByID returns a debt by ID if it belongs to the user.
func (s *debtService) GetDebtByID(userID, debtID uint) (*models.Debt, error) {
	var debt models.Debt
	if err := s.db.Where("id = ? AND user_id = ?", debtID, userID).First(&debt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDebtNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &debt, nil
}

// UpdateDebt replaces a debt's fields after re-normalizing the raw input.
// This is the correction path; the balance may move in either direction here.
func (s *debtService) UpdateDebt(userID, debtID uint, input DebtInput) (*models.Debt, error) {
	debt, err := s.GetDebtByID(userID, debtID)
	if err != nil {
		return nil, err
	}

	normalized, err := planner.NormalizeDebt(rawDebt(input))
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":            normalized.Name,
		"category":        normalized.Category,
		"original_amount": normalized.OriginalCents,
		"balance":         normalized.BalanceCents,
		"apr_bps":         normalized.APRBps,
		"min_payment":     normalized.MinPaymentCents,
		"due_day":         normalized.DueDay,
		"is_active":       normalized.BalanceCents > 0,
	}

	if err := s.db.Model(debt).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return debt, nil
}

// RecordPayment applies a payment against the debt's balance. The balance
// never goes below zero; a debt that reaches zero is retired, not deleted.
func (s *debtService) RecordPayment(userID, debtID uint, amountCents int64) (*models.Debt, error) {
	if amountCents <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payment amount must be positive")
	}

	debt, err := s.GetDebtByID(userID, debtID)
	if err != nil {
		return nil, err
	}

	if amountCents > debt.Balance {
		return nil, apperrors.ErrPaymentExceedsDebt
	}

	debt.Balance -= amountCents
	if debt.Balance == 0 {
		debt.IsActive = false
	}

	if err := s.db.Model(debt).Updates(map[string]interface{}{
		"balance":   debt.Balance,
		"is_active": debt.IsActive,
	}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return debt, nil
}

// DeleteDebt soft-deletes a debt.
func (s *debtService) DeleteDebt(userID, debtID uint) error {
	debt, err := s.GetDebtByID(userID, debtID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(debt).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// rawDebt maps a DebtInput onto the planner's raw shape.
func rawDebt(input DebtInput) planner.RawDebt {
	return planner.RawDebt{
		Name:                input.Name,
		Category:            input.Category,
		OriginalAmount:      input.OriginalAmount,
		Balance:             input.Balance,
		AnnualRatePct:       input.AnnualRate,
		MinimumPayment:      input.MinimumPayment,
		DueDay:              input.DueDay,
		RemainingTermMonths: input.RemainingTermMonths,
	}
}

// plannerDebts converts stored debt rows to the planner's canonical shape.
func plannerDebts(debts []models.Debt) []planner.Debt {
	out := make([]planner.Debt, 0, len(debts))
	for _, d := range debts {
		out = append(out, planner.Debt{
			ID:              strconv.FormatUint(uint64(d.ID), 10),
			Name:            d.Name,
			Category:        d.Category,
			OriginalCents:   d.OriginalAmount,
			BalanceCents:    d.Balance,
			APRBps:          d.APRBps,
			MinPaymentCents: d.MinPayment,
			DueDay:          d.DueDay,
		})
	}
	return out
}
