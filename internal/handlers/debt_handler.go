package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "debtwise/internal/errors"
	"debtwise/internal/pagination"
	"debtwise/internal/planner"
	"debtwise/internal/services"
)

// DebtHandler handles debt-record requests.
type DebtHandler struct {
	debtService  services.DebtServicer
	auditService services.AuditServicer
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(debtService services.DebtServicer, auditService services.AuditServicer) *DebtHandler {
	return &DebtHandler{debtService: debtService, auditService: auditService}
}

// DebtRequest represents the request payload for creating or updating a debt.
// Amounts are decimal strings; normalization and range checks happen in the
// service so the caller gets per-field errors, not binding-tag messages.
type DebtRequest struct {
	Name                string `json:"name" binding:"required,min=1,max=100"`
	Category            string `json:"category" binding:"required,debt_category"`
	OriginalAmount      string `json:"original_amount" binding:"required"`
	Balance             string `json:"balance" binding:"required"`
	AnnualRate          string `json:"annual_rate" binding:"required"`
	MinimumPayment      string `json:"minimum_payment"`
	DueDay              int    `json:"due_day" binding:"required,min=1,max=31"`
	RemainingTermMonths int    `json:"remaining_term_months" binding:"omitempty,min=1,max=600"`
}

// RecordPaymentRequest represents the request payload for recording a payment.
type RecordPaymentRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

func (r DebtRequest) toInput() services.DebtInput {
	return services.DebtInput{
		Name:                r.Name,
		Category:            r.Category,
		OriginalAmount:      r.OriginalAmount,
		Balance:             r.Balance,
		AnnualRate:          r.AnnualRate,
		MinimumPayment:      r.MinimumPayment,
		DueDay:              r.DueDay,
		RemainingTermMonths: r.RemainingTermMonths,
	}
}

// CreateDebt handles the creation of a new debt record.
// @Summary     Create a debt
// @Description Register a new debt for the authenticated user
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body DebtRequest true "Debt details"
// @Success     201 {object} models.Debt "Debt created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts [post]
func (h *DebtHandler) CreateDebt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	debt, err := h.debtService.CreateDebt(userID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_DEBT", "debt", debt.ID, c.ClientIP(),
		map[string]interface{}{"name": debt.Name, "category": debt.Category, "balance": debt.Balance})

	c.JSON(http.StatusCreated, gin.H{"debt": debt})
}

// GetDebts handles listing debts for the authenticated user.
// @Summary     Get debts
// @Description Get a paginated list of debts for the authenticated user
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       is_active query bool   false "Filter by active status"
// @Param       category  query string false "Filter by debt category"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Debt] "Paginated debts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts [get]
func (h *DebtHandler) GetDebts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var isActive *bool
	if v := c.Query("is_active"); v != "" {
		switch v {
		case "true":
			b := true
			isActive = &b
		case "false":
			b := false
			isActive = &b
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "is_active must be 'true' or 'false'"))
			return
		}
	}

	var category *planner.Category
	if v := c.Query("category"); v != "" {
		cat := planner.Category(v)
		if !cat.Valid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown debt category"))
			return
		}
		category = &cat
	}

	result, err := h.debtService.GetUserDebts(userID, page, isActive, category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDebt handles fetching a single debt.
// @Summary     Get a debt
// @Description Get a single debt by ID
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Debt ID"
// @Success     200 {object} models.Debt "Debt"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/{id} [get]
func (h *DebtHandler) GetDebt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	debt, err := h.debtService.GetDebtByID(userID, debtID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// UpdateDebt handles correcting a debt record.
// @Summary     Update a debt
// @Description Replace a debt's fields after re-validation
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int         true "Debt ID"
// @Param       request body DebtRequest true "Debt details"
// @Success     200 {object} models.Debt "Debt updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/{id} [put]
func (h *DebtHandler) UpdateDebt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	debt, err := h.debtService.UpdateDebt(userID, debtID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_DEBT", "debt", debt.ID, c.ClientIP(),
		map[string]interface{}{"balance": debt.Balance})

	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// RecordPayment handles recording a payment against a debt.
// @Summary     Record a payment
// @Description Apply a payment to a debt's balance (in cents)
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Debt ID"
// @Param       request body RecordPaymentRequest true "Payment amount in cents"
// @Success     200 {object} models.Debt "Debt after payment"
// @Failure     400 {object} ErrorResponse "Invalid input or overpayment"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/{id}/payments [post]
func (h *DebtHandler) RecordPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	debt, err := h.debtService.RecordPayment(userID, debtID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "RECORD_PAYMENT", "debt", debt.ID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount, "balance": debt.Balance})

	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// DeleteDebt handles deleting a debt record.
// @Summary     Delete a debt
// @Description Soft-delete a debt record
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Debt ID"
// @Success     204 "Debt deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/{id} [delete]
func (h *DebtHandler) DeleteDebt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.debtService.DeleteDebt(userID, debtID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_DEBT", "debt", debtID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
