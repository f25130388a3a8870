package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "debtwise/internal/errors"
	"debtwise/internal/services"
)

// IncomeHandler handles income-profile requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
	auditService  services.AuditServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer, auditService services.AuditServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService, auditService: auditService}
}

// IncomeProfileRequest represents the request payload for setting the income
// profile. Amounts are in cents. Either gross or net may be zero when
// unknown, but not both.
type IncomeProfileRequest struct {
	GrossMonthly   int64 `json:"gross_monthly" binding:"min=0"`
	NetMonthly     int64 `json:"net_monthly" binding:"min=0"`
	MonthlyExpense int64 `json:"monthly_expense" binding:"min=0"`
}

// UpsertProfile handles creating or replacing the income profile.
// @Summary     Set income profile
// @Description Create or replace the authenticated user's income snapshot
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body IncomeProfileRequest true "Income amounts in cents"
// @Success     200 {object} models.IncomeProfile "Income profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income [put]
func (h *IncomeHandler) UpsertProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req IncomeProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.incomeService.UpsertProfile(userID, req.GrossMonthly, req.NetMonthly, req.MonthlyExpense)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPSERT_INCOME_PROFILE", "income_profile", profile.ID, c.ClientIP(),
		map[string]interface{}{"gross_monthly": req.GrossMonthly, "net_monthly": req.NetMonthly})

	c.JSON(http.StatusOK, gin.H{"income_profile": profile})
}

// GetProfile handles fetching the income profile.
// @Summary     Get income profile
// @Description Get the authenticated user's income snapshot
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.IncomeProfile "Income profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income profile not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income [get]
func (h *IncomeHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.incomeService.GetProfile(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income_profile": profile})
}
