package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"debtwise/internal/pagination"
	"debtwise/internal/planner"
	"debtwise/internal/services"
)

// InsightHandler handles AI coaching requests. The insight collaborator is
// optional infrastructure; everything else in the API works without it.
type InsightHandler struct {
	insightService services.InsightServicer
	planService    services.PlanServicer
	debtService    services.DebtServicer
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insightService services.InsightServicer, planService services.PlanServicer, debtService services.DebtServicer) *InsightHandler {
	return &InsightHandler{insightService: insightService, planService: planService, debtService: debtService}
}

// GetInsights handles generating coaching tips for the current situation.
// @Summary     Get coaching insights
// @Description Generate AI coaching tips from the current risk assessment and debts
// @Tags        insights
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]string "Coaching tips"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Insufficient income data"
// @Failure     503 {object} ErrorResponse "Insights unavailable"
// @Router      /insights [get]
func (h *InsightHandler) GetInsights(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assessment, err := h.planService.AssessRisk(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	active := true
	page := pagination.PageRequest{Page: 1, PageSize: 100}
	debts, err := h.debtService.GetUserDebts(userID, page, &active, nil)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary := make([]planner.Debt, 0, len(debts.Data))
	for _, d := range debts.Data {
		summary = append(summary, planner.Debt{
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

	tips, err := h.insightService.CoachingTips(assessment, summary)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"insights": tips})
}
