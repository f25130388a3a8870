package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "debtwise/internal/errors"
	"debtwise/internal/pagination"
	"debtwise/internal/services"
)

// PlanHandler handles risk assessment and repayment planning requests.
type PlanHandler struct {
	planService  services.PlanServicer
	auditService services.AuditServicer
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService services.PlanServicer, auditService services.AuditServicer) *PlanHandler {
	return &PlanHandler{planService: planService, auditService: auditService}
}

// PlanRequest represents the planning inputs: the monthly payment slider,
// the goal-weighting slider, and optionally an explicit strategy or a target
// payoff time that derives the payment instead. Exactly one of budget and
// target_months must be set.
type PlanRequest struct {
	Budget        int64  `json:"budget" binding:"omitempty,gt=0"`
	GoalWeighting int    `json:"goal_weighting" binding:"min=0,max=100"`
	Strategy      string `json:"strategy" binding:"omitempty,repayment_strategy"`
	TargetMonths  int    `json:"target_months" binding:"omitempty,min=1,max=600"`
}

func (r PlanRequest) toInput() services.PlanInput {
	return services.PlanInput{
		BudgetCents:   r.Budget,
		GoalWeighting: r.GoalWeighting,
		Strategy:      r.Strategy,
		TargetMonths:  r.TargetMonths,
	}
}

func (r PlanRequest) validate() error {
	if r.Budget == 0 && r.TargetMonths == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "either budget or target_months is required")
	}
	if r.Budget > 0 && r.TargetMonths > 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "budget and target_months are mutually exclusive")
	}
	return nil
}

// GetRisk handles the debt-to-income risk assessment.
// @Summary     Assess risk
// @Description Compute the debt-to-income ratio and risk tier from current data
// @Tags        plans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} planner.RiskAssessment "Risk assessment"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Insufficient income data"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /risk [get]
func (h *PlanHandler) GetRisk(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{"risk": assessment})
}

// PreviewPlan handles plan preview without persistence.
// @Summary     Preview a repayment plan
// @Description Resolve a repayment plan for the given inputs without saving it
// @Tags        plans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PlanRequest true "Planning inputs"
// @Success     200 {object} planner.Plan "Resolved plan"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Infeasible budget or no active debts"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /plans/preview [post]
func (h *PlanHandler) PreviewPlan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if err := req.validate(); err != nil {
		respondWithError(c, err)
		return
	}

	plan, err := h.planService.PreviewPlan(userID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// CommitPlan handles resolving and persisting a plan.
// @Summary     Commit a repayment plan
// @Description Resolve and save a plan, superseding the previously active one
// @Tags        plans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PlanRequest true "Planning inputs"
// @Success     201 {object} models.RepaymentPlan "Committed plan"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Infeasible budget or no active debts"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /plans [post]
func (h *PlanHandler) CommitPlan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if err := req.validate(); err != nil {
		respondWithError(c, err)
		return
	}

	plan, err := h.planService.CommitPlan(userID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "COMMIT_PLAN", "repayment_plan", plan.ID, c.ClientIP(),
		map[string]interface{}{"strategy": plan.Strategy, "monthly_budget": plan.MonthlyBudget, "months": plan.Months})

	c.JSON(http.StatusCreated, gin.H{"plan": plan})
}

// GetActivePlan handles fetching the currently active plan.
// @Summary     Get active plan
// @Description Get the authenticated user's currently active repayment plan
// @Tags        plans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.RepaymentPlan "Active plan"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No active plan"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /plans/active [get]
func (h *PlanHandler) GetActivePlan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	plan, err := h.planService.GetActivePlan(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// GetPlanHistory handles listing past and present plans.
// @Summary     Get plan history
// @Description Get a paginated list of the user's plans, newest first
// @Tags        plans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.RepaymentPlan] "Paginated plans"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /plans [get]
func (h *PlanHandler) GetPlanHistory(c *gin.Context) {
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

	result, err := h.planService.GetPlanHistory(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
