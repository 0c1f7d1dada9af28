package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "spendbook/internal/errors"
	"spendbook/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// CreateBudgetRequest represents the request payload for creating a budget.
type CreateBudgetRequest struct {
	UserID      uint            `json:"user_id" binding:"required"`
	Category    string          `json:"category" binding:"required,max=100"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
	StartDate   string          `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     string          `json:"end_date" binding:"required,datetime=2006-01-02"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
type UpdateBudgetRequest struct {
	Category    string          `json:"category" binding:"required,max=100"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
	StartDate   string          `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     string          `json:"end_date" binding:"required,datetime=2006-01-02"`
}

// CreateBudget handles the creation of a new budget.
// @Summary     Create a budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} map[string]interface{} "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	budget, err := h.budgetService.Create(req.UserID, req.Category, req.LimitAmount, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets handles listing all budgets.
// @Summary     List budgets
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Budgets"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	budgets, err := h.budgetService.GetAll()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// GetUserBudgets handles listing budgets for one user.
// @Summary     List a user's budgets
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       userId path int true "User ID"
// @Success     200 {object} map[string]interface{} "Budgets"
// @Router      /budgets/user/{userId} [get]
func (h *BudgetHandler) GetUserBudgets(c *gin.Context) {
	userID, err := parsePathID(c, "userId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgets, err := h.budgetService.GetByUser(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// GetBudget handles retrieving a specific budget.
// @Summary     Get budget by ID
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} map[string]interface{} "Budget"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// UpdateBudget handles updating an existing budget.
// @Summary     Update budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                 true "Budget ID"
// @Param       request body UpdateBudgetRequest true "Updated budget details"
// @Success     200 {object} map[string]interface{} "Updated budget"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	budget, err := h.budgetService.Update(id, req.Category, req.LimitAmount, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget handles deleting a budget.
// @Summary     Delete budget
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} MessageResponse "Budget deleted"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}

// GetBudgetSpending handles the per-budget spending aggregate.
// @Summary     Get budget spending
// @Description Sum of the owner's expenses matching the budget's category inside its date range
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} map[string]interface{} "Spending total"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id}/spending [get]
func (h *BudgetHandler) GetBudgetSpending(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	spending, err := h.budgetService.GetSpending(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"spending": spending})
}

// GetActiveBudget handles finding the budget covering today for a user/category.
// @Summary     Get active budget
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       userId   path string true "User ID"
// @Param       category path string true "Category"
// @Success     200 {object} map[string]interface{} "Active budget"
// @Failure     404 {object} ErrorResponse "No active budget"
// @Router      /budgets/active/user/{userId}/category/{category} [get]
func (h *BudgetHandler) GetActiveBudget(c *gin.Context) {
	userID, err := parsePathID(c, "userId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetActiveBudget(userID, c.Param("category"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GetTotalSpending handles the aggregate spending query for a user/category/date range.
// @Summary     Get total spending
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       userId    path  string true "User ID"
// @Param       category  path  string true "Category"
// @Param       startDate query string true "Start date (YYYY-MM-DD)"
// @Param       endDate   query string true "End date (YYYY-MM-DD)"
// @Success     200 {object} map[string]interface{} "Spending total"
// @Router      /budgets/spending/user/{userId}/category/{category} [get]
func (h *BudgetHandler) GetTotalSpending(c *gin.Context) {
	userID, err := parsePathID(c, "userId")
	if err != nil {
		respondWithError(c, err)
		return
	}
	start, err := parseDateQuery(c, "startDate")
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, err := parseDateQuery(c, "endDate")
	if err != nil {
		respondWithError(c, err)
		return
	}

	spending, err := h.budgetService.TotalSpending(userID, c.Param("category"), start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"spending": spending})
}
