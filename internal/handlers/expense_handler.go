package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "spendbook/internal/errors"
	"spendbook/internal/models"
	"spendbook/internal/services"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents the request payload for creating an expense.
type CreateExpenseRequest struct {
	Title         string          `json:"title" binding:"max=200"`
	Description   string          `json:"description" binding:"max=500"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Category      string          `json:"category" binding:"max=100"`
	PaymentMethod string          `json:"payment_method" binding:"max=50"`
	IsPinned      bool            `json:"is_pinned"`
	ExpenseType   string          `json:"expense_type" binding:"omitempty,expense_type"`
}

// UpdateExpenseRequest represents the request payload for the full-replace
// expense update. Every field is applied as given.
type UpdateExpenseRequest struct {
	Description   string          `json:"description" binding:"max=500"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category" binding:"max=100"`
	Date          string          `json:"date" binding:"required,datetime=2006-01-02"`
	PaymentMethod string          `json:"payment_method" binding:"max=50"`
}

// CreateExpense handles the creation of a new expense.
// @Summary     Create an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} map[string]interface{} "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var date time.Time
	if req.Date != "" {
		date, _ = time.Parse("2006-01-02", req.Date)
	}

	expense, err := h.expenseService.Add(userID, req.Title, req.Description, req.Amount,
		date, req.Category, req.PaymentMethod, req.IsPinned, models.ExpenseType(req.ExpenseType))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// GetExpenses handles listing all expenses.
// @Summary     List expenses
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Expenses"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	expenses, err := h.expenseService.GetAll()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// GetExpense handles retrieving a single expense.
// @Summary     Get expense by ID
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} map[string]interface{} "Expense"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// UpdateExpense handles the full-replace expense update.
// @Summary     Update expense
// @Description Overwrite description, amount, category, date, and payment method
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Replacement field values"
// @Success     200 {object} map[string]interface{} "Updated expense"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	expense, err := h.expenseService.Update(id, req.Description, req.Amount, req.Category, date, req.PaymentMethod)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles deleting an expense.
// @Summary     Delete expense
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// SearchExpenses handles keyword search over description and category.
// @Summary     Search expenses
// @Description Case-insensitive substring match against description or category
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       keyword query string true "Search keyword"
// @Success     200 {object} map[string]interface{} "Matching expenses"
// @Router      /expenses/search [get]
func (h *ExpenseHandler) SearchExpenses(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "keyword is required"))
		return
	}

	expenses, err := h.expenseService.SearchByKeyword(keyword)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// FilterByCategory handles exact category filtering.
// @Summary     Filter expenses by category
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       category query string true "Category (case-insensitive)"
// @Success     200 {object} map[string]interface{} "Matching expenses"
// @Router      /expenses/filter/category [get]
func (h *ExpenseHandler) FilterByCategory(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required"))
		return
	}

	expenses, err := h.expenseService.FilterByCategory(category)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// FilterByPaymentMethod handles exact payment-method filtering.
// @Summary     Filter expenses by payment method
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       paymentMethod query string true "Payment method (case-insensitive)"
// @Success     200 {object} map[string]interface{} "Matching expenses"
// @Router      /expenses/filter/payment-method [get]
func (h *ExpenseHandler) FilterByPaymentMethod(c *gin.Context) {
	paymentMethod := c.Query("paymentMethod")
	if paymentMethod == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "paymentMethod is required"))
		return
	}

	expenses, err := h.expenseService.FilterByPaymentMethod(paymentMethod)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// FilterByDateRange handles inclusive date-range filtering.
// @Summary     Filter expenses by date range
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       startDate query string true "Start date (YYYY-MM-DD, inclusive)"
// @Param       endDate   query string true "End date (YYYY-MM-DD, inclusive)"
// @Success     200 {object} map[string]interface{} "Matching expenses"
// @Router      /expenses/filter/date-range [get]
func (h *ExpenseHandler) FilterByDateRange(c *gin.Context) {
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

	expenses, err := h.expenseService.FilterByDateRange(start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}
