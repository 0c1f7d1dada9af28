package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "spendbook/internal/errors"
	"spendbook/internal/services"
)

// RecurringBillHandler handles recurring-bill requests.
type RecurringBillHandler struct {
	billService services.RecurringBillServicer
}

// NewRecurringBillHandler creates a new RecurringBillHandler.
func NewRecurringBillHandler(billService services.RecurringBillServicer) *RecurringBillHandler {
	return &RecurringBillHandler{billService: billService}
}

// CreateBillRequest represents the request payload for creating a recurring bill.
type CreateBillRequest struct {
	UserID             uint            `json:"user_id" binding:"required"`
	Name               string          `json:"name" binding:"required,max=200"`
	Amount             decimal.Decimal `json:"amount"`
	Category           string          `json:"category" binding:"max=100"`
	Frequency          string          `json:"frequency" binding:"omitempty,bill_frequency"`
	DayOfMonthDue      int             `json:"day_of_month_due" binding:"required,min=1,max=31"`
	NextDueDate        string          `json:"next_due_date" binding:"omitempty,datetime=2006-01-02"`
	Description        string          `json:"description" binding:"max=500"`
	ReminderDaysBefore *int            `json:"reminder_days_before" binding:"omitempty,min=0,max=31"`
	ReminderHour       *int            `json:"reminder_hour" binding:"omitempty,min=0,max=23"`
	ReminderMinute     *int            `json:"reminder_minute" binding:"omitempty,min=0,max=59"`
}

// UpdateBillRequest represents the partial-update payload for a recurring
// bill. Only the fields present in the JSON overwrite stored values.
type UpdateBillRequest struct {
	Name               *string          `json:"name" binding:"omitempty,max=200"`
	Amount             *decimal.Decimal `json:"amount"`
	Category           *string          `json:"category" binding:"omitempty,max=100"`
	Frequency          *string          `json:"frequency" binding:"omitempty,bill_frequency"`
	DayOfMonthDue      *int             `json:"day_of_month_due" binding:"omitempty,min=1,max=31"`
	NextDueDate        *string          `json:"next_due_date" binding:"omitempty,datetime=2006-01-02"`
	Description        *string          `json:"description" binding:"omitempty,max=500"`
	ReminderDaysBefore *int             `json:"reminder_days_before" binding:"omitempty,min=0,max=31"`
	ReminderHour       *int             `json:"reminder_hour" binding:"omitempty,min=0,max=23"`
	ReminderMinute     *int             `json:"reminder_minute" binding:"omitempty,min=0,max=59"`
}

// CreateBill handles the creation of a recurring bill.
// @Summary     Create a recurring bill
// @Tags        recurring-bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBillRequest true "Bill details"
// @Success     201 {object} map[string]interface{} "Bill created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /recurring-bills [post]
func (h *RecurringBillHandler) CreateBill(c *gin.Context) {
	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var nextDueDate *time.Time
	if req.NextDueDate != "" {
		d, _ := time.Parse("2006-01-02", req.NextDueDate)
		nextDueDate = &d
	}

	bill, err := h.billService.Create(req.UserID, req.Name, req.Amount, req.Category,
		req.Frequency, req.DayOfMonthDue, nextDueDate, req.Description,
		req.ReminderDaysBefore, req.ReminderHour, req.ReminderMinute)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bill": bill})
}

// GetBills handles listing all recurring bills.
// @Summary     List recurring bills
// @Tags        recurring-bills
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Bills"
// @Router      /recurring-bills [get]
func (h *RecurringBillHandler) GetBills(c *gin.Context) {
	bills, err := h.billService.GetAll()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

// GetUserBills handles listing one user's recurring bills.
// @Summary     List a user's recurring bills
// @Tags        recurring-bills
// @Produce     json
// @Security    BearerAuth
// @Param       userId path int true "User ID"
// @Success     200 {object} map[string]interface{} "Bills"
// @Router      /recurring-bills/user/{userId} [get]
func (h *RecurringBillHandler) GetUserBills(c *gin.Context) {
	userID, err := parsePathID(c, "userId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bills, err := h.billService.GetByUser(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

// GetBill handles retrieving a recurring bill by ID.
// @Summary     Get recurring bill by ID
// @Tags        recurring-bills
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Bill ID"
// @Success     200 {object} map[string]interface{} "Bill"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Router      /recurring-bills/{id} [get]
func (h *RecurringBillHandler) GetBill(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.GetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// UpdateBill handles the partial-merge bill update.
// @Summary     Update recurring bill
// @Description Merge update: only fields present in the payload overwrite stored values
// @Tags        recurring-bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "Bill ID"
// @Param       request body UpdateBillRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Updated bill"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Router      /recurring-bills/{id} [put]
func (h *RecurringBillHandler) UpdateBill(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	patch := services.BillPatch{
		Name:               req.Name,
		Amount:             req.Amount,
		Category:           req.Category,
		Frequency:          req.Frequency,
		DayOfMonthDue:      req.DayOfMonthDue,
		Description:        req.Description,
		ReminderDaysBefore: req.ReminderDaysBefore,
		ReminderHour:       req.ReminderHour,
		ReminderMinute:     req.ReminderMinute,
	}
	if req.NextDueDate != nil {
		d, _ := time.Parse("2006-01-02", *req.NextDueDate)
		patch.NextDueDate = &d
	}

	bill, err := h.billService.Update(id, patch)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// DeleteBill handles deleting a recurring bill.
// @Summary     Delete recurring bill
// @Tags        recurring-bills
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Bill ID"
// @Success     200 {object} MessageResponse "Bill deleted"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Router      /recurring-bills/{id} [delete]
func (h *RecurringBillHandler) DeleteBill(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.billService.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recurring bill deleted successfully"})
}
