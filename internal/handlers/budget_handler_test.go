package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "spendbook/internal/errors"
	"spendbook/internal/models"
	"spendbook/internal/services"
)

// --- mock budget service ---

type mockBudgetService struct {
	createFn          func(userID uint, category string, limitAmount decimal.Decimal, startDate, endDate time.Time) (*models.Budget, error)
	getAllFn          func() ([]models.Budget, error)
	getByUserFn       func(userID uint) ([]models.Budget, error)
	getByIDFn         func(id uint) (*models.Budget, error)
	updateFn          func(id uint, category string, limitAmount decimal.Decimal, startDate, endDate time.Time) (*models.Budget, error)
	deleteFn          func(id uint) error
	getSpendingFn     func(budgetID uint) (decimal.Decimal, error)
	getActiveBudgetFn func(userID uint, category string) (*models.Budget, error)
	totalSpendingFn   func(userID uint, category string, start, end time.Time) (decimal.Decimal, error)
}

func (m *mockBudgetService) Create(userID uint, category string, limitAmount decimal.Decimal, startDate, endDate time.Time) (*models.Budget, error) {
	if m.createFn != nil {
		return m.createFn(userID, category, limitAmount, startDate, endDate)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) GetAll() ([]models.Budget, error) {
	if m.getAllFn != nil {
		return m.getAllFn()
	}
	return []models.Budget{}, nil
}

func (m *mockBudgetService) GetByUser(userID uint) ([]models.Budget, error) {
	if m.getByUserFn != nil {
		return m.getByUserFn(userID)
	}
	return []models.Budget{}, nil
}

func (m *mockBudgetService) GetByID(id uint) (*models.Budget, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) Update(id uint, category string, limitAmount decimal.Decimal, startDate, endDate time.Time) (*models.Budget, error) {
	if m.updateFn != nil {
		return m.updateFn(id, category, limitAmount, startDate, endDate)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) Delete(id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

func (m *mockBudgetService) GetSpending(budgetID uint) (decimal.Decimal, error) {
	if m.getSpendingFn != nil {
		return m.getSpendingFn(budgetID)
	}
	return decimal.Zero, nil
}

func (m *mockBudgetService) GetActiveBudget(userID uint, category string) (*models.Budget, error) {
	if m.getActiveBudgetFn != nil {
		return m.getActiveBudgetFn(userID, category)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) TotalSpending(userID uint, category string, start, end time.Time) (decimal.Decimal, error) {
	if m.totalSpendingFn != nil {
		return m.totalSpendingFn(userID, category, start, end)
	}
	return decimal.Zero, nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/budgets", handler.CreateBudget)
	auth.GET("/budgets", handler.GetBudgets)
	auth.GET("/budgets/user/:userId", handler.GetUserBudgets)
	auth.GET("/budgets/active/user/:userId/category/:category", handler.GetActiveBudget)
	auth.GET("/budgets/spending/user/:userId/category/:category", handler.GetTotalSpending)
	auth.GET("/budgets/:id", handler.GetBudget)
	auth.GET("/budgets/:id/spending", handler.GetBudgetSpending)
	auth.PUT("/budgets/:id", handler.UpdateBudget)
	auth.DELETE("/budgets/:id", handler.DeleteBudget)
	return r
}

func TestBudgetHandler_CreateBudget(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockBudgetService{
			createFn: func(userID uint, category string, limit decimal.Decimal, start, end time.Time) (*models.Budget, error) {
				return &models.Budget{
					Base:        models.Base{ID: 1},
					UserID:      userID,
					Category:    category,
					LimitAmount: limit,
					StartDate:   start,
					EndDate:     end,
				}, nil
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc))

		rec := doRequest(r, "POST", "/budgets",
			`{"user_id":1,"category":"Food","limit_amount":"200","start_date":"2024-03-01","end_date":"2024-03-31"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		budget := result["budget"].(map[string]interface{})
		if budget["category"] != "Food" {
			t.Errorf("expected category Food, got %v", budget["category"])
		}
	})

	t.Run("returns 400 on missing dates", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}))

		rec := doRequest(r, "POST", "/budgets", `{"user_id":1,"category":"Food"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 on unknown user", func(t *testing.T) {
		svc := &mockBudgetService{
			createFn: func(uint, string, decimal.Decimal, time.Time, time.Time) (*models.Budget, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc))

		rec := doRequest(r, "POST", "/budgets",
			`{"user_id":999,"category":"Food","limit_amount":"200","start_date":"2024-03-01","end_date":"2024-03-31"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "USER_NOT_FOUND")
	})
}

func TestBudgetHandler_GetBudgetSpending(t *testing.T) {
	t.Run("returns the computed spending", func(t *testing.T) {
		svc := &mockBudgetService{
			getSpendingFn: func(uint) (decimal.Decimal, error) {
				return decimal.NewFromInt(170), nil
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc))

		rec := doRequest(r, "GET", "/budgets/1/spending", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["spending"] != "170" {
			t.Errorf("expected spending 170, got %v", result["spending"])
		}
	})

	t.Run("returns 404 for missing budget", func(t *testing.T) {
		svc := &mockBudgetService{
			getSpendingFn: func(uint) (decimal.Decimal, error) {
				return decimal.Zero, apperrors.ErrBudgetNotFound
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc))

		rec := doRequest(r, "GET", "/budgets/42/spending", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_GetTotalSpending(t *testing.T) {
	t.Run("parses path and query params", func(t *testing.T) {
		var gotUserID uint
		var gotCategory string
		svc := &mockBudgetService{
			totalSpendingFn: func(userID uint, category string, _, _ time.Time) (decimal.Decimal, error) {
				gotUserID = userID
				gotCategory = category
				return decimal.NewFromInt(55), nil
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc))

		rec := doRequest(r, "GET", "/budgets/spending/user/7/category/Food?startDate=2024-03-01&endDate=2024-03-31", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotUserID != 7 || gotCategory != "Food" {
			t.Errorf("unexpected args: user %d category %q", gotUserID, gotCategory)
		}
	})

	t.Run("returns 400 without date range", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}))

		rec := doRequest(r, "GET", "/budgets/spending/user/7/category/Food", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_GetActiveBudget(t *testing.T) {
	t.Run("returns 404 when none active", func(t *testing.T) {
		svc := &mockBudgetService{
			getActiveBudgetFn: func(uint, string) (*models.Budget, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc))

		rec := doRequest(r, "GET", "/budgets/active/user/1/category/Food", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BUDGET_NOT_FOUND")
	})
}
