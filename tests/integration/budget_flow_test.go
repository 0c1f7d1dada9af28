package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestBudgetFlow_SpendingAgainstBudget(t *testing.T) {
	app := setupApp(t)

	token, userID := app.registerUser(t, "budget_flow", "password123")

	// Two Food expenses inside March, one outside the range, one other category.
	for _, body := range []string{
		`{"title":"Groceries","amount":"120","date":"2024-03-05","category":"Food"}`,
		`{"title":"Dining","amount":"50.50","date":"2024-03-20","category":"Food"}`,
		`{"title":"Groceries","amount":"80","date":"2024-04-02","category":"Food"}`,
		`{"title":"Metro","amount":"40","date":"2024-03-10","category":"Transport"}`,
	} {
		rec := app.request("POST", "/api/v1/expenses", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create expense failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	// Budget for Food in March.
	body := fmt.Sprintf(`{"user_id":%d,"category":"Food","limit_amount":"500","start_date":"2024-03-01","end_date":"2024-03-31"}`, int(userID))
	rec := app.request("POST", "/api/v1/budgets", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget failed: %d %s", rec.Code, rec.Body.String())
	}
	budget := parseJSON(t, rec)["budget"].(map[string]interface{})
	budgetID := int(budget["id"].(float64))

	// Spending against the budget counts only in-range Food expenses.
	rec = app.request("GET", fmt.Sprintf("/api/v1/budgets/%d/spending", budgetID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("budget spending failed: %d %s", rec.Code, rec.Body.String())
	}
	if spending := parseJSON(t, rec)["spending"]; spending != "170.5" {
		t.Errorf("expected spending 170.5, got %v", spending)
	}

	// The same total via the ad-hoc spending query.
	path := fmt.Sprintf("/api/v1/budgets/spending/user/%d/category/Food?startDate=2024-03-01&endDate=2024-03-31", int(userID))
	rec = app.request("GET", path, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("total spending failed: %d %s", rec.Code, rec.Body.String())
	}
	if spending := parseJSON(t, rec)["spending"]; spending != "170.5" {
		t.Errorf("expected spending 170.5, got %v", spending)
	}
}

func TestBudgetFlow_ActiveBudgetLookup(t *testing.T) {
	app := setupApp(t)

	token, userID := app.registerUser(t, "budget_active", "password123")

	// An expired budget and a current one for the same category.
	expired := fmt.Sprintf(`{"user_id":%d,"category":"Rent","limit_amount":"900","start_date":"2020-01-01","end_date":"2020-01-31"}`, int(userID))
	current := fmt.Sprintf(`{"user_id":%d,"category":"Rent","limit_amount":"1200","start_date":"2020-02-01","end_date":"2099-12-31"}`, int(userID))
	for _, body := range []string{expired, current} {
		rec := app.request("POST", "/api/v1/budgets", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create budget failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	path := fmt.Sprintf("/api/v1/budgets/active/user/%d/category/Rent", int(userID))
	rec := app.request("GET", path, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("active budget failed: %d %s", rec.Code, rec.Body.String())
	}
	budget := parseJSON(t, rec)["budget"].(map[string]interface{})
	if budget["limit_amount"] != "1200" {
		t.Errorf("expected the current budget (limit 1200), got %v", budget["limit_amount"])
	}

	// No active budget for an unknown category.
	rec = app.request("GET", fmt.Sprintf("/api/v1/budgets/active/user/%d/category/Gym", int(userID)), "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing active budget, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBudgetFlow_RejectsInvalidRange(t *testing.T) {
	app := setupApp(t)

	token, userID := app.registerUser(t, "budget_invalid", "password123")

	body := fmt.Sprintf(`{"user_id":%d,"category":"Food","limit_amount":"100","start_date":"2024-05-31","end_date":"2024-05-01"}`, int(userID))
	rec := app.request("POST", "/api/v1/budgets", body, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for start after end, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "INVALID_INPUT" {
		t.Errorf("expected INVALID_INPUT, got %v", errObj["code"])
	}
}
