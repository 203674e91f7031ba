package spendee

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Dan9191/spendee/pkg/models"
	"github.com/shopspring/decimal"
)

var (
	endpointBudgetGetAll = Endpoint{Method: http.MethodGet, Version: "v1.7", Path: "get-budgets"}
	endpointBudgetCreate = Endpoint{Method: http.MethodPost, Version: "v1.7", Path: "create-budget"}
	endpointBudgetEdit   = Endpoint{Method: http.MethodPost, Version: "v1.7", Path: "edit-budget"}
	endpointBudgetDelete = Endpoint{Method: http.MethodPost, Version: "v1.7", Path: "delete-budget"}
)

// A one-off budget without an end date runs this long
const onceBudgetLength = 4 * 7 * 24 * time.Hour

var budgetPeriods = map[string]bool{
	models.PeriodOnce:     true,
	models.PeriodDaily:    true,
	models.PeriodWeekly:   true,
	models.PeriodBiweekly: true,
	models.PeriodMonthly:  true,
	models.PeriodYearly:   true,
}

// BudgetRequest describes a budget to create or edit. Empty Wallets,
// Categories or Users mean all of them.
type BudgetRequest struct {
	// ID is required when editing
	ID         models.ID
	Name       string
	Limit      decimal.Decimal
	Currency   string
	Wallets    []models.ID
	Categories []models.ID
	Users      []models.ID
	// Period defaults to monthly
	Period string
	// StartDate defaults to today
	StartDate time.Time
	// EndDate only matters for PeriodOnce and defaults to four weeks after StartDate
	EndDate             time.Time
	Position            int
	Status              string
	Offline             bool
	DisableNotification bool
}

type budgetBody struct {
	ID                    models.ID   `json:"id,omitempty"`
	Offline               bool        `json:"offline"`
	Name                  string      `json:"name"`
	Limit                 json.Number `json:"limit"`
	Currency              string      `json:"currency"`
	Wallets               []models.ID `json:"wallets"`
	Categories            []models.ID `json:"categories"`
	Users                 []models.ID `json:"users"`
	Period                string      `json:"period"`
	StartDate             string      `json:"start_date"`
	EndDate               string      `json:"end_date,omitempty"`
	AllCategoriesSelected int         `json:"all_categories_selected"`
	AllUsersSelected      int         `json:"all_users_selected"`
	AllWalletsSelected    int         `json:"all_wallets_selected"`
	Status                string      `json:"status"`
	Notification          bool        `json:"notification"`
	Position              int         `json:"position"`
}

func (c *Client) budgetBody(r BudgetRequest) (*budgetBody, error) {
	name, err := requireName("name", r.Name)
	if err != nil {
		return nil, err
	}
	if !r.Limit.IsPositive() {
		return nil, &ValidationError{Field: "limit", Reason: "must be positive"}
	}
	code, err := currencyCode("currency", r.Currency)
	if err != nil {
		return nil, err
	}
	period := r.Period
	if period == "" {
		period = models.PeriodMonthly
	}
	if !budgetPeriods[period] {
		return nil, &ValidationError{Field: "period", Reason: "unknown period " + period}
	}

	start := r.StartDate
	if start.IsZero() {
		start = c.now()
	}
	end := r.EndDate
	if end.IsZero() && period == models.PeriodOnce {
		end = start.Add(onceBudgetLength)
	}
	if !end.IsZero() && end.Before(start) {
		return nil, &ValidationError{Field: "end_date", Reason: "is before start_date"}
	}

	body := &budgetBody{
		ID:                    r.ID,
		Offline:               r.Offline,
		Name:                  name,
		Limit:                 number(r.Limit),
		Currency:              code,
		Wallets:               ids(r.Wallets),
		Categories:            ids(r.Categories),
		Users:                 ids(r.Users),
		Period:                period,
		StartDate:             start.Format(time.DateOnly),
		AllCategoriesSelected: flag(len(r.Categories) == 0),
		AllUsersSelected:      flag(len(r.Users) == 0),
		AllWalletsSelected:    flag(len(r.Wallets) == 0),
		Status:                r.Status,
		Notification:          !r.DisableNotification,
		Position:              r.Position,
	}
	if !end.IsZero() {
		body.EndDate = end.Format(time.DateOnly)
	}
	if body.Status == "" {
		body.Status = "active"
	}
	if body.Position == 0 {
		body.Position = 1
	}
	return body, nil
}

// Budgets returns the user's budgets
func (c *Client) Budgets(ctx context.Context) ([]models.Budget, error) {
	data, err := c.call(ctx, endpointBudgetGetAll, nil, nil)
	if err != nil {
		return nil, err
	}
	var budgets []models.Budget
	if err := decodeMemberList(endpointBudgetGetAll, data, "budgets", &budgets, "id", "name", "limit"); err != nil {
		return nil, err
	}
	return budgets, nil
}

// CreateBudget creates a budget and returns it
func (c *Client) CreateBudget(ctx context.Context, r BudgetRequest) (*models.Budget, error) {
	r.ID = ""
	body, err := c.budgetBody(r)
	if err != nil {
		return nil, err
	}

	data, err := c.call(ctx, endpointBudgetCreate, nil, body)
	if err != nil {
		return nil, err
	}
	var budget models.Budget
	if err := decodeMember(endpointBudgetCreate, data, "budget", &budget, "id", "name", "limit"); err != nil {
		return nil, err
	}

	c.log.Infof("Budget created: %s", budget.ID)
	return &budget, nil
}

// EditBudget replaces a budget. Upstream answers with the bare budget here,
// not wrapped like on creation.
func (c *Client) EditBudget(ctx context.Context, r BudgetRequest) (*models.Budget, error) {
	if err := requireID("id", r.ID); err != nil {
		return nil, err
	}
	body, err := c.budgetBody(r)
	if err != nil {
		return nil, err
	}

	data, err := c.call(ctx, endpointBudgetEdit, nil, body)
	if err != nil {
		return nil, err
	}
	var budget models.Budget
	if err := decodeObject(endpointBudgetEdit, data, &budget, "id", "name", "limit"); err != nil {
		return nil, err
	}
	return &budget, nil
}

type deleteBudgetBody struct {
	Budgets []models.ID `json:"budgets"`
}

// DeleteBudgets deletes the given budgets in one call
func (c *Client) DeleteBudgets(ctx context.Context, budgetIDs ...models.ID) error {
	if len(budgetIDs) == 0 {
		return required("budgets")
	}
	for _, id := range budgetIDs {
		if err := requireID("budgets", id); err != nil {
			return err
		}
	}

	data, err := c.call(ctx, endpointBudgetDelete, nil, deleteBudgetBody{Budgets: budgetIDs})
	if err != nil {
		return err
	}
	return decodeAck(endpointBudgetDelete, data)
}
