package models

import "github.com/shopspring/decimal"

// Budget periods understood by the budget endpoints
const (
	PeriodOnce     = "once"
	PeriodDaily    = "daily"
	PeriodWeekly   = "weekly"
	PeriodBiweekly = "biweekly"
	PeriodMonthly  = "monthly"
	PeriodYearly   = "yearly"
)

// Budget represents a spending limit over a period
type Budget struct {
	ID                    ID              `json:"id"`
	UUID                  string          `json:"uuid,omitempty"`
	Name                  string          `json:"name"`
	Limit                 decimal.Decimal `json:"limit"`
	Currency              string          `json:"currency"`
	Notification          int             `json:"notification"`
	StartDate             string          `json:"start_date"`
	EndDate               *string         `json:"end_date"`
	Period                string          `json:"period"`
	Status                string          `json:"status"`
	Position              int             `json:"position"`
	AllCategoriesSelected int             `json:"all_categories_selected"`
	AllUsersSelected      int             `json:"all_users_selected"`
	AllWalletsSelected    int             `json:"all_wallets_selected"`
	Categories            []ID            `json:"categories"`
	Users                 []ID            `json:"users"`
	Wallets               []ID            `json:"wallets"`
}
