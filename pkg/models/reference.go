package models

import "github.com/shopspring/decimal"

// Country is an entry of the country list
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Currency describes a currency known to Spendee
type Currency struct {
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	DecimalDigits   int             `json:"decimal_digits"`
	USDExchangeRate decimal.Decimal `json:"usd_exchange_rate"`
	ReplacedBy      *string         `json:"replaced_by"`
	DeletedAt       *string         `json:"deleted_at"`
}

// UserCurrencies groups recently used currencies and the full list
type UserCurrencies struct {
	Recent []Currency `json:"recent"`
	All    struct {
		Currencies []Currency `json:"currencies"`
	} `json:"all"`
}
