package models

import "github.com/shopspring/decimal"

// Bank is a connected bank login
type Bank struct {
	ID                    ID      `json:"id"`
	ProviderName          string  `json:"provider_name"`
	ProviderCode          string  `json:"provider_code"`
	ProviderImage         string  `json:"provider_image"`
	RememberCredentials   int     `json:"remember_credentials"`
	LastFetch             string  `json:"last_fetch"`
	RefreshPossible       int     `json:"refresh_possible"`
	CountryCode           string  `json:"country_code"`
	RefreshAt             string  `json:"refresh_at"`
	ConsentExpirationDate *string `json:"consent_expiration_date"`
}

// BankLoginDetail describes a bank login and its accounts
type BankLoginDetail struct {
	Provider struct {
		Name  string `json:"name"`
		Image string `json:"image"`
	} `json:"provider"`
	Accounts []BankAccount `json:"accounts"`
}

// BankAccount is a single account under a bank login
type BankAccount struct {
	ID            ID              `json:"id"`
	WalletID      *ID             `json:"walletId"`
	Nature        string          `json:"nature"`
	AccountNumber string          `json:"accountNumber"`
	Name          string          `json:"name"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	Active        bool            `json:"active"`
}

// Provider is a bank provider available in a country
type Provider struct {
	Name         string `json:"name"`
	CountryCode  string `json:"countryCode"`
	ProviderCode string `json:"providerCode"`
	IsFree       bool   `json:"isFree"`
	Picture      string `json:"picture"`
	Thumb24      string `json:"thumb_24"`
}

// RedirectURL is returned by the bank connection flows
type RedirectURL struct {
	URL string `json:"url"`
}
