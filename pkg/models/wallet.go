package models

import "github.com/shopspring/decimal"

// Wallet represents a Spendee wallet
type Wallet struct {
	ID                        ID              `json:"id"`
	UUID                      string          `json:"uuid,omitempty"`
	Name                      string          `json:"name"`
	Balance                   decimal.Decimal `json:"balance"`
	Currency                  string          `json:"currency"`
	Status                    string          `json:"status,omitempty"`
	StartingBalance           decimal.Decimal `json:"starting_balance"`
	Type                      string          `json:"type,omitempty"`
	IsFree                    bool            `json:"is_free"`
	Modified                  string          `json:"modified,omitempty"`
	Created                   string          `json:"created,omitempty"`
	LastOpened                *string         `json:"last_opened"`
	SharingUsers              []SharingUser   `json:"sharing_users"`
	PendingUsers              []SharingUser   `json:"pending_users"`
	InvitationEmails          []string        `json:"invitation_emails"`
	Categories                []Category      `json:"categories,omitempty"`
	Order                     int             `json:"order"`
	IncludeFutureTransactions bool            `json:"include_future_transactions"`
	IsVisible                 bool            `json:"is_visible"`
	IsMy                      bool            `json:"is_my"`
}

// SharingUser is a user a wallet is shared with
type SharingUser struct {
	ID        ID     `json:"id"`
	UUID      string `json:"uuid"`
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Nickname  string `json:"nickname"`
	IsOwner   bool   `json:"is_owner"`
}
