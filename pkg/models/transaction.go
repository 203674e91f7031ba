package models

import "github.com/shopspring/decimal"

// Transaction represents a wallet transaction
type Transaction struct {
	ID                  ID               `json:"id"`
	UUID                string           `json:"uuid"`
	Name                *string          `json:"name"`
	UserID              ID               `json:"user_id"`
	WalletID            ID               `json:"wallet_id"`
	CategoryID          ID               `json:"category_id"`
	Amount              decimal.Decimal  `json:"amount"`
	Repeat              string           `json:"repeat"`
	Reminder            string           `json:"reminder"`
	Status              string           `json:"status"`
	StartDate           string           `json:"start_date"`
	Offset              string           `json:"offset"`
	Note                *string          `json:"note"`
	TemplateID          *ID              `json:"template_id"`
	ForeignCurrency     *string          `json:"foreign_currency"`
	ForeignRate         *decimal.Decimal `json:"foreign_rate"`
	ForeignAmount       *decimal.Decimal `json:"foreign_amount"`
	IsPending           int              `json:"is_pending"`
	Timezone            string           `json:"timezone"`
	LinkedTransactionID *ID              `json:"linked_transaction_id"`
	Type                string           `json:"type"`
	Hashtags            []string         `json:"hashtags"`
	TransferType        *string          `json:"transfer_type"`
}

// TransactionTemplate is a scheduled or repeating transaction
type TransactionTemplate struct {
	ID               ID               `json:"id"`
	UUID             string           `json:"uuid"`
	Type             string           `json:"type"`
	UserID           ID               `json:"user_id"`
	WalletID         ID               `json:"wallet_id"`
	WalletCurrency   string           `json:"wallet_currency"`
	CategoryID       ID               `json:"category_id"`
	Amount           decimal.Decimal  `json:"amount"`
	ForeignCurrency  *string          `json:"foreign_currency"`
	ForeignRate      *decimal.Decimal `json:"foreign_rate"`
	ForeignAmount    *decimal.Decimal `json:"foreign_amount"`
	Repeat           string           `json:"repeat"`
	Reminder         string           `json:"reminder"`
	Status           string           `json:"status"`
	StartDate        string           `json:"start_date"`
	LastInstanceDate *string          `json:"last_instance_date"`
	EndDate          *string          `json:"end_date"`
	Timezone         string           `json:"timezone"`
	Note             *string          `json:"note"`
	TargetWalletID   *ID              `json:"target_wallet_id"`
	Hashtags         []string         `json:"hashtags"`
}
