package spendee

import (
	"context"
	"net/http"

	"github.com/Dan9191/spendee/pkg/models"
)

var (
	endpointWalletTransactions   = Endpoint{Method: http.MethodPost, Version: "v1.8", Path: "wallet-get-transactions"}
	endpointTransactionTemplates = Endpoint{Method: http.MethodGet, Version: "v1.8", Path: "get-transaction-templates"}
)

// DefaultTransactionPage is the page size used when none is given
const DefaultTransactionPage = 10000

type transactionsBody struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// WalletTransactions returns one page of transactions. A zero limit means
// DefaultTransactionPage.
func (c *Client) WalletTransactions(ctx context.Context, offset, limit int) ([]models.Transaction, error) {
	if offset < 0 {
		return nil, &ValidationError{Field: "offset", Reason: "must not be negative"}
	}
	if limit < 0 {
		return nil, &ValidationError{Field: "limit", Reason: "must not be negative"}
	}
	if limit == 0 {
		limit = DefaultTransactionPage
	}

	data, err := c.call(ctx, endpointWalletTransactions, nil, transactionsBody{Offset: offset, Limit: limit})
	if err != nil {
		return nil, err
	}
	var transactions []models.Transaction
	if err := decodeMemberList(endpointWalletTransactions, data, "transactions", &transactions, "id", "amount", "wallet_id"); err != nil {
		return nil, err
	}
	return transactions, nil
}

// AllWalletTransactions pages through every transaction until a short page
// comes back. An error on any page discards what was fetched so far.
func (c *Client) AllWalletTransactions(ctx context.Context, pageSize int) ([]models.Transaction, error) {
	if pageSize < 0 {
		return nil, &ValidationError{Field: "page_size", Reason: "must not be negative"}
	}
	if pageSize == 0 {
		pageSize = DefaultTransactionPage
	}

	var all []models.Transaction
	for offset := 0; ; offset += pageSize {
		page, err := c.WalletTransactions(ctx, offset, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			break
		}
	}

	c.log.Debugf("Fetched %d transactions", len(all))
	return all, nil
}

// TransactionTemplates returns the scheduled and repeating transactions
func (c *Client) TransactionTemplates(ctx context.Context) ([]models.TransactionTemplate, error) {
	data, err := c.call(ctx, endpointTransactionTemplates, nil, nil)
	if err != nil {
		return nil, err
	}
	var templates []models.TransactionTemplate
	if err := decodeList(endpointTransactionTemplates, data, &templates, "id", "amount", "category_id"); err != nil {
		return nil, err
	}
	return templates, nil
}
