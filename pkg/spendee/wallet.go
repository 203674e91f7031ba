package spendee

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Dan9191/spendee/pkg/models"
	"github.com/shopspring/decimal"
)

var (
	endpointWalletGetAll  = Endpoint{Method: http.MethodPost, Version: "v1", Path: "wallet-get-all"}
	endpointWalletCreate  = Endpoint{Method: http.MethodPost, Version: "v1", Path: "wallet-create"}
	endpointWalletUpdate  = Endpoint{Method: http.MethodPost, Version: "v1", Path: "wallet-update"}
	endpointWalletDelete  = Endpoint{Method: http.MethodPost, Version: "v1", Path: "wallet-delete"}
	endpointWalletInvite  = Endpoint{Method: http.MethodPost, Version: "v1", Path: "wallet-invite-to-share"}
	endpointWalletUnshare = Endpoint{Method: http.MethodPost, Version: "v1", Path: "wallet-unshare-user"}
)

// Wallets returns all wallets of the user, shared ones included
func (c *Client) Wallets(ctx context.Context) ([]models.Wallet, error) {
	data, err := c.call(ctx, endpointWalletGetAll, nil, nil)
	if err != nil {
		return nil, err
	}
	var wallets []models.Wallet
	if err := decodeMemberList(endpointWalletGetAll, data, "wallets", &wallets, "id", "name", "currency"); err != nil {
		return nil, err
	}
	return wallets, nil
}

// CreateWalletRequest describes a new wallet
type CreateWalletRequest struct {
	Name     string
	Currency string
	// Order defaults to 1
	Order           int
	StartingBalance decimal.Decimal
}

type createWalletBody struct {
	Name            string      `json:"name"`
	StartingBalance json.Number `json:"starting_balance"`
	Currency        string      `json:"currency"`
	Order           int         `json:"order"`
}

// CreateWallet creates a wallet and returns it
func (c *Client) CreateWallet(ctx context.Context, r CreateWalletRequest) (*models.Wallet, error) {
	name, err := requireName("name", r.Name)
	if err != nil {
		return nil, err
	}
	code, err := currencyCode("currency", r.Currency)
	if err != nil {
		return nil, err
	}
	body := createWalletBody{
		Name:            name,
		StartingBalance: number(r.StartingBalance),
		Currency:        code,
		Order:           r.Order,
	}
	if body.Order == 0 {
		body.Order = 1
	}

	data, err := c.call(ctx, endpointWalletCreate, nil, body)
	if err != nil {
		return nil, err
	}
	var wallet models.Wallet
	if err := decodeMember(endpointWalletCreate, data, "wallet", &wallet, "id", "name", "currency"); err != nil {
		return nil, err
	}

	c.log.Infof("Wallet created: %s (%s)", wallet.ID, wallet.Currency)
	return &wallet, nil
}

// UpdateWalletRequest replaces the settings of a wallet
type UpdateWalletRequest struct {
	ID              models.ID
	Name            string
	Currency        string
	StartingBalance decimal.Decimal
}

type updateWalletBody struct {
	ID              models.ID   `json:"id"`
	Name            string      `json:"name"`
	StartingBalance json.Number `json:"starting_balance"`
	Currency        string      `json:"currency"`
}

// UpdateWallet changes a wallet's name, currency and starting balance
func (c *Client) UpdateWallet(ctx context.Context, r UpdateWalletRequest) error {
	if err := requireID("id", r.ID); err != nil {
		return err
	}
	name, err := requireName("name", r.Name)
	if err != nil {
		return err
	}
	code, err := currencyCode("currency", r.Currency)
	if err != nil {
		return err
	}

	data, err := c.call(ctx, endpointWalletUpdate, nil, updateWalletBody{
		ID:              r.ID,
		Name:            name,
		StartingBalance: number(r.StartingBalance),
		Currency:        code,
	})
	if err != nil {
		return err
	}
	return decodeAck(endpointWalletUpdate, data)
}

type walletIDBody struct {
	WalletID models.ID `json:"wallet_id"`
}

// DeleteWallet deletes a wallet
func (c *Client) DeleteWallet(ctx context.Context, walletID models.ID) error {
	if err := requireID("wallet_id", walletID); err != nil {
		return err
	}
	data, err := c.call(ctx, endpointWalletDelete, nil, walletIDBody{WalletID: walletID})
	if err != nil {
		return err
	}
	if err := decodeAck(endpointWalletDelete, data); err != nil {
		return err
	}

	c.log.Infof("Wallet deleted: %s", walletID)
	return nil
}

type walletSharingBody struct {
	Emails   []string  `json:"emails"`
	WalletID models.ID `json:"wallet_id"`
}

// InviteToShare invites users by email to share a wallet
func (c *Client) InviteToShare(ctx context.Context, walletID models.ID, emails ...string) error {
	return c.walletSharing(ctx, endpointWalletInvite, walletID, emails)
}

// UnshareUser withdraws the sharing invitations of the given emails
func (c *Client) UnshareUser(ctx context.Context, walletID models.ID, emails ...string) error {
	return c.walletSharing(ctx, endpointWalletUnshare, walletID, emails)
}

func (c *Client) walletSharing(ctx context.Context, ep Endpoint, walletID models.ID, emails []string) error {
	if err := requireID("wallet_id", walletID); err != nil {
		return err
	}
	list, err := emailList("emails", emails)
	if err != nil {
		return err
	}
	data, err := c.call(ctx, ep, nil, walletSharingBody{Emails: list, WalletID: walletID})
	if err != nil {
		return err
	}
	return decodeAck(ep, data)
}
