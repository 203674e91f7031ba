package spendee

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Dan9191/spendee/pkg/models"
)

var (
	endpointBanksGetAll     = Endpoint{Method: http.MethodGet, Version: "v1.3", Path: "banks-get-all"}
	endpointBankLoginDetail = Endpoint{Method: http.MethodGet, Version: "v2", Path: "bankLogins/detail"}
	endpointProviders       = Endpoint{Method: http.MethodGet, Version: "v2", Path: "providers", Public: true}
	endpointConnectBank     = Endpoint{Method: http.MethodPost, Version: "v2", Path: "url"}
	endpointSyncRefresh     = Endpoint{Method: http.MethodPut, Version: "v2", Path: "logins/refresh"}
	endpointVisibleAccounts = Endpoint{Method: http.MethodPut, Version: "v2", Path: "visible"}
)

const (
	defaultOAuthReturnURL = "https://app.spendee.com/dashboard/connect-bank/oauth-return"
	syncReturnURLFormat   = "https://app.spendee.com/wallet/%s/transactions/sync-account/oauth-return"
)

// Banks lists the user's connected bank logins
func (c *Client) Banks(ctx context.Context) ([]models.Bank, error) {
	data, err := c.call(ctx, endpointBanksGetAll, nil, nil)
	if err != nil {
		return nil, err
	}
	var banks []models.Bank
	if err := decodeList(endpointBanksGetAll, data, &banks, "id", "provider_code"); err != nil {
		return nil, err
	}
	return banks, nil
}

// BankLoginDetail returns the accounts behind a bank login
func (c *Client) BankLoginDetail(ctx context.Context, loginID models.ID, includeBank bool) (*models.BankLoginDetail, error) {
	if err := requireID("login_id", loginID); err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("bankLoginId", loginID.String())
	query.Set("includeBank", fmt.Sprint(flag(includeBank)))

	data, err := c.call(ctx, endpointBankLoginDetail, query, nil)
	if err != nil {
		return nil, err
	}
	var detail models.BankLoginDetail
	if err := decodeObject(endpointBankLoginDetail, data, &detail, "accounts"); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Providers lists the bank providers available in a country. No session needed.
func (c *Client) Providers(ctx context.Context, country string) ([]models.Provider, error) {
	code, err := countryCode("country", country)
	if err != nil {
		return nil, err
	}
	data, err := c.call(ctx, endpointProviders, url.Values{"country": {code}}, nil)
	if err != nil {
		return nil, err
	}
	var providers []models.Provider
	if err := decodeList(endpointProviders, data, &providers, "name", "providerCode"); err != nil {
		return nil, err
	}
	return providers, nil
}

// ConnectBankRequest starts connecting a bank account
type ConnectBankRequest struct {
	ProviderCode        string
	ServerAccountPicker bool
	// OAuthReturnURL defaults to the web app's return page
	OAuthReturnURL string
}

type connectBankBody struct {
	ProviderCode        string `json:"provider_code"`
	OAuthReturnURL      string `json:"oauth_return_url"`
	ServerAccountPicker bool   `json:"server_account_picker"`
}

// ConnectBankAccount returns the URL of the bank login form that creates an
// auto-syncing wallet
func (c *Client) ConnectBankAccount(ctx context.Context, r ConnectBankRequest) (*models.RedirectURL, error) {
	code, err := requireName("provider_code", r.ProviderCode)
	if err != nil {
		return nil, err
	}
	body := connectBankBody{
		ProviderCode:        code,
		OAuthReturnURL:      r.OAuthReturnURL,
		ServerAccountPicker: r.ServerAccountPicker,
	}
	if body.OAuthReturnURL == "" {
		body.OAuthReturnURL = defaultOAuthReturnURL
	}

	data, err := c.call(ctx, endpointConnectBank, nil, body)
	if err != nil {
		return nil, err
	}
	var redirect models.RedirectURL
	if err := decodeObject(endpointConnectBank, data, &redirect, "url"); err != nil {
		return nil, err
	}
	return &redirect, nil
}

type syncRefreshBody struct {
	LoginID        models.ID `json:"loginId"`
	OAuthReturnURL string    `json:"oAuthReturnUrl"`
}

// SyncRefresh asks upstream to fetch new data for a bank login. The returned
// URL points either at a wait page or at an error page.
func (c *Client) SyncRefresh(ctx context.Context, loginID, walletID models.ID) (*models.RedirectURL, error) {
	if err := requireID("login_id", loginID); err != nil {
		return nil, err
	}
	if err := requireID("wallet_id", walletID); err != nil {
		return nil, err
	}

	data, err := c.call(ctx, endpointSyncRefresh, nil, syncRefreshBody{
		LoginID:        loginID,
		OAuthReturnURL: fmt.Sprintf(syncReturnURLFormat, url.PathEscape(walletID.String())),
	})
	if err != nil {
		return nil, err
	}
	var redirect models.RedirectURL
	if err := decodeObject(endpointSyncRefresh, data, &redirect, "url"); err != nil {
		return nil, err
	}
	return &redirect, nil
}

type visibleAccount struct {
	ID        models.ID `json:"id"`
	IsVisible bool      `json:"isVisible"`
}

type chooseAccountsBody struct {
	Accounts []visibleAccount `json:"accounts"`
}

// ChooseBankAccounts marks which sub-accounts of a freshly connected bank are shown
func (c *Client) ChooseBankAccounts(ctx context.Context, accountIDs ...models.ID) error {
	if len(accountIDs) == 0 {
		return required("accounts")
	}
	body := chooseAccountsBody{Accounts: make([]visibleAccount, 0, len(accountIDs))}
	for _, id := range accountIDs {
		if err := requireID("accounts", id); err != nil {
			return err
		}
		body.Accounts = append(body.Accounts, visibleAccount{ID: id, IsVisible: true})
	}

	data, err := c.call(ctx, endpointVisibleAccounts, nil, body)
	if err != nil {
		return err
	}
	return decodeAck(endpointVisibleAccounts, data)
}
