package spendee_test

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Dan9191/spendee/pkg/config"
	"github.com/Dan9191/spendee/pkg/models"
	"github.com/Dan9191/spendee/pkg/spendee"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var creds = models.Credentials{Email: "fry@planetexpress.com", Password: "slurm"}

const loginResponse = `{"token": "` + testToken + `", "profile": {"id": 999999, "email": "fry@planetexpress.com", "firstname": "Phillip J."}}`

func TestNewClientRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.BaseURL = "not a url"

	_, err := spendee.NewClient(cfg, nil)
	assert.Error(t, err)
}

func TestLoginAttachesTokenToNextRequest(t *testing.T) {
	u := newUpstream(t)
	u.reply(http.MethodPost, "/v1.4/user-login", http.StatusOK, success(loginResponse))
	u.reply(http.MethodPost, "/v1.4/user-get-profile", http.StatusOK, success(`{"id": 999999, "email": "fry@planetexpress.com"}`))
	c, _ := newClient(t, u)

	result, err := c.Login(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, testToken, result.Token)
	assert.Equal(t, models.ID("999999"), result.Profile.ID)

	login := u.last(t)
	assert.Empty(t, login.Header.Get("Authorization"))
	assert.Equal(t, map[string]any{
		"email":       "fry@planetexpress.com",
		"password":    "slurm",
		"device_uuid": "device-1",
	}, bodyOf(t, login))

	_, err = c.GetProfile(context.Background())
	require.NoError(t, err)

	next := u.last(t)
	assert.Equal(t, "Bearer "+testToken, next.Header.Get("Authorization"))
	assert.Equal(t, testToken, next.Header.Get("api-uuid"))
}

func TestAuthenticatedCallWithoutLoginSendsNothing(t *testing.T) {
	u := newUpstream(t)
	c, _ := newClient(t, u)

	_, err := c.Wallets(context.Background())
	assert.ErrorIs(t, err, spendee.ErrNotAuthenticated)

	err = c.DeleteWallet(context.Background(), "1")
	assert.ErrorIs(t, err, spendee.ErrNotAuthenticated)

	err = c.Logout(context.Background())
	assert.ErrorIs(t, err, spendee.ErrNotAuthenticated)

	assert.Equal(t, 0, u.calls())
}

func TestLogoutClearsSession(t *testing.T) {
	u := newUpstream(t)
	u.reply(http.MethodPost, "/v1.4/user-logout", http.StatusOK, success(`true`))
	c := loggedIn(t, u)

	require.NoError(t, c.Logout(context.Background()))
	assert.False(t, c.Session().Authenticated())

	calls := u.calls()
	_, err := c.Budgets(context.Background())
	assert.ErrorIs(t, err, spendee.ErrNotAuthenticated)
	assert.Equal(t, calls, u.calls())
}

func TestLogoutClearsSessionWhenUpstreamFails(t *testing.T) {
	u := newUpstream(t)
	u.reply(http.MethodPost, "/v1.4/user-logout", http.StatusBadGateway, `upstream down`)
	c := loggedIn(t, u)

	err := c.Logout(context.Background())
	var apiErr *spendee.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.False(t, c.Session().Authenticated())
}

func TestServerErrorSurfacesPayloadVerbatim(t *testing.T) {
	payload := `{"error": {"code": 17, "message": "Something broke"}, "debug": [1, 2, 3]}`
	u := newUpstream(t)
	u.reply(http.MethodPost, "/v1/wallet-get-all", http.StatusInternalServerError, payload)
	c := loggedIn(t, u)

	_, err := c.Wallets(context.Background())

	var apiErr *spendee.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, payload, string(apiErr.Payload))
	assert.Equal(t, "Something broke", apiErr.Message)
	assert.Equal(t, "v1/wallet-get-all", apiErr.Endpoint)
}

func TestEnvelopeFailureIsAnAPIError(t *testing.T) {
	payload := `{"result": null, "status": "ERROR", "error": {"message": "Wallet not found"}}`
	u := newUpstream(t)
	u.reply(http.MethodPost, "/v1/wallet-delete", http.StatusOK, payload)
	c := loggedIn(t, u)

	err := c.DeleteWallet(context.Background(), "42")

	var apiErr *spendee.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusOK, apiErr.StatusCode)
	assert.Equal(t, "Wallet not found", apiErr.Message)
	assert.Equal(t, payload, string(apiErr.Payload))
}

func TestInvalidJSONIsADecodeError(t *testing.T) {
	u := newUpstream(t)
	u.reply(http.MethodGet, "/v1.7/get-budgets", http.StatusOK, `<html>maintenance</html>`)
	c := loggedIn(t, u)

	_, err := c.Budgets(context.Background())

	var decodeErr *spendee.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "v1.7/get-budgets", decodeErr.Endpoint)
}

func TestNetworkFailureIsANetworkError(t *testing.T) {
	u := newUpstream(t)
	c := loggedIn(t, u)
	u.server.Close()

	_, err := c.Wallets(context.Background())

	var netErr *spendee.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "v1/wallet-get-all", netErr.Endpoint)
}

func TestCancelledContextIsANetworkError(t *testing.T) {
	u := newUpstream(t)
	c := loggedIn(t, u)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Wallets(ctx)

	var netErr *spendee.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultQueryParameters(t *testing.T) {
	u := newUpstream(t)
	u.reply(http.MethodPost, "/v2/countries", http.StatusOK, success(`{"countries": []}`))
	c, _ := newClient(t, u)

	_, err := c.Countries(context.Background())
	require.NoError(t, err)

	req := u.last(t)
	assert.Equal(t, "master", req.Query.Get("clientVersion"))
	assert.Equal(t, "WEB", req.Query.Get("clientPlatform"))
}

func TestLoginRequiresToken(t *testing.T) {
	u := newUpstream(t)
	u.reply(http.MethodPost, "/v1.4/user-login", http.StatusOK, success(`{"profile": {"id": 1, "email": "fry@planetexpress.com"}}`))
	c, _ := newClient(t, u)

	_, err := c.Login(context.Background(), creds)

	var decodeErr *spendee.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.False(t, c.Session().Authenticated())
}

func TestLoginValidatesCredentials(t *testing.T) {
	u := newUpstream(t)
	c, _ := newClient(t, u)

	_, err := c.Login(context.Background(), models.Credentials{Email: "not-an-email", Password: "x"})
	var validationErr *spendee.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "email", validationErr.Field)

	_, err = c.Login(context.Background(), models.Credentials{Email: "fry@planetexpress.com"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "password", validationErr.Field)

	assert.Equal(t, 0, u.calls())
}

func TestLoginDoesNotLogSecrets(t *testing.T) {
	u := newUpstream(t)
	u.reply(http.MethodPost, "/v1.4/user-login", http.StatusOK, success(loginResponse))
	c, hook := newClient(t, u)

	_, err := c.Login(context.Background(), creds)
	require.NoError(t, err)

	require.NotEmpty(t, hook.AllEntries())
	for _, entry := range hook.AllEntries() {
		line, err := entry.String()
		require.NoError(t, err)
		assert.False(t, strings.Contains(line, testToken), "token leaked into log: %s", line)
		assert.False(t, strings.Contains(line, "slurm"), "password leaked into log: %s", line)
	}
}

func TestGetProfileDoesNotLogToken(t *testing.T) {
	u := newUpstream(t)
	u.reply(http.MethodPost, "/v1.4/user-get-profile", http.StatusOK,
		success(`{"id": 999999, "email": "fry@planetexpress.com", "api_uuid": "`+testToken+`"}`))
	c, hook := newClient(t, u)
	c.Session().Restore(testToken)

	profile, err := c.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testToken, profile.APIUUID)

	require.NotEmpty(t, hook.AllEntries())
	for _, entry := range hook.AllEntries() {
		line, err := entry.String()
		require.NoError(t, err)
		assert.False(t, strings.Contains(line, testToken), "token leaked into log: %s", line)
	}
}

func TestPublicEndpointCarriesTokenWhenLoggedIn(t *testing.T) {
	u := newUpstream(t)
	u.reply(http.MethodPost, "/v2/countries", http.StatusOK, success(`{"countries": [{"code": "ZM", "name": "Zambia"}]}`))
	c := loggedIn(t, u)

	_, err := c.Countries(context.Background())
	require.NoError(t, err)

	req := u.last(t)
	assert.Equal(t, "Bearer "+testToken, req.Header.Get("Authorization"))
	assert.Equal(t, testToken, req.Header.Get("api-uuid"))
}

func TestLoginWhileLoggedInSendsNoToken(t *testing.T) {
	u := newUpstream(t)
	u.reply(http.MethodPost, "/v1.4/user-login", http.StatusOK, success(loginResponse))
	c := loggedIn(t, u)

	_, err := c.Login(context.Background(), creds)
	require.NoError(t, err)

	req := u.last(t)
	assert.Empty(t, req.Header.Get("Authorization"))
	assert.Empty(t, req.Header.Get("api-uuid"))
}

func TestUnencodableBodyIsAValidationError(t *testing.T) {
	u := newUpstream(t)
	c := loggedIn(t, u)

	_, err := c.Request(context.Background(), spendee.Endpoint{
		Method:  http.MethodPost,
		Version: "v1.6",
		Path:    "some-new-endpoint",
	}, nil, map[string]any{"amount": make(chan int)})

	var validationErr *spendee.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "body", validationErr.Field)
	assert.Equal(t, 0, u.calls())
}

func signedToken(t *testing.T, expires time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "999999",
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	s, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func TestExpiredTokenIsRejectedLocally(t *testing.T) {
	now := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	token := signedToken(t, now.Add(time.Minute))

	u := newUpstream(t)
	u.reply(http.MethodPost, "/v1.4/user-login", http.StatusOK, success(`{"token": "`+token+`", "profile": {"id": 1, "email": "fry@planetexpress.com"}}`))
	c, _ := newClient(t, u, spendee.WithClock(clock))

	_, err := c.Login(context.Background(), creds)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(time.Minute), c.Session().ExpiresAt(), 0)
	assert.True(t, c.Session().Authenticated())

	now = now.Add(2 * time.Minute)
	calls := u.calls()

	_, err = c.Wallets(context.Background())
	assert.ErrorIs(t, err, spendee.ErrNotAuthenticated)
	assert.Equal(t, calls, u.calls())
}

func TestLogoutDropsExpiredSession(t *testing.T) {
	now := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	u := newUpstream(t)
	c := loggedIn(t, u, spendee.WithClock(func() time.Time { return now }))
	c.Session().Restore(signedToken(t, now.Add(time.Minute)))

	now = now.Add(2 * time.Minute)

	err := c.Logout(context.Background())
	assert.ErrorIs(t, err, spendee.ErrNotAuthenticated)
	assert.True(t, c.Session().IssuedAt().IsZero())
	assert.True(t, c.Session().ExpiresAt().IsZero())
	assert.Equal(t, 0, u.calls())
}

func TestSessionTTLAppliesToOpaqueTokens(t *testing.T) {
	now := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	u := newUpstream(t)

	cfg := config.Default()
	cfg.BaseURL = u.server.URL
	cfg.SessionTTL = time.Hour
	c, err := spendee.NewClient(cfg, nil, spendee.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	c.Session().Restore(testToken)
	assert.WithinDuration(t, now, c.Session().IssuedAt(), 0)
	assert.WithinDuration(t, now.Add(time.Hour), c.Session().ExpiresAt(), 0)

	now = now.Add(time.Hour)
	_, err = c.Session().Token()
	assert.ErrorIs(t, err, spendee.ErrNotAuthenticated)
}

func TestRestoreEmptyTokenClearsSession(t *testing.T) {
	u := newUpstream(t)
	c := loggedIn(t, u)

	c.Session().Restore("")
	assert.False(t, c.Session().Authenticated())
	assert.True(t, c.Session().IssuedAt().IsZero())
}

func TestRefresh(t *testing.T) {
	now := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	fresh := signedToken(t, now.Add(24*time.Hour))

	u := newUpstream(t)
	u.reply(http.MethodPost, "/v1.4/user-login", http.StatusOK, success(`{"token": "`+fresh+`", "profile": {"id": 1, "email": "fry@planetexpress.com"}}`))
	c, _ := newClient(t, u, spendee.WithClock(func() time.Time { return now }))

	// No session yet
	refreshed, err := c.Refresh(context.Background(), creds, time.Hour)
	require.NoError(t, err)
	assert.True(t, refreshed)

	// Far from expiry
	refreshed, err = c.Refresh(context.Background(), creds, time.Hour)
	require.NoError(t, err)
	assert.False(t, refreshed)
	assert.Equal(t, 1, u.calls())

	// Inside the window
	refreshed, err = c.Refresh(context.Background(), creds, 25*time.Hour)
	require.NoError(t, err)
	assert.True(t, refreshed)
	assert.Equal(t, 2, u.calls())
}

func TestRefreshKeepsOldTokenOnFailure(t *testing.T) {
	u := newUpstream(t)
	u.reply(http.MethodPost, "/v1.4/user-login", http.StatusUnauthorized, `{"error": {"message": "Invalid credentials"}}`)
	c := loggedIn(t, u)

	c.Session().Restore(signedToken(t, time.Now().Add(time.Minute)))
	before, err := c.Session().Token()
	require.NoError(t, err)

	_, err = c.Refresh(context.Background(), creds, time.Hour)
	require.Error(t, err)

	after, err := c.Session().Token()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSessionsAreIndependent(t *testing.T) {
	u := newUpstream(t)
	u.reply(http.MethodGet, "/v1.7/get-budgets", http.StatusOK, success(`{"budgets": []}`))
	a := loggedIn(t, u)
	b, _ := newClient(t, u)
	b.Session().Restore("other-token")

	_, err := a.Budgets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+testToken, u.last(t).Header.Get("Authorization"))

	_, err = b.Budgets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer other-token", u.last(t).Header.Get("Authorization"))
}

func TestConcurrentTokenReads(t *testing.T) {
	u := newUpstream(t)
	c := loggedIn(t, u)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if token, err := c.Session().Token(); err == nil {
					assert.NotEmpty(t, token)
				}
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Session().Restore(testToken)
			}
		}()
	}
	wg.Wait()
}

func TestRawRequest(t *testing.T) {
	u := newUpstream(t)
	u.reply(http.MethodGet, "/v1.6/some-new-endpoint", http.StatusOK, success(`{"hello": "world"}`))
	c := loggedIn(t, u)

	resp, err := c.Request(context.Background(), spendee.Endpoint{
		Method:  http.MethodGet,
		Version: "v1.6",
		Path:    "some-new-endpoint",
	}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"hello": "world"}`, string(resp.Result))
}
