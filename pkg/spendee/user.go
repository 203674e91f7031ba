package spendee

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Dan9191/spendee/pkg/models"
)

var (
	endpointUserRegistration = Endpoint{Method: http.MethodPost, Version: "v1.5", Path: "user-registration", Public: true, secret: true}
	endpointUserLogin        = Endpoint{Method: http.MethodPost, Version: "v1.4", Path: "user-login", Public: true, secret: true}
	endpointUserLogout       = Endpoint{Method: http.MethodPost, Version: "v1.4", Path: "user-logout"}
	endpointUserGetProfile   = Endpoint{Method: http.MethodPost, Version: "v1.4", Path: "user-get-profile", secret: true}
	endpointUserUpdate       = Endpoint{Method: http.MethodPost, Version: "v1.5", Path: "user-update-profile"}
	endpointUserCurrencies   = Endpoint{Method: http.MethodGet, Version: "v1.6", Path: "user-currencies"}
	endpointUserCategories   = Endpoint{Method: http.MethodGet, Version: "v1.6", Path: "get-all-user-categories"}
)

// RegisterRequest signs up a new user
type RegisterRequest struct {
	Email    string
	Password string
	// DeviceUUID defaults to a random UUID
	DeviceUUID string
	// CategoriesVersion defaults to 2
	CategoriesVersion int
	// WithoutCategories skips creating the default categories
	WithoutCategories bool
}

type registrationBody struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	CategoriesVersion int    `json:"categories_version"`
	WithCategories    bool   `json:"with_categories"`
	DeviceUUID        string `json:"device_uuid"`
}

// Register signs up a new user. It does not log the new user in.
func (c *Client) Register(ctx context.Context, r RegisterRequest) (*models.Profile, error) {
	email, err := emailAddress("email", r.Email)
	if err != nil {
		return nil, err
	}
	if r.Password == "" {
		return nil, required("password")
	}
	body := registrationBody{
		Email:             email,
		Password:          r.Password,
		CategoriesVersion: r.CategoriesVersion,
		WithCategories:    !r.WithoutCategories,
		DeviceUUID:        r.DeviceUUID,
	}
	if body.CategoriesVersion == 0 {
		body.CategoriesVersion = 2
	}
	if body.DeviceUUID == "" {
		body.DeviceUUID = c.deviceID()
	}

	data, err := c.call(ctx, endpointUserRegistration, nil, body)
	if err != nil {
		return nil, err
	}
	var profile models.Profile
	if err := decodeObject(endpointUserRegistration, data, &profile, "id", "email"); err != nil {
		return nil, err
	}

	c.log.Infof("User registered: %s", profile.Email)
	return &profile, nil
}

type loginBody struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	DeviceUUID string `json:"device_uuid"`
}

// Login exchanges credentials for an access token and makes it the current session
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	result, err := c.authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}
	c.session.set(result.Token)

	c.log.Infof("User logged in: %s", result.Profile.Email)
	return result, nil
}

// Refresh logs in again when the session is missing, expired or expires
// within the given window. The old token stays in place until the new one
// is obtained. It reports whether a new token was fetched.
func (c *Client) Refresh(ctx context.Context, creds models.Credentials, within time.Duration) (bool, error) {
	if c.session.Authenticated() {
		exp := c.session.ExpiresAt()
		if exp.IsZero() || c.now().Add(within).Before(exp) {
			return false, nil
		}
	}

	result, err := c.authenticate(ctx, creds)
	if err != nil {
		return false, err
	}
	c.session.set(result.Token)

	c.log.Infof("Session refreshed for %s", result.Profile.Email)
	return true, nil
}

func (c *Client) authenticate(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	email, err := emailAddress("email", creds.Email)
	if err != nil {
		return nil, err
	}
	if creds.Password == "" {
		return nil, required("password")
	}

	data, err := c.call(ctx, endpointUserLogin, nil, loginBody{
		Email:      email,
		Password:   creds.Password,
		DeviceUUID: c.deviceID(),
	})
	if err != nil {
		return nil, err
	}

	var result models.LoginResult
	if err := decodeObject(endpointUserLogin, data, &result, "token", "profile"); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, &DecodeError{Endpoint: endpointUserLogin.String(), Err: errors.New("empty token")}
	}
	return &result, nil
}

// Logout invalidates the token upstream and clears the session. The local
// session is cleared even when the upstream call fails or the token has
// already expired.
func (c *Client) Logout(ctx context.Context) error {
	data, err := c.call(ctx, endpointUserLogout, nil, nil)
	c.session.clear()
	if err != nil {
		return err
	}
	if err := decodeAck(endpointUserLogout, data); err != nil {
		return err
	}

	c.log.Info("User logged out")
	return nil
}

// GetProfile returns the profile of the logged in user
func (c *Client) GetProfile(ctx context.Context) (*models.Profile, error) {
	data, err := c.call(ctx, endpointUserGetProfile, nil, nil)
	if err != nil {
		return nil, err
	}
	var profile models.Profile
	if err := decodeObject(endpointUserGetProfile, data, &profile, "id", "email"); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfileRequest carries the full profile; upstream replaces every field
type UpdateProfileRequest struct {
	ID        models.ID
	Firstname string
	Lastname  string
	Email     string
	Gender    string
	BirthDate time.Time
	Currency  string
	Photo     string
	Language  models.Language
}

type updateProfileBody struct {
	ID        models.ID       `json:"id"`
	Firstname string          `json:"firstname"`
	Lastname  string          `json:"lastname"`
	Email     string          `json:"email"`
	Gender    string          `json:"gender"`
	BirthDate *string         `json:"birth_date"`
	Currency  string          `json:"currency"`
	Photo     string          `json:"photo"`
	Language  models.Language `json:"language"`
}

// UpdateProfile replaces the user profile
func (c *Client) UpdateProfile(ctx context.Context, r UpdateProfileRequest) (*models.ProfileUpdate, error) {
	if err := requireID("id", r.ID); err != nil {
		return nil, err
	}
	email, err := emailAddress("email", r.Email)
	if err != nil {
		return nil, err
	}
	body := updateProfileBody{
		ID:        r.ID,
		Firstname: r.Firstname,
		Lastname:  r.Lastname,
		Email:     email,
		Gender:    r.Gender,
		Photo:     r.Photo,
		Language:  r.Language,
	}
	if r.Currency != "" {
		if body.Currency, err = currencyCode("currency", r.Currency); err != nil {
			return nil, err
		}
	}
	if !r.BirthDate.IsZero() {
		d := r.BirthDate.Format(time.DateOnly)
		body.BirthDate = &d
	}

	data, err := c.call(ctx, endpointUserUpdate, nil, body)
	if err != nil {
		return nil, err
	}
	var update models.ProfileUpdate
	if err := decodeObject(endpointUserUpdate, data, &update, "photo"); err != nil {
		return nil, err
	}
	return &update, nil
}

// UserCurrencies returns the recently used currencies and the full list
func (c *Client) UserCurrencies(ctx context.Context) (*models.UserCurrencies, error) {
	data, err := c.call(ctx, endpointUserCurrencies, nil, nil)
	if err != nil {
		return nil, err
	}
	all, err := member(data, "all")
	if err == nil {
		err = requireFields(all, "currencies")
	}
	if err != nil {
		return nil, &DecodeError{Endpoint: endpointUserCurrencies.String(), Err: err}
	}
	var currencies models.UserCurrencies
	if err := decodeObject(endpointUserCurrencies, data, &currencies, "recent", "all"); err != nil {
		return nil, err
	}
	return &currencies, nil
}

// UserCategories returns every category the user defined, across wallets
func (c *Client) UserCategories(ctx context.Context) ([]models.Category, error) {
	data, err := c.call(ctx, endpointUserCategories, nil, nil)
	if err != nil {
		return nil, err
	}
	var categories []models.Category
	if err := decodeList(endpointUserCategories, data, &categories, "id", "name"); err != nil {
		return nil, err
	}
	return categories, nil
}
