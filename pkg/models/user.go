package models

// Credentials are the login input. The client forwards them and never keeps them.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile represents a Spendee user profile
type Profile struct {
	ID                ID              `json:"id"`
	UUID              string          `json:"uuid"`
	Email             string          `json:"email"`
	Firstname         string          `json:"firstname"`
	Lastname          string          `json:"lastname"`
	Nickname          string          `json:"nickname"`
	TimezoneID        *string         `json:"timezone_id"`
	Gender            *string         `json:"gender"`
	BirthDate         *string         `json:"birth_date"`
	Photo             *string         `json:"photo"`
	CohortDate        string          `json:"cohort_date"`
	CategoriesVersion int             `json:"categories_version"`
	ReferralCode      string          `json:"referral_code"`
	Type              string          `json:"type"`
	PremiumExpiration *string         `json:"premium_expiration"`
	GlobalCurrency    *string         `json:"global_currency"`
	ViewedDialogs     map[string]bool `json:"viewed_dialogs"`

	// APIUUID is the legacy auth token some profile responses still carry
	APIUUID           string `json:"api_uuid,omitempty"`
	TransactionsCount int    `json:"transactions_count,omitempty"`
}

// LoginResult is what a successful login yields
type LoginResult struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}

// ProfileUpdate is the result of a profile update
type ProfileUpdate struct {
	Photo *string `json:"photo"`
}

// Language is a UI language as the profile endpoint expects it
type Language struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
