package spendee

import (
	"encoding/json"
	"net/mail"
	"strings"

	"github.com/Dan9191/spendee/pkg/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// currencyCode validates an ISO 4217 code and returns it upper-cased
func currencyCode(field, code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", required(field)
	}
	if _, err := currency.ParseISO(code); err != nil {
		return "", &ValidationError{Field: field, Reason: "not an ISO 4217 currency code"}
	}
	return code, nil
}

// countryCode validates an ISO 3166-1 alpha-2 code and returns it upper-cased
func countryCode(field, code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", required(field)
	}
	region, err := language.ParseRegion(code)
	if err != nil || len(code) != 2 || !region.IsCountry() {
		return "", &ValidationError{Field: field, Reason: "not an ISO 3166 country code"}
	}
	return code, nil
}

func emailAddress(field, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", required(field)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", &ValidationError{Field: field, Reason: "not an email address"}
	}
	return email, nil
}

func emailList(field string, emails []string) ([]string, error) {
	if len(emails) == 0 {
		return nil, required(field)
	}
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		addr, err := emailAddress(field, e)
		if err != nil {
			return nil, err
		}
		out = append(out, addr)
	}
	return out, nil
}

func requireID(field string, id models.ID) error {
	if id.IsZero() {
		return required(field)
	}
	return nil
}

func requireName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", required(field)
	}
	return name, nil
}

// number renders a decimal as a bare JSON number
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

func ids(in []models.ID) []models.ID {
	if in == nil {
		return []models.ID{}
	}
	return in
}
