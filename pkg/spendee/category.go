package spendee

import (
	"context"
	"net/http"
	"regexp"

	"github.com/Dan9191/spendee/pkg/models"
)

var (
	endpointCategoryCreate = Endpoint{Method: http.MethodPost, Version: "v1.4", Path: "wallet-create-category"}
	endpointCategoryUpdate = Endpoint{Method: http.MethodPost, Version: "v1.4", Path: "wallet-update-category"}
	endpointCategoryDelete = Endpoint{Method: http.MethodPost, Version: "v1", Path: "wallet-delete-category"}
)

const (
	CategoryExpense = "expense"
	CategoryIncome  = "income"

	defaultCategoryColor = "#f5534b"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// CreateCategoryRequest describes a new category. Zero values get the
// upstream web app's defaults: image 1, position 1, red, active expense.
type CreateCategoryRequest struct {
	Name     string
	WalletID models.ID
	ImageID  int
	Hidden   bool
	Position int
	Color    string
	Status   string
	Type     string
}

type createCategoryBody struct {
	Name            string                  `json:"name"`
	Type            string                  `json:"type"`
	ImageID         int                     `json:"image_id"`
	Color           string                  `json:"color"`
	Status          string                  `json:"status"`
	WalletsSettings []createCategorySetting `json:"wallets_settings"`
}

type createCategorySetting struct {
	WalletID models.ID `json:"wallet_id"`
	Visible  int       `json:"visible"`
	Position int       `json:"position"`
}

// CreateCategory creates a category in a wallet
func (c *Client) CreateCategory(ctx context.Context, r CreateCategoryRequest) (*models.Category, error) {
	name, err := requireName("name", r.Name)
	if err != nil {
		return nil, err
	}
	if err := requireID("wallet_id", r.WalletID); err != nil {
		return nil, err
	}
	body := createCategoryBody{
		Name:    name,
		Type:    r.Type,
		ImageID: r.ImageID,
		Color:   r.Color,
		Status:  r.Status,
		WalletsSettings: []createCategorySetting{{
			WalletID: r.WalletID,
			Visible:  flag(!r.Hidden),
			Position: r.Position,
		}},
	}
	if body.Type == "" {
		body.Type = CategoryExpense
	}
	if body.Type != CategoryExpense && body.Type != CategoryIncome {
		return nil, &ValidationError{Field: "type", Reason: "must be expense or income"}
	}
	if body.ImageID == 0 {
		body.ImageID = 1
	}
	if body.Status == "" {
		body.Status = "active"
	}
	if body.WalletsSettings[0].Position == 0 {
		body.WalletsSettings[0].Position = 1
	}
	if body.Color, err = categoryColor(r.Color); err != nil {
		return nil, err
	}

	data, err := c.call(ctx, endpointCategoryCreate, nil, body)
	if err != nil {
		return nil, err
	}
	var category models.Category
	if err := decodeMember(endpointCategoryCreate, data, "category", &category, "id", "name"); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategoryRequest replaces the settings of a category in one wallet
type UpdateCategoryRequest struct {
	ID       models.ID
	WalletID models.ID
	Name     string
	Hidden   bool
	Color    string
	Position int
	ImageID  int
}

type updateCategoryBody struct {
	ID              models.ID               `json:"id"`
	WalletID        models.ID               `json:"wallet_id"`
	Name            string                  `json:"name"`
	ImageID         int                     `json:"image_id"`
	Color           string                  `json:"color"`
	WalletsSettings []updateCategorySetting `json:"wallets_settings"`
}

// This endpoint takes visible as a boolean, unlike category creation.
type updateCategorySetting struct {
	Position int       `json:"position"`
	Visible  bool      `json:"visible"`
	WalletID models.ID `json:"wallet_id"`
}

// UpdateCategory changes a category
func (c *Client) UpdateCategory(ctx context.Context, r UpdateCategoryRequest) error {
	if err := requireID("id", r.ID); err != nil {
		return err
	}
	if err := requireID("wallet_id", r.WalletID); err != nil {
		return err
	}
	name, err := requireName("name", r.Name)
	if err != nil {
		return err
	}
	color, err := categoryColor(r.Color)
	if err != nil {
		return err
	}
	body := updateCategoryBody{
		ID:       r.ID,
		WalletID: r.WalletID,
		Name:     name,
		ImageID:  r.ImageID,
		Color:    color,
		WalletsSettings: []updateCategorySetting{{
			Position: r.Position,
			Visible:  !r.Hidden,
			WalletID: r.WalletID,
		}},
	}
	if body.ImageID == 0 {
		body.ImageID = 1
	}
	if body.WalletsSettings[0].Position == 0 {
		body.WalletsSettings[0].Position = 1
	}

	data, err := c.call(ctx, endpointCategoryUpdate, nil, body)
	if err != nil {
		return err
	}
	return decodeAck(endpointCategoryUpdate, data)
}

type categoryIDBody struct {
	CategoryID models.ID `json:"category_id"`
}

// DeleteCategory deletes a category
func (c *Client) DeleteCategory(ctx context.Context, categoryID models.ID) error {
	if err := requireID("category_id", categoryID); err != nil {
		return err
	}
	data, err := c.call(ctx, endpointCategoryDelete, nil, categoryIDBody{CategoryID: categoryID})
	if err != nil {
		return err
	}
	return decodeAck(endpointCategoryDelete, data)
}

func categoryColor(color string) (string, error) {
	if color == "" {
		return defaultCategoryColor, nil
	}
	if !hexColor.MatchString(color) {
		return "", &ValidationError{Field: "color", Reason: "must be a #rrggbb hex color"}
	}
	return color, nil
}
