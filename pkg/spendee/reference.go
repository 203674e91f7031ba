package spendee

import (
	"context"
	"net/http"

	"github.com/Dan9191/spendee/pkg/models"
)

var (
	endpointCountries        = Endpoint{Method: http.MethodPost, Version: "v2", Path: "countries", Public: true}
	endpointCategoryImageIDs = Endpoint{Method: http.MethodPost, Version: "v1.3", Path: "category-image-ids"}
)

// Countries lists the countries Spendee knows. No session needed.
func (c *Client) Countries(ctx context.Context) ([]models.Country, error) {
	data, err := c.call(ctx, endpointCountries, nil, nil)
	if err != nil {
		return nil, err
	}
	var countries []models.Country
	if err := decodeMemberList(endpointCountries, data, "countries", &countries, "code", "name"); err != nil {
		return nil, err
	}
	return countries, nil
}

// CategoryImageIDs lists the IDs usable as category icons
func (c *Client) CategoryImageIDs(ctx context.Context) ([]int, error) {
	data, err := c.call(ctx, endpointCategoryImageIDs, nil, nil)
	if err != nil {
		return nil, err
	}
	var imageIDs []int
	if err := decodeList(endpointCategoryImageIDs, data, &imageIDs); err != nil {
		return nil, err
	}
	return imageIDs, nil
}
