package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type OpenFoodFactsClient struct {
	baseURL string
	http    *http.Client
}

func NewOpenFoodFactsClient(baseURL string, client *http.Client) *OpenFoodFactsClient {
	return &OpenFoodFactsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
	}
}

type productResponse struct {
	Status  int `json:"status"`
	Product *struct {
		ProductName string `json:"product_name"`
		Nutriments  struct {
			Energy        float64 `json:"energy-kcal_100g"`
			Proteins      float64 `json:"proteins_100g"`
			Carbohydrates float64 `json:"carbohydrates_100g"`
			Sugars        float64 `json:"sugars_100g"`
			Fat           float64 `json:"fat_100g"`
			SaturatedFat  float64 `json:"saturated-fat_100g"`
			Fiber         float64 `json:"fiber_100g"`
			Salt          float64 `json:"salt_100g"`
		} `json:"nutriments"`
	} `json:"product"`
}

// Product looks up a barcode and returns its nutrients per 100g.
func (c *OpenFoodFactsClient) Product(ctx context.Context, barcode string) (*Nutrients, error) {
	u := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL, url.PathEscape(barcode))

	var pr productResponse
	if err := doJSON(ctx, c.http, http.MethodGet, u, nil, &pr); err != nil {
		return nil, fmt.Errorf("openfoodfacts product: %w", err)
	}
	if pr.Product == nil {
		return nil, ErrNotFound
	}

	p := pr.Product
	name := p.ProductName
	if name == "" {
		name = "Unknown"
	}

	return &Nutrients{
		Name:          name,
		Energy:        p.Nutriments.Energy,
		Proteins:      p.Nutriments.Proteins,
		Carbohydrates: p.Nutriments.Carbohydrates,
		Sugars:        p.Nutriments.Sugars,
		Lipids:        p.Nutriments.Fat,
		SaturatedFats: p.Nutriments.SaturatedFat,
		Fiber:         p.Nutriments.Fiber,
		Salt:          p.Nutriments.Salt,
	}, nil
}
