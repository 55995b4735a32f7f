package catalog

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
)

const (
	FoodTypeGeneric = "GENERIC"
	FoodTypeBranded = "BRANDED"

	// maxHints bounds how many branded hints are considered per search.
	maxHints = 15

	gramMeasureURI = "http://www.edamam.com/ontologies/edamam.owl#Measure_gram"
)

type Food struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Type  string `json:"type"`
}

// Nutrients are totals for a given quantity of a food. Name is only set by
// barcode lookups.
type Nutrients struct {
	Name          string  `json:"name,omitempty"`
	Energy        float64 `json:"energy"`
	Proteins      float64 `json:"proteins"`
	Carbohydrates float64 `json:"carbohydrates"`
	Sugars        float64 `json:"sugars"`
	Lipids        float64 `json:"lipids"`
	SaturatedFats float64 `json:"saturated_fats"`
	Fiber         float64 `json:"fiber"`
	Salt          float64 `json:"salt"`
}

type EdamamClient struct {
	appID        string
	appKey       string
	parserURL    string
	nutrientsURL string
	http         *http.Client
}

func NewEdamamClient(appID, appKey, parserURL, nutrientsURL string, client *http.Client) *EdamamClient {
	return &EdamamClient{
		appID:        appID,
		appKey:       appKey,
		parserURL:    parserURL,
		nutrientsURL: nutrientsURL,
		http:         client,
	}
}

type edamamFood struct {
	FoodID string `json:"foodId"`
	Label  string `json:"label"`
	Image  string `json:"image"`
}

type parserResponse struct {
	Parsed []struct {
		Food edamamFood `json:"food"`
	} `json:"parsed"`
	Hints []struct {
		Food edamamFood `json:"food"`
	} `json:"hints"`
}

// Search returns exact matches first, then up to maxHints branded hints.
// Foods without an image are skipped.
func (c *EdamamClient) Search(ctx context.Context, query string) ([]Food, error) {
	q := url.Values{}
	q.Set("app_id", c.appID)
	q.Set("app_key", c.appKey)
	q.Set("ingr", query)
	q.Set("nutrition-type", "logging")

	var pr parserResponse
	if err := doJSON(ctx, c.http, http.MethodGet, c.parserURL+"?"+q.Encode(), nil, &pr); err != nil {
		return nil, fmt.Errorf("edamam search: %w", err)
	}

	out := make([]Food, 0, len(pr.Parsed)+maxHints)
	for _, p := range pr.Parsed {
		if p.Food.Image == "" {
			continue
		}
		out = append(out, Food{Code: p.Food.FoodID, Name: p.Food.Label, Image: p.Food.Image, Type: FoodTypeGeneric})
	}

	hints := pr.Hints
	if len(hints) > maxHints {
		hints = hints[:maxHints]
	}
	for _, h := range hints {
		if h.Food.Image == "" {
			continue
		}
		out = append(out, Food{Code: h.Food.FoodID, Name: h.Food.Label, Image: h.Food.Image, Type: FoodTypeBranded})
	}

	return out, nil
}

type nutrientsRequest struct {
	Ingredients []nutrientsIngredient `json:"ingredients"`
}

type nutrientsIngredient struct {
	Quantity   float64 `json:"quantity"`
	MeasureURI string  `json:"measureURI"`
	FoodID     string  `json:"foodId"`
}

type nutrientsResponse struct {
	TotalNutrients map[string]struct {
		Quantity float64 `json:"quantity"`
	} `json:"totalNutrients"`
}

// Nutrients returns totals for grams of the food identified by code. It
// returns ErrNotFound when the provider has no nutrient data for it.
func (c *EdamamClient) Nutrients(ctx context.Context, code string, grams float64) (*Nutrients, error) {
	q := url.Values{}
	q.Set("app_id", c.appID)
	q.Set("app_key", c.appKey)

	payload := nutrientsRequest{
		Ingredients: []nutrientsIngredient{{
			Quantity:   grams,
			MeasureURI: gramMeasureURI,
			FoodID:     code,
		}},
	}

	var nr nutrientsResponse
	if err := doJSON(ctx, c.http, http.MethodPost, c.nutrientsURL+"?"+q.Encode(), payload, &nr); err != nil {
		return nil, fmt.Errorf("edamam nutrients: %w", err)
	}
	if len(nr.TotalNutrients) == 0 {
		return nil, ErrNotFound
	}

	get := func(k string) float64 { return nr.TotalNutrients[k].Quantity }

	// sodium mg -> salt g
	salt := get("NA") * 2.5 / 1000

	return &Nutrients{
		Energy:        round(get("ENERC_KCAL"), 1),
		Proteins:      round(get("PROCNT"), 1),
		Carbohydrates: round(get("CHOCDF"), 1),
		Sugars:        round(get("SUGAR"), 1),
		Lipids:        round(get("FAT"), 1),
		SaturatedFats: round(get("FASAT"), 1),
		Fiber:         round(get("FIBTG"), 1),
		Salt:          round(salt, 2),
	}, nil
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
