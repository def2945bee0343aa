package openfoodfacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://world.openfoodfacts.org"

// ErrNotFound means the barcode is unknown to OpenFoodFacts.
var ErrNotFound = errors.New("product not found")

// Client looks up packaged products by barcode.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
	}
}

// Product is the nutrition summary per 100g, mapped to the app's fields.
type Product struct {
	ProductName string  `json:"product_name"`
	Brand       string  `json:"brand,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	HealthScore float64 `json:"health_score"`
	ServingSize string  `json:"serving_size,omitempty"`
}

type productResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string             `json:"product_name"`
		Brands      string             `json:"brands"`
		ImageURL    string             `json:"image_url"`
		ServingSize string             `json:"serving_size"`
		Nutriments  map[string]float64 `json:"nutriments"`
	} `json:"product"`
}

// Lookup fetches a product by barcode.
func (c *Client) Lookup(ctx context.Context, code string) (*Product, error) {
	url := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("barcode lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openfoodfacts returned %d", resp.StatusCode)
	}

	var out productResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.Status == 0 {
		return nil, ErrNotFound
	}

	n := out.Product.Nutriments
	// rough estimate, same heuristic the mobile app used
	score := 100 - n["sugars_100g"]*2
	if score < 0 {
		score = 0
	}

	return &Product{
		ProductName: out.Product.ProductName,
		Brand:       out.Product.Brands,
		ImageURL:    out.Product.ImageURL,
		Calories:    n["energy-kcal_100g"],
		Protein:     n["proteins_100g"],
		Carbs:       n["carbohydrates_100g"],
		Fat:         n["fat_100g"],
		HealthScore: score,
		ServingSize: out.Product.ServingSize,
	}, nil
}
