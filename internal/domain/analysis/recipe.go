package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Recipe is the normalized record for a recipe suggestion.
type Recipe struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Time         string   `json:"time"`
	Calories     float64  `json:"calories"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	IsMock       bool     `json:"is_mock,omitempty"`
}

// DecodeRecipe parses and normalizes a sanitized model response.
func DecodeRecipe(data []byte) (*Recipe, error) {
	var r Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	if strings.TrimSpace(r.Name) == "" {
		return nil, fmt.Errorf("required field name is missing")
	}
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	return &r, nil
}
