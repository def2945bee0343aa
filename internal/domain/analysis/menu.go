package analysis

import (
	"encoding/json"
	"fmt"
)

// RecommendedItem is a menu item that fits the user's goals.
type RecommendedItem struct {
	Name       string  `json:"name"`
	Reason     string  `json:"reason"`
	MatchScore float64 `json:"match_score"`
}

// AvoidItem is a menu item the user should skip.
type AvoidItem struct {
	Name         string `json:"name"`
	Reason       string `json:"reason"`
	WarningLevel string `json:"warning_level"`
}

// MenuScan is the normalized record for a scanned restaurant menu.
type MenuScan struct {
	RecommendedItems []RecommendedItem `json:"recommended_items"`
	AvoidItems       []AvoidItem       `json:"avoid_items"`
	IsMock           bool              `json:"is_mock,omitempty"`
}

// DecodeMenuScan parses and normalizes a sanitized model response.
func DecodeMenuScan(data []byte) (*MenuScan, error) {
	var m MenuScan
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.RecommendedItems == nil {
		return nil, fmt.Errorf("required field recommended_items is missing")
	}
	if m.AvoidItems == nil {
		m.AvoidItems = []AvoidItem{}
	}
	return &m, nil
}
