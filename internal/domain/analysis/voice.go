package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// VoiceFoodLog is the normalized record for a spoken/typed food description.
type VoiceFoodLog struct {
	FoodName      string   `json:"food_name"`
	TotalCalories float64  `json:"total_calories"`
	TotalProtein  float64  `json:"total_protein"`
	TotalCarbs    float64  `json:"total_carbs"`
	TotalFat      float64  `json:"total_fat"`
	HealthScore   float64  `json:"health_score"`
	GlycemicLoad  string   `json:"glycemic_load"`
	Ingredients   []string `json:"ingredients"`
	Warnings      []string `json:"warnings"`
	IsMock        bool     `json:"is_mock,omitempty"`
}

// DecodeVoiceFoodLog parses and normalizes a sanitized model response.
// food_name is the only required field; numeric fields default to zero.
func DecodeVoiceFoodLog(data []byte) (*VoiceFoodLog, error) {
	var v VoiceFoodLog
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if strings.TrimSpace(v.FoodName) == "" {
		return nil, fmt.Errorf("required field food_name is missing")
	}
	if v.Ingredients == nil {
		v.Ingredients = []string{}
	}
	if v.Warnings == nil {
		v.Warnings = []string{}
	}
	return &v, nil
}

// CommandAction is the routing decision for a voice command.
type CommandAction string

const (
	ActionNavigate      CommandAction = "NAVIGATE"
	ActionLogFood       CommandAction = "LOG_FOOD"
	ActionQueryData     CommandAction = "QUERY_DATA"
	ActionStartWorkflow CommandAction = "START_WORKFLOW"
	ActionChat          CommandAction = "CHAT"
)

func (a CommandAction) Valid() bool {
	switch a {
	case ActionNavigate, ActionLogFood, ActionQueryData, ActionStartWorkflow, ActionChat:
		return true
	}
	return false
}

// CommandPayload holds the action-specific parameters; only the fields for
// the chosen action are populated.
type CommandPayload struct {
	Destination string   `json:"destination,omitempty"`
	FoodItems   []string `json:"food_items,omitempty"`
	QueryType   string   `json:"query_type,omitempty"`
	Workflow    string   `json:"workflow,omitempty"`
}

// VoiceCommand is the normalized record for a routed voice transcript.
type VoiceCommand struct {
	Action         CommandAction  `json:"action"`
	Payload        CommandPayload `json:"payload"`
	SpeechResponse string         `json:"speech_response"`
	IsMock         bool           `json:"is_mock,omitempty"`
}

// DecodeVoiceCommand parses and normalizes a sanitized model response.
func DecodeVoiceCommand(data []byte) (*VoiceCommand, error) {
	var v VoiceCommand
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if !v.Action.Valid() {
		return nil, fmt.Errorf("unknown action %q", v.Action)
	}
	return &v, nil
}
