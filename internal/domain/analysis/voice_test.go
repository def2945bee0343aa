package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeVoiceFoodLog(t *testing.T) {
	t.Run("FoodNameIsRequired", func(t *testing.T) {
		_, err := DecodeVoiceFoodLog([]byte(`{"total_calories": 300}`))
		require.Error(t, err)

		_, err = DecodeVoiceFoodLog([]byte(`{"food_name": "   "}`))
		require.Error(t, err)
	})

	t.Run("NumericFieldsDefaultToZero", func(t *testing.T) {
		v, err := DecodeVoiceFoodLog([]byte(`{"food_name": "Nasi Goreng"}`))
		require.NoError(t, err)
		assert.Equal(t, "Nasi Goreng", v.FoodName)
		assert.Equal(t, 0.0, v.TotalCalories)
		assert.NotNil(t, v.Ingredients)
		assert.NotNil(t, v.Warnings)
	})
}

func TestDecodeVoiceCommand(t *testing.T) {
	t.Run("AcceptsKnownActions", func(t *testing.T) {
		for _, action := range []CommandAction{ActionNavigate, ActionLogFood, ActionQueryData, ActionStartWorkflow, ActionChat} {
			v, err := DecodeVoiceCommand([]byte(`{"action": "` + string(action) + `", "speech_response": "ok"}`))
			require.NoError(t, err)
			assert.Equal(t, action, v.Action)
		}
	})

	t.Run("RejectsUnknownAction", func(t *testing.T) {
		_, err := DecodeVoiceCommand([]byte(`{"action": "DANCE"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DANCE")
	})

	t.Run("RejectsMissingAction", func(t *testing.T) {
		_, err := DecodeVoiceCommand([]byte(`{"speech_response": "hi"}`))
		require.Error(t, err)
	})

	t.Run("CarriesActionPayload", func(t *testing.T) {
		v, err := DecodeVoiceCommand([]byte(`{
			"action": "LOG_FOOD",
			"payload": {"food_items": ["two eggs", "toast"]},
			"speech_response": "Logged it."
		}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"two eggs", "toast"}, v.Payload.FoodItems)
		assert.Equal(t, "Logged it.", v.SpeechResponse)
	})
}
