package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	t.Run("RemovesFenceWithLanguageTag", func(t *testing.T) {
		in := "```json\n{\"a\": 1}\n```"
		assert.Equal(t, `{"a": 1}`, StripFences(in))
	})

	t.Run("RemovesBareFences", func(t *testing.T) {
		in := "```\n{\"a\": 1}\n```"
		assert.Equal(t, `{"a": 1}`, StripFences(in))
	})

	t.Run("CleanInputPassesThroughUnchanged", func(t *testing.T) {
		in := `{"a": 1, "b": [2, 3]}`
		assert.Equal(t, in, StripFences(in))
	})

	t.Run("Idempotent", func(t *testing.T) {
		in := "```json\n{\"a\": 1}\n```"
		once := StripFences(in)
		assert.Equal(t, once, StripFences(once))
	})
}

func TestExtractJSON(t *testing.T) {
	t.Run("CutsLeadingAndTrailingProse", func(t *testing.T) {
		in := `Sure, here is the analysis: {"a": 1} Hope that helps!`
		out := ExtractJSON(in)
		assert.Equal(t, `{"a": 1}`, out)
		assert.True(t, json.Valid([]byte(out)))
	})

	t.Run("HandlesArrays", func(t *testing.T) {
		in := `The list: [1, 2, 3].`
		assert.Equal(t, `[1, 2, 3]`, ExtractJSON(in))
	})

	t.Run("KeepsNestedBraces", func(t *testing.T) {
		in := `prefix {"a": {"b": 2}} suffix`
		assert.Equal(t, `{"a": {"b": 2}}`, ExtractJSON(in))
	})

	t.Run("NoJSONReturnsInputUnchanged", func(t *testing.T) {
		in := "no structured data here"
		assert.Equal(t, in, ExtractJSON(in))
	})

	t.Run("UnclosedBraceReturnsInputUnchanged", func(t *testing.T) {
		in := `{"a": 1`
		assert.Equal(t, in, ExtractJSON(in))
	})
}
