package mysql

import "encoding/json"

// jsonString marshals a slice for a JSON column, falling back to an empty
// array so the column stays valid JSON.
func jsonString(v any) string {
	b, err := json.Marshal(v)
	if err != nil || v == nil {
		return "[]"
	}
	return string(b)
}
