package analysis

// Profile is the structured user profile fed to plan-style tasks.
type Profile struct {
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
	ActivityLevel string  `json:"activityLevel"`
	Goal          string  `json:"goal"`
	Preference    string  `json:"preference"`
}
