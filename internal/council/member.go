package council

// Member is one independently configured backing model on the council.
// The roster order is fixed at construction and determines the default
// anonymization order during peer review.
type Member struct {
	ModelID string `json:"model_id" yaml:"model_id"`
	Name    string `json:"name" yaml:"name"`
}

// DefaultMembers returns the default council roster: cost-effective models
// from four different providers so no single vendor dominates the review.
func DefaultMembers() []Member {
	return []Member{
		{ModelID: "google/gemini-2.0-flash-exp:free", Name: "Gemini"},
		{ModelID: "anthropic/claude-3.5-sonnet", Name: "Claude"},
		{ModelID: "openai/gpt-4o-mini", Name: "GPT-4o"},
		{ModelID: "meta-llama/llama-3.3-70b-instruct", Name: "Llama"},
	}
}

// DefaultChairmanModel is the model that performs final synthesis.
const DefaultChairmanModel = "google/gemini-2.0-flash-exp:free"
