package council

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"ideacouncil/internal/logging"
	"ideacouncil/internal/provider"
)

// rawExcerptLimit bounds how much raw chairman text the repair fallback
// carries in its placeholder idea.
const rawExcerptLimit = 500

// orderForSynthesis stable-sorts results by aggregate score descending.
// Unscored results sort after all scored ones and keep their Stage-1
// relative order among themselves.
func orderForSynthesis(reviewed []ReviewedResult) []ReviewedResult {
	ordered := make([]ReviewedResult, len(reviewed))
	copy(ordered, reviewed)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Scored != ordered[j].Scored {
			return ordered[i].Scored
		}
		if !ordered[i].Scored {
			return false
		}
		return ordered[i].Score > ordered[j].Score
	})
	return ordered
}

// runSynthesis sends the ranked transcript to the chairman and parses its
// output. A transport failure returns an error synthesis immediately; a
// parse failure yields the single-placeholder repair so the result is
// always a well-formed, non-empty shape.
func (c *Council) runSynthesis(ctx context.Context, reviewed []ReviewedResult, numIdeas int) (Synthesis, []CouncilError) {
	ordered := orderForSynthesis(reviewed)
	messages := []provider.Message{
		{Role: "user", Content: buildChairmanPrompt(ordered, numIdeas)},
	}

	raw, err := c.client.Call(ctx, c.chairmanModel, messages, c.settings.MaxTokens, c.settings.Temperature)
	if err != nil {
		logging.SynthesisError("chairman call failed: %v", err)
		msg := provider.Categorize(err)
		return Synthesis{
				Error: fmt.Sprintf("%s: %s", c.chairmanModel, msg),
				Ideas: []Idea{},
			}, []CouncilError{{
				Member:  Member{ModelID: c.chairmanModel, Name: "Chairman"},
				Message: msg,
			}}
	}

	clean := stripCodeFences(raw)

	var out Synthesis
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		logging.SynthesisWarn("chairman output failed strict parse, substituting placeholder: %v", err)
		return Synthesis{Ideas: []Idea{placeholderIdea(clean)}}, nil
	}
	if out.Ideas == nil {
		out.Ideas = []Idea{}
	}
	logging.Synthesis("stage 3 complete: %d ideas", len(out.Ideas))
	return out, nil
}

// placeholderIdea wraps unparseable chairman text in the fixed idea schema
// so a degraded synthesis is visibly marked and never mistaken for a
// confident multi-idea result.
func placeholderIdea(clean string) Idea {
	excerpt := clean
	if len(excerpt) > rawExcerptLimit {
		excerpt = excerpt[:rawExcerptLimit]
	}
	return Idea{
		Name:                "Parse Error Backup",
		OneLiner:            "JSON parsing failed",
		ProblemStatement:    "The chairman model did not return valid JSON.",
		SolutionDescription: excerpt,
		RevenueModel:        "subscription",
		TargetBuyerPersona: BuyerPersona{
			Title:         "Developer",
			CompanySize:   "Any",
			Industry:      "Tech",
			PainIntensity: 0.5,
		},
		TAMEstimate:                  "Unknown",
		PricingHypothesis:            PricingHypothesis{Tiers: []string{}, PriceRange: "Unknown"},
		TechnicalRequirementsSummary: "None",
	}
}
