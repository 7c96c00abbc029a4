package council

// GenerationResult is one member's successful Stage-1 response.
type GenerationResult struct {
	Member Member
	Text   string
}

// CouncilError records one failed model call from Stage 1 or Stage 3.
// It is a flat bag entry, not linked back to any GenerationResult.
type CouncilError struct {
	Member  Member `json:"member"`
	Message string `json:"message"`
}

// LabelScore carries one reviewer's four sub-scores and total for a single
// anonymized response. Sub-scores are on a 1-10 scale, total on 4-40.
type LabelScore struct {
	Innovation  float64 `json:"innovation"`
	Feasibility float64 `json:"feasibility"`
	MarketFit   float64 `json:"market_fit"`
	Revenue     float64 `json:"revenue"`
	Total       float64 `json:"total"`
}

// ReviewScores is one reviewer's parsed score sheet: label -> scores.
type ReviewScores map[string]LabelScore

// ReviewedResult pairs a Stage-1 result with its aggregate peer score,
// normalized to 0-100. Scored distinguishes "never scored" from
// "scored zero".
type ReviewedResult struct {
	GenerationResult
	Score  float64
	Scored bool
}

// BuyerPersona describes the target buyer of a synthesized idea.
type BuyerPersona struct {
	Title         string  `json:"title"`
	CompanySize   string  `json:"company_size"`
	Industry      string  `json:"industry"`
	PainIntensity float64 `json:"pain_intensity"`
}

// PricingHypothesis sketches how a synthesized idea would be priced.
type PricingHypothesis struct {
	Tiers      []string `json:"tiers"`
	PriceRange string   `json:"price_range"`
}

// Idea is one synthesized startup idea in the fixed chairman schema.
type Idea struct {
	Name                         string            `json:"name"`
	OneLiner                     string            `json:"one_liner"`
	ProblemStatement             string            `json:"problem_statement"`
	SolutionDescription          string            `json:"solution_description"`
	RevenueModel                 string            `json:"revenue_model"`
	TargetBuyerPersona           BuyerPersona      `json:"target_buyer_persona"`
	TAMEstimate                  string            `json:"tam_estimate"`
	PricingHypothesis            PricingHypothesis `json:"pricing_hypothesis"`
	TechnicalRequirementsSummary string            `json:"technical_requirements_summary"`
}

// Synthesis is the chairman's final output. A transport failure sets Error
// and leaves Ideas empty; a parse failure yields exactly one placeholder
// idea carrying the raw chairman text, so Ideas is never nil on success.
type Synthesis struct {
	Error string `json:"error,omitempty"`
	Ideas []Idea `json:"ideas"`
}

// StageOneEntry is the truncated transcript of one member's generation.
type StageOneEntry struct {
	Member  string `json:"member"`
	Excerpt string `json:"excerpt"`
}

// StageTwoEntry is one member's aggregate peer-review score.
type StageTwoEntry struct {
	Member  string  `json:"member"`
	Average float64 `json:"average"`
}

// SessionResult is the terminal, immutable outcome of one council run.
// GenerateIdeas always returns a populated SessionResult; callers
// distinguish success from degraded outcomes by inspecting the fields.
type SessionResult struct {
	Stage1  []StageOneEntry `json:"stage1_responses"`
	Stage2  []StageTwoEntry `json:"stage2_scores"`
	Final   Synthesis       `json:"final_ideas"`
	Members []string        `json:"council_members"`
	Errors  []CouncilError  `json:"errors"`
}
