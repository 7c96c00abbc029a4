package council

import (
	"fmt"
	"strings"
)

// maxPainPoints bounds how many pain points are embedded in the
// generation prompt; anything beyond is ignored, not an error.
const maxPainPoints = 15

const generationSystemPrompt = `You are a startup idea generator. Given market pain points, generate innovative startup ideas.

For each idea, provide:
- Name: A catchy startup name
- Problem: The problem it solves
- Solution: How it solves it
- Revenue Model: How it makes money
- TAM: Target market size estimate

Generate 3-5 high-quality startup ideas based on the pain points provided.`

// buildGenerationPrompts returns the system instruction and the user
// prompt carrying the subject matter for Stage 1.
func buildGenerationPrompts(painPoints []string) (string, string) {
	pts := painPoints
	if len(pts) > maxPainPoints {
		pts = pts[:maxPainPoints]
	}

	var sb strings.Builder
	for _, pp := range pts {
		fmt.Fprintf(&sb, "- %s\n", pp)
	}

	userPrompt := fmt.Sprintf(`Based on these market pain points:

%s
Generate innovative startup ideas that address these problems. Be creative and think about underserved markets.`, sb.String())

	return generationSystemPrompt, userPrompt
}

const reviewPromptTemplate = `You are evaluating startup ideas from different analysts.

Here are the responses from different analysts (anonymized):

%s

For each response (%s), rate on a scale of 1-10:
- Innovation: How creative and unique are the ideas?
- Feasibility: How practical and achievable?
- Market Fit: How well do they address real pain points?
- Revenue Potential: How viable is the business model?

Provide your ratings in this exact JSON format:
{
  "A": {"innovation": X, "feasibility": X, "market_fit": X, "revenue": X, "total": X},
  "B": {"innovation": X, "feasibility": X, "market_fit": X, "revenue": X, "total": X},
  ...
}

Be objective. It's okay if another analyst's ideas are better than others.`

// buildReviewPrompt embeds every labeled response under a neutral heading.
// The same prompt goes to every reviewer, so reviewers score all
// candidates anonymously, including their own.
func buildReviewPrompt(results []GenerationResult) string {
	blocks := make([]string, len(results))
	labels := make([]string, len(results))
	for i, r := range results {
		labels[i] = reviewLabels[i]
		blocks[i] = fmt.Sprintf("=== Analyst %s ===\n%s", reviewLabels[i], r.Text)
	}
	return fmt.Sprintf(reviewPromptTemplate, strings.Join(blocks, "\n\n"), strings.Join(labels, ", "))
}

// buildChairmanPrompt lists every response in ranked order with its member
// name and score (or "N/A" for never-scored results) and instructs the
// chairman to synthesize the top numIdeas into the fixed JSON schema.
func buildChairmanPrompt(ordered []ReviewedResult, numIdeas int) string {
	blocks := make([]string, len(ordered))
	for i, r := range ordered {
		score := "N/A"
		if r.Scored {
			score = fmt.Sprintf("%.1f", r.Score)
		}
		blocks[i] = fmt.Sprintf("=== %s (Score: %s) ===\n%s", r.Member.Name, score, r.Text)
	}

	return fmt.Sprintf(`You are the Chairman of an AI startup idea council.

Multiple analysts have proposed startup ideas. Your job is to:
1. Review all proposals
2. Select the TOP %d best ideas across all analysts
3. Synthesize and improve upon them
4. Output a final ranked list

Here are the analyst proposals:

%s

Create the final list of TOP %d startup ideas.
CRITICAL: You must return a valid JSON object containing a list of ideas.
Format:
{
    "ideas": [
        {
            "name": "Startup Name",
            "one_liner": "Short catchy tagline",
            "problem_statement": "Detailed problem description",
            "solution_description": "Detailed solution description",
            "revenue_model": "One of: subscription, usage, transaction, hybrid",
            "target_buyer_persona": {
                "title": "Target User Title",
                "company_size": "SMB/Enterprise/Startup",
                "industry": "Tech/Retail/etc",
                "pain_intensity": 0.9
            },
            "tam_estimate": "$XX Billion",
            "pricing_hypothesis": {
                "tiers": ["Free", "Pro", "Enterprise"],
                "price_range": "$10-$100/mo"
            },
            "technical_requirements_summary": "Python backend, React frontend..."
        }
    ]
}
Output ONLY the JSON. No other text.`, numIdeas, strings.Join(blocks, "\n"), numIdeas)
}
