package council

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"ideacouncil/internal/logging"
	"ideacouncil/internal/provider"
)

// reviewLabels is the single-letter anonymization scheme. The scheme caps
// at six responses; survivors beyond the sixth are truncated from the
// review rather than relabeled.
var reviewLabels = []string{"A", "B", "C", "D", "E", "F"}

// runReview anonymizes the Stage-1 results, broadcasts one identical
// review prompt to every member, and aggregates the parseable score
// sheets into a normalized 0-100 score per result. A reviewer whose
// output will not parse is dropped; zero parseable reviewers leaves every
// result unscored, which is not fatal.
func (c *Council) runReview(ctx context.Context, results []GenerationResult) []ReviewedResult {
	if len(results) > len(reviewLabels) {
		logging.ReviewWarn("truncating %d responses to %d: labeling scheme is capped at %s",
			len(results), len(reviewLabels), reviewLabels[len(reviewLabels)-1])
		results = results[:len(reviewLabels)]
	}

	messages := []provider.Message{
		{Role: "user", Content: buildReviewPrompt(results)},
	}

	type slot struct {
		text string
		err  error
	}
	slots := make([]slot, len(c.members))

	g, gctx := errgroup.WithContext(ctx)
	for i, m := range c.members {
		i, m := i, m
		g.Go(func() error {
			text, err := c.client.Call(gctx, m.ModelID, messages, c.settings.MaxTokens, c.settings.Temperature)
			slots[i] = slot{text: text, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var sheets []ReviewScores
	for i, m := range c.members {
		if slots[i].err != nil {
			logging.ReviewWarn("reviewer %s call failed: %v", m.Name, slots[i].err)
			continue
		}
		scores, err := parseReviewScores(slots[i].text)
		if err != nil {
			logging.ReviewWarn("reviewer %s: dropping scores: %v", m.Name, err)
			continue
		}
		sheets = append(sheets, scores)
	}
	logging.Review("stage 2 complete: %d/%d reviewers contributed scores", len(sheets), len(c.members))

	reviewed := make([]ReviewedResult, len(results))
	for i, r := range results {
		reviewed[i] = ReviewedResult{GenerationResult: r}

		var sum float64
		var n int
		for _, sheet := range sheets {
			ls, ok := sheet[reviewLabels[i]]
			if !ok {
				continue
			}
			// Normalize the 40-point total to a 0-100 scale.
			sum += ls.Total / 40.0 * 100
			n++
		}
		if n > 0 {
			reviewed[i].Score = sum / float64(n)
			reviewed[i].Scored = true
		}
	}
	return reviewed
}

// parseReviewScores extracts the first top-level object span from raw
// reviewer output and decodes it as a label -> score-sheet mapping,
// tolerating surrounding prose or fencing. Entries whose total is not in
// the 4-40 range are rejected; a sheet with no usable entry is an error.
func parseReviewScores(raw string) (ReviewScores, error) {
	payload, ok := extractObject(raw)
	if !ok {
		return nil, fmt.Errorf("no JSON object found in reviewer output")
	}

	var scores ReviewScores
	if err := json.Unmarshal([]byte(payload), &scores); err != nil {
		return nil, fmt.Errorf("malformed score sheet: %w", err)
	}

	for label, ls := range scores {
		if ls.Total < 4 || ls.Total > 40 {
			delete(scores, label)
		}
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("score sheet has no usable entries")
	}
	return scores, nil
}
