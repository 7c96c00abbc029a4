package council

import (
	"context"

	"ideacouncil/internal/logging"
)

// Stage progress labels passed to the optional onStage callback before
// each stage transition.
const (
	StageGenerating   = "Stage 1: Council members generating ideas..."
	StageReviewing    = "Stage 2: Peer review in progress..."
	StageSynthesizing = "Stage 3: Chairman synthesizing final ideas..."
)

// stage1ExcerptLimit bounds how much of each Stage-1 response the session
// transcript retains.
const stage1ExcerptLimit = 500

// GenerateIdeas runs the full council session: concurrent generation,
// anonymized peer review, then chairman synthesis. It never returns an
// error; every outcome, including total Stage-1 failure, resolves to a
// populated SessionResult. onStage may be nil.
//
// The only short-circuit is zero successful generations: the result then
// carries an error synthesis and Stages 2-3 are skipped. Stage 2
// producing zero scores is not fatal; Stage 3 falls back to Stage-1
// ordering.
func (c *Council) GenerateIdeas(ctx context.Context, painPoints []string, numIdeas int, onStage func(string)) *SessionResult {
	result := &SessionResult{
		Stage1:  []StageOneEntry{},
		Stage2:  []StageTwoEntry{},
		Members: make([]string, 0, len(c.members)),
		Errors:  []CouncilError{},
	}
	for _, m := range c.members {
		result.Members = append(result.Members, m.Name)
	}
	logging.Session("session start: %d members, chairman=%s, ideas=%d", len(c.members), c.chairmanModel, numIdeas)

	if onStage != nil {
		onStage(StageGenerating)
	}
	results, errs := c.runGeneration(ctx, painPoints)
	result.Errors = append(result.Errors, errs...)
	for _, r := range results {
		result.Stage1 = append(result.Stage1, StageOneEntry{
			Member:  r.Member.Name,
			Excerpt: excerpt(r.Text),
		})
	}

	if len(results) == 0 {
		logging.Session("session aborted: all members failed in stage 1")
		result.Final = Synthesis{
			Error: "All council members failed to generate ideas.",
			Ideas: []Idea{},
		}
		return result
	}

	if onStage != nil {
		onStage(StageReviewing)
	}
	reviewed := c.runReview(ctx, results)
	for _, r := range reviewed {
		if r.Scored {
			result.Stage2 = append(result.Stage2, StageTwoEntry{
				Member:  r.Member.Name,
				Average: r.Score,
			})
		}
	}

	if onStage != nil {
		onStage(StageSynthesizing)
	}
	final, synthErrs := c.runSynthesis(ctx, reviewed, numIdeas)
	result.Errors = append(result.Errors, synthErrs...)
	result.Final = final

	logging.Session("session done: %d ideas, %d errors", len(final.Ideas), len(result.Errors))
	return result
}

// excerpt truncates a Stage-1 response for the session transcript.
func excerpt(text string) string {
	if len(text) > stage1ExcerptLimit {
		text = text[:stage1ExcerptLimit]
	}
	return text + "..."
}
