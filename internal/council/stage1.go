package council

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"ideacouncil/internal/logging"
	"ideacouncil/internal/provider"
)

// runGeneration broadcasts the generation prompt to every member
// concurrently and joins on all of them before returning. Each task writes
// exactly one private slot, so no locking is needed; one member's failure
// never aborts the others.
func (c *Council) runGeneration(ctx context.Context, painPoints []string) ([]GenerationResult, []CouncilError) {
	systemPrompt, userPrompt := buildGenerationPrompts(painPoints)
	messages := []provider.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
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
	// Tasks never return an error; Wait is the stage's fan-in barrier.
	_ = g.Wait()

	var results []GenerationResult
	var errs []CouncilError
	for i, m := range c.members {
		if slots[i].err != nil {
			logging.GenerationError("%s (%s): %v", m.Name, m.ModelID, slots[i].err)
			errs = append(errs, CouncilError{
				Member:  m,
				Message: fmt.Sprintf("%s: %s", m.ModelID, provider.Categorize(slots[i].err)),
			})
			continue
		}
		results = append(results, GenerationResult{Member: m, Text: slots[i].text})
	}

	logging.Generation("stage 1 complete: %d responses, %d failures", len(results), len(errs))
	return results, errs
}
