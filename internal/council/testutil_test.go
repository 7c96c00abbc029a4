package council

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"ideacouncil/internal/provider"
)

// fakeCaller scripts model responses and records every call for
// assertions. reply receives the model and messages for one call and
// returns that call's text or error.
type fakeCaller struct {
	mu    sync.Mutex
	reply func(model string, messages []provider.Message) (string, error)
	calls []recordedCall
}

type recordedCall struct {
	Model    string
	Messages []provider.Message
}

func (f *fakeCaller) Call(ctx context.Context, model string, messages []provider.Message, maxTokens int, temperature float64) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{Model: model, Messages: messages})
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f.reply(model, messages)
}

func (f *fakeCaller) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeCaller) callsMatching(substr string) []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedCall
	for _, c := range f.calls {
		for _, m := range c.Messages {
			if strings.Contains(m.Content, substr) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func makeMembers(n int) []Member {
	members := make([]Member, n)
	for i := range members {
		members[i] = Member{
			ModelID: fmt.Sprintf("provider/model-%d", i+1),
			Name:    fmt.Sprintf("Member%d", i+1),
		}
	}
	return members
}

func makeResults(members []Member) []GenerationResult {
	results := make([]GenerationResult, len(members))
	for i, m := range members {
		results[i] = GenerationResult{Member: m, Text: fmt.Sprintf("ideas from %s", m.Name)}
	}
	return results
}

// scoreSheet builds a reviewer score sheet JSON with the given totals per
// label. Sub-scores are filled with total/4 so the sheet is well-formed.
func scoreSheet(totals map[string]float64) string {
	var sb strings.Builder
	sb.WriteString("{")
	first := true
	for label, total := range totals {
		if !first {
			sb.WriteString(",")
		}
		first = false
		sub := total / 4
		fmt.Fprintf(&sb, `"%s": {"innovation": %g, "feasibility": %g, "market_fit": %g, "revenue": %g, "total": %g}`,
			label, sub, sub, sub, sub, total)
	}
	sb.WriteString("}")
	return sb.String()
}

// promptText flattens a call's messages for content assertions.
func promptText(c recordedCall) string {
	var sb strings.Builder
	for _, m := range c.Messages {
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}
