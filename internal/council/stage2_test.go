package council

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"ideacouncil/internal/provider"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRunReview_LabelsEveryCouncilSize(t *testing.T) {
	for n := 1; n <= 6; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			members := makeMembers(n)
			totals := map[string]float64{}
			for i := 0; i < n; i++ {
				totals[reviewLabels[i]] = 20
			}
			fake := &fakeCaller{
				reply: func(string, []provider.Message) (string, error) {
					return scoreSheet(totals), nil
				},
			}

			c := New(fake, members, "chairman-model")
			reviewed := c.runReview(context.Background(), makeResults(members))

			if len(reviewed) != n {
				t.Fatalf("reviewed = %d, want %d", len(reviewed), n)
			}
			for i, r := range reviewed {
				if !r.Scored || !almostEqual(r.Score, 50) {
					t.Fatalf("result %d: scored=%v score=%v, want 50", i, r.Scored, r.Score)
				}
			}

			// Every reviewer gets the identical prompt with exactly n labels.
			prompt := promptText(fake.calls[0])
			for i := 0; i < n; i++ {
				if !strings.Contains(prompt, "=== Analyst "+reviewLabels[i]+" ===") {
					t.Fatalf("prompt missing label %s", reviewLabels[i])
				}
			}
			if n < len(reviewLabels) && strings.Contains(prompt, "=== Analyst "+reviewLabels[n]+" ===") {
				t.Fatalf("prompt contains unexpected label %s", reviewLabels[n])
			}
			for _, call := range fake.calls[1:] {
				if promptText(call) != prompt {
					t.Fatal("reviewers received different prompts")
				}
			}
		})
	}
}

func TestRunReview_MalformedReviewersAreDropped(t *testing.T) {
	members := makeMembers(4)
	fake := &fakeCaller{
		reply: func(model string, _ []provider.Message) (string, error) {
			switch model {
			case members[0].ModelID:
				return scoreSheet(map[string]float64{"A": 40, "B": 20}), nil
			case members[1].ModelID:
				return "Here are my thoughts:\n" + scoreSheet(map[string]float64{"A": 20, "B": 20}), nil
			default:
				return "I would rate these ideas quite highly overall.", nil
			}
		},
	}

	c := New(fake, members, "chairman-model")
	reviewed := c.runReview(context.Background(), makeResults(members))

	// A: mean(100, 50) = 75 over the two valid sheets only.
	if !reviewed[0].Scored || !almostEqual(reviewed[0].Score, 75) {
		t.Fatalf("A: scored=%v score=%v, want 75", reviewed[0].Scored, reviewed[0].Score)
	}
	// B: mean(50, 50) = 50.
	if !reviewed[1].Scored || !almostEqual(reviewed[1].Score, 50) {
		t.Fatalf("B: scored=%v score=%v, want 50", reviewed[1].Scored, reviewed[1].Score)
	}
	// C and D were never referenced by a valid sheet.
	if reviewed[2].Scored || reviewed[3].Scored {
		t.Fatalf("C/D should be unscored: %v %v", reviewed[2].Scored, reviewed[3].Scored)
	}
}

func TestRunReview_NormalizationBounds(t *testing.T) {
	members := makeMembers(1)
	for _, tc := range []struct {
		total float64
		want  float64
	}{
		{total: 40, want: 100},
		{total: 4, want: 10},
	} {
		fake := &fakeCaller{
			reply: func(string, []provider.Message) (string, error) {
				return scoreSheet(map[string]float64{"A": tc.total}), nil
			},
		}
		c := New(fake, members, "chairman-model")
		reviewed := c.runReview(context.Background(), makeResults(members))
		if !reviewed[0].Scored || !almostEqual(reviewed[0].Score, tc.want) {
			t.Fatalf("total=%v: score=%v, want %v", tc.total, reviewed[0].Score, tc.want)
		}
	}
}

func TestRunReview_AllReviewersMalformed(t *testing.T) {
	members := makeMembers(3)
	fake := &fakeCaller{
		reply: func(string, []provider.Message) (string, error) {
			return "no structured data here", nil
		},
	}

	c := New(fake, members, "chairman-model")
	reviewed := c.runReview(context.Background(), makeResults(members))

	if len(reviewed) != 3 {
		t.Fatalf("reviewed = %d, want 3", len(reviewed))
	}
	for i, r := range reviewed {
		if r.Scored {
			t.Fatalf("result %d should be unscored", i)
		}
	}
}

func TestRunReview_TruncatesBeyondSixResponses(t *testing.T) {
	members := makeMembers(2)
	results := make([]GenerationResult, 7)
	for i := range results {
		results[i] = GenerationResult{
			Member: Member{ModelID: fmt.Sprintf("m-%d", i), Name: fmt.Sprintf("N%d", i)},
			Text:   fmt.Sprintf("text %d", i),
		}
	}
	fake := &fakeCaller{
		reply: func(string, []provider.Message) (string, error) {
			return scoreSheet(map[string]float64{"A": 20}), nil
		},
	}

	c := New(fake, members, "chairman-model")
	reviewed := c.runReview(context.Background(), results)

	if len(reviewed) != 6 {
		t.Fatalf("reviewed = %d, want 6", len(reviewed))
	}
	prompt := promptText(fake.calls[0])
	if !strings.Contains(prompt, "=== Analyst F ===") {
		t.Fatal("prompt missing sixth label")
	}
	if strings.Contains(prompt, "text 6") {
		t.Fatal("seventh response leaked into the review prompt")
	}
}

func TestRunReview_ReviewerCallFailureIsNotFatal(t *testing.T) {
	members := makeMembers(2)
	fake := &fakeCaller{
		reply: func(model string, _ []provider.Message) (string, error) {
			if model == members[0].ModelID {
				return "", &provider.CallError{Kind: provider.KindRateLimit, Msg: "rate limit exceeded (429)"}
			}
			return scoreSheet(map[string]float64{"A": 28, "B": 28}), nil
		},
	}

	c := New(fake, members, "chairman-model")
	reviewed := c.runReview(context.Background(), makeResults(members))

	for i, r := range reviewed {
		if !r.Scored || !almostEqual(r.Score, 70) {
			t.Fatalf("result %d: scored=%v score=%v, want 70", i, r.Scored, r.Score)
		}
	}
}

func TestParseReviewScores(t *testing.T) {
	t.Run("accepts subset of labels", func(t *testing.T) {
		scores, err := parseReviewScores(scoreSheet(map[string]float64{"B": 32}))
		if err != nil {
			t.Fatalf("parseReviewScores() error = %v", err)
		}
		if len(scores) != 1 || scores["B"].Total != 32 {
			t.Fatalf("scores = %v", scores)
		}
	})

	t.Run("tolerates surrounding prose", func(t *testing.T) {
		raw := "Sure! Here are my ratings:\n" + scoreSheet(map[string]float64{"A": 24}) + "\nHope that helps."
		scores, err := parseReviewScores(raw)
		if err != nil {
			t.Fatalf("parseReviewScores() error = %v", err)
		}
		if scores["A"].Total != 24 {
			t.Fatalf("scores = %v", scores)
		}
	})

	t.Run("rejects out-of-range totals", func(t *testing.T) {
		if _, err := parseReviewScores(scoreSheet(map[string]float64{"A": 50})); err == nil {
			t.Fatal("expected error for total outside [4,40]")
		}
	})

	t.Run("rejects pure prose", func(t *testing.T) {
		if _, err := parseReviewScores("these ideas are all excellent"); err == nil {
			t.Fatal("expected error for non-JSON output")
		}
	})
}
