// Package council implements a three-stage multi-model orchestration
// engine: every member generates ideas independently, the council
// anonymously peer-reviews the candidates, and a designated chairman
// synthesizes a final ranked list.
package council

import "ideacouncil/internal/provider"

// Settings holds the shared per-call generation parameters.
type Settings struct {
	MaxTokens   int
	Temperature float64
}

// DefaultSettings returns the generation parameters used when none are
// supplied.
func DefaultSettings() Settings {
	return Settings{
		MaxTokens:   2000,
		Temperature: 0.7,
	}
}

// Council orchestrates one generate / peer-review / synthesize session
// across a fixed roster of backing models. The client, roster, and
// chairman are explicit constructor values so sessions are independently
// testable and runnable in parallel.
type Council struct {
	client        provider.Caller
	members       []Member
	chairmanModel string
	settings      Settings
}

// New creates a Council. An empty roster falls back to DefaultMembers and
// an empty chairman model to DefaultChairmanModel.
func New(client provider.Caller, members []Member, chairmanModel string) *Council {
	if len(members) == 0 {
		members = DefaultMembers()
	}
	if chairmanModel == "" {
		chairmanModel = DefaultChairmanModel
	}
	roster := make([]Member, len(members))
	copy(roster, members)
	return &Council{
		client:        client,
		members:       roster,
		chairmanModel: chairmanModel,
		settings:      DefaultSettings(),
	}
}

// WithSettings overrides the shared token/temperature settings.
func (c *Council) WithSettings(s Settings) *Council {
	if s.MaxTokens > 0 {
		c.settings.MaxTokens = s.MaxTokens
	}
	if s.Temperature > 0 {
		c.settings.Temperature = s.Temperature
	}
	return c
}

// Members returns a copy of the roster in anonymization order.
func (c *Council) Members() []Member {
	out := make([]Member, len(c.members))
	copy(out, c.members)
	return out
}
