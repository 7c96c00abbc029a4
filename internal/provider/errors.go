package provider

import "errors"

// Kind classifies a failed model call when the transport exposes a
// specific signal. Anything without a recognizable signal stays generic.
type Kind int

const (
	KindGeneric   Kind = iota
	KindQuota          // payment required / insufficient credits (402)
	KindRateLimit      // too many requests (429)
)

// CallError is a failed model call with its provider-level classification.
type CallError struct {
	Kind Kind
	Msg  string
}

func (e *CallError) Error() string {
	return e.Msg
}

// Categorize returns the human-readable category for a failed call.
// Quota and rate-limit failures surface as fixed category text so callers
// see something actionable instead of the raw provider payload.
func Categorize(err error) string {
	var ce *CallError
	if errors.As(err, &ce) {
		switch ce.Kind {
		case KindQuota:
			return "insufficient credits (payment required)"
		case KindRateLimit:
			return "rate limit exceeded"
		}
	}
	return err.Error()
}
