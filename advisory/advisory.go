// Package advisory defines the optional qualitative-commentary collaborator.
// The engine works identically with no advisor; an advisor failure is
// attached to the result and never alters the numeric outcome.
package advisory

import (
	"context"

	"github.com/stratbench/stratbench/metrics"
)

// Output is the qualitative commentary returned by an advisor.
type Output struct {
	Assessment string   `json:"assessment"`
	Confidence float64  `json:"confidence"`
	Notes      []string `json:"notes,omitempty"`
}

// Advisor supplies commentary on a scored strategy. Implementations are
// called at most once per run, after metrics and scoring are complete, with
// a caller-bounded context.
type Advisor interface {
	// Available reports whether the advisor can be called at all. An
	// unavailable advisor is skipped without error.
	Available() bool

	// ScoreStrategy returns commentary for the labeled strategy given its
	// metrics and a short market-conditions summary.
	ScoreStrategy(ctx context.Context, label string, m metrics.Metrics, marketSummary string) (*Output, error)
}
