package biometric

import (
	"context"
	"log/slog"

	"github.com/Abhivandan7/DashCash/internal/core/domain"
	"github.com/Abhivandan7/DashCash/internal/core/ports"
)

// Resolver searches the enrolled template set for the identity behind a
// probe. The probe lives only in the per-call scan below: it is never
// written to the template store, so it can never turn up as its own
// candidate on this or any later call.
type Resolver struct {
	templates ports.TemplateStore
	threshold float64
	margin    float64
}

func NewResolver(templates ports.TemplateStore, threshold, margin float64) *Resolver {
	return &Resolver{templates: templates, threshold: threshold, margin: margin}
}

// Resolve scores the probe against every enrolled template and applies the
// threshold + ambiguity-margin policy:
//
//   - best score below the acceptance threshold -> NO_MATCH
//   - best score accepted but within the margin of the runner-up -> AMBIGUOUS
//   - otherwise -> MATCH with the best candidate's account number
//
// An empty template store is NO_MATCH, not an error. The scan is read-only
// against the store; all scratch state is call-scoped.
func (r *Resolver) Resolve(ctx context.Context, probe domain.Template) (domain.MatchResult, error) {
	candidates, err := r.templates.ListTemplates(ctx)
	if err != nil {
		return domain.MatchResult{}, domain.WrapStorage(err)
	}

	const floor = -1.0 // cosine lower bound
	best, second := floor, floor
	var bestAccount string

	for _, cand := range candidates {
		score, ok := CosineSimilarity(probe.Embedding, cand.Embedding)
		if !ok {
			slog.Warn("Skipping incomparable template", "account_no", cand.AccountNo, "model", cand.Model)
			continue
		}
		switch {
		case score > best:
			second = best
			best = score
			bestAccount = cand.AccountNo
		case score > second:
			second = score
		}
	}

	gap := best - second
	if bestAccount == "" || best < r.threshold {
		return domain.MatchResult{Decision: domain.DecisionNoMatch, Score: best, Gap: gap}, nil
	}
	if gap <= r.margin {
		// Two enrolled identities are too close to call. Never resolve to
		// the top hit in this situation.
		return domain.MatchResult{Decision: domain.DecisionAmbiguous, Score: best, Gap: gap}, nil
	}
	return domain.MatchResult{
		Decision:  domain.DecisionMatch,
		AccountNo: bestAccount,
		Score:     best,
		Gap:       gap,
	}, nil
}
