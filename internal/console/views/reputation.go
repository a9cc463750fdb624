package views

import (
	"github.com/proofmine/proofmine-console/pkg/types"
)

// ReputationView renders a wallet's trust metrics. A failed lookup clears
// whatever a previous lookup rendered so stale numbers are never left on
// screen.
type ReputationView struct {
	Action
	reputation *types.Reputation
}

// NewReputationView creates an empty reputation view
func NewReputationView() *ReputationView {
	return &ReputationView{}
}

// Succeed stores the fetched reputation
func (v *ReputationView) Succeed(reputation *types.Reputation) error {
	if err := v.Action.Succeed(); err != nil {
		return err
	}
	v.reputation = reputation
	return nil
}

// Fail records the failure and drops any previously stored stats
func (v *ReputationView) Fail(message string) error {
	if err := v.Action.Fail(message); err != nil {
		return err
	}
	v.reputation = nil
	return nil
}

// Reputation returns the stored stats, nil after a failure
func (v *ReputationView) Reputation() *types.Reputation {
	return v.reputation
}

// Render writes the stats card, the failure banner, or a progress line
// while loading.
func (v *ReputationView) Render(r *Renderer) {
	switch v.State() {
	case StateLoading:
		r.Loading("Fetching reputation…")
	case StateFailed:
		r.Failure(v.Message(), "console account reputation [address]")
	case StateSucceeded:
		renderReputation(r, v.reputation)
	}
}

func renderReputation(r *Renderer, rep *types.Reputation) {
	r.Println()
	r.Header("REPUTATION " + shortAddress(rep.Wallet))
	r.Printf("  score       %d/%d %s\n",
		rep.ReputationScore, types.ReputationMax,
		progressBar(rep.ReputationScore, types.ReputationMax, 20))
	r.Printf("  tasks done  %d\n", rep.TotalTasksCompleted)
	r.Printf("  earned      %s tokens\n", formatAmount(rep.TotalRewardsEarned))
}
