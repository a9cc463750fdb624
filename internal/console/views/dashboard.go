package views

import (
	"github.com/proofmine/proofmine-console/pkg/types"
)

// WalletCard is the connected-session summary the dashboard shows. It is
// filled from the wallet manager, never from the backend.
type WalletCard struct {
	Address  string
	Username string
	Email    string
}

// DashboardView is the evaluator home screen: the wallet card, reputation
// stats and the most recent open tasks. Stats and tasks load independently
// so a failing reputation lookup still leaves the task feed usable, and
// vice versa.
type DashboardView struct {
	wallet      *WalletCard
	statsAction Action
	tasksAction Action
	reputation  *types.Reputation
	tasks       []types.Task
}

// NewDashboardView creates an empty dashboard
func NewDashboardView() *DashboardView {
	return &DashboardView{}
}

// SetWallet stores the connected session summary, nil when disconnected
func (v *DashboardView) SetWallet(card *WalletCard) {
	v.wallet = card
}

// Wallet returns the stored session summary
func (v *DashboardView) Wallet() *WalletCard {
	return v.wallet
}

// StartStats begins a reputation load
func (v *DashboardView) StartStats() error {
	return v.statsAction.Start()
}

// SucceedStats stores freshly fetched reputation stats
func (v *DashboardView) SucceedStats(reputation *types.Reputation) error {
	if err := v.statsAction.Succeed(); err != nil {
		return err
	}
	v.reputation = reputation
	return nil
}

// FailStats records the failure and drops previously rendered stats
func (v *DashboardView) FailStats(message string) error {
	if err := v.statsAction.Fail(message); err != nil {
		return err
	}
	v.reputation = nil
	return nil
}

// StatsState returns the phase of the reputation load
func (v *DashboardView) StatsState() State {
	return v.statsAction.State()
}

// Reputation returns the stored stats, nil after a failure
func (v *DashboardView) Reputation() *types.Reputation {
	return v.reputation
}

// StartTasks begins a recent-tasks load
func (v *DashboardView) StartTasks() error {
	return v.tasksAction.Start()
}

// SucceedTasks stores the freshly fetched task feed
func (v *DashboardView) SucceedTasks(tasks []types.Task) error {
	if err := v.tasksAction.Succeed(); err != nil {
		return err
	}
	v.tasks = tasks
	return nil
}

// FailTasks records the failure; the previous feed is dropped with it
func (v *DashboardView) FailTasks(message string) error {
	if err := v.tasksAction.Fail(message); err != nil {
		return err
	}
	v.tasks = nil
	return nil
}

// TasksState returns the phase of the recent-tasks load
func (v *DashboardView) TasksState() State {
	return v.tasksAction.State()
}

// Tasks returns the stored feed
func (v *DashboardView) Tasks() []types.Task {
	return v.tasks
}

// Render writes the full dashboard. Sections render their own phase, so a
// partial refresh shows fresh data next to an error banner instead of
// blanking the screen.
func (v *DashboardView) Render(r *Renderer) {
	r.Println()
	r.Header("PROOFMINE DASHBOARD")

	r.Println()
	r.Header("WALLET")
	if v.wallet == nil {
		r.Notice("  Not connected. Connect with: console wallet connect")
	} else {
		r.Printf("  address   %s\n", shortAddress(v.wallet.Address))
		r.Printf("  username  %s\n", v.wallet.Username)
		if v.wallet.Email != "" {
			r.Printf("  email     %s\n", v.wallet.Email)
		}
	}

	r.Println()
	r.Header("STATS")
	switch v.statsAction.State() {
	case StateIdle:
		r.Notice("  Connect a wallet to track reputation.")
	case StateLoading:
		r.Loading("Fetching reputation…")
	case StateFailed:
		r.Failure(v.statsAction.Message(), "console dashboard")
	case StateSucceeded:
		r.Printf("  score       %d/%d %s\n",
			v.reputation.ReputationScore, types.ReputationMax,
			progressBar(v.reputation.ReputationScore, types.ReputationMax, 20))
		r.Printf("  tasks done  %d\n", v.reputation.TotalTasksCompleted)
		r.Printf("  earned      %s tokens\n", formatAmount(v.reputation.TotalRewardsEarned))
	}

	r.Println()
	r.Header("RECENT TASKS")
	switch v.tasksAction.State() {
	case StateIdle:
		// nothing fetched yet
	case StateLoading:
		r.Loading("Fetching tasks…")
	case StateFailed:
		r.Failure(v.tasksAction.Message(), "console dashboard")
	case StateSucceeded:
		if len(v.tasks) == 0 {
			r.Println("  No open tasks right now.")
			break
		}
		for i := range v.tasks {
			renderTaskCard(r, i+1, &v.tasks[i])
		}
	}
}
