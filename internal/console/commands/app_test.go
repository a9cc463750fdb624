package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/proofmine/proofmine-console/internal/console/wallet"
	"github.com/proofmine/proofmine-console/pkg/logging"
	"github.com/proofmine/proofmine-console/pkg/types"
)

const testWallet = "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"

// consoleTest runs the real command surface against a stub backend. The
// logger and request context are pre-seeded through the app metadata so the
// Before hook creates no log files and no signal handlers, and the exit
// handler is disabled so exit codes come back as errors instead of killing
// the test process.
type consoleTest struct {
	app     *cli.App
	out     *bytes.Buffer
	dataDir string
}

func newConsoleTest(t *testing.T, backendURL string) *consoleTest {
	t.Helper()

	dataDir := t.TempDir()
	t.Setenv("CONSOLE_DATA_DIR", dataDir)
	t.Setenv("MARKETPLACE_API_URL", backendURL)
	t.Setenv("MARKETPLACE_REQUEST_TIMEOUT", "5s")
	t.Setenv("WALLET_ENVIRONMENT_ID", "")

	app := NewApp()
	app.Setup()
	app.Metadata[metadataLogger] = logging.NewNoOpLogger()
	app.Metadata[metadataContext] = context.Background()
	app.ExitErrHandler = func(*cli.Context, error) {}

	out := &bytes.Buffer{}
	app.Writer = out

	return &consoleTest{app: app, out: out, dataDir: dataDir}
}

func (ct *consoleTest) run(args ...string) error {
	ct.out.Reset()
	return ct.app.Run(append([]string{"console"}, args...))
}

func (ct *consoleTest) output() string {
	return ct.out.String()
}

func (ct *consoleTest) setContext(ctx context.Context) {
	ct.app.Metadata[metadataContext] = ctx
}

// seedSession persists a valid wallet session the way a finished connect
// flow would, so wallet-gated commands find a connected wallet.
func (ct *consoleTest) seedSession(t *testing.T) {
	t.Helper()

	session := wallet.Session{
		WalletAddress: testWallet,
		Username:      "prover",
		Email:         "prover@example.com",
		AuthToken:     "session-token",
		ConnectedAt:   time.Now().Add(-time.Hour),
		ExpiresAt:     time.Now().Add(time.Hour),
	}
	raw, err := json.Marshal(session)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(ct.dataDir, "session.json"), raw, 0o600))
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var coder cli.ExitCoder
	require.ErrorAs(t, err, &coder)
	return coder.ExitCode()
}

// newBackend starts a stub marketplace backend the tests register handlers
// on
func newBackend(t *testing.T) (*http.ServeMux, *httptest.Server) {
	t.Helper()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return mux, server
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func backendTask(id, title string) types.Task {
	capacity := int64(10)
	return types.Task{
		ID:                  id,
		DeveloperID:         "builder-1",
		Title:               title,
		Description:         "Evaluate the model output against the rubric and report mistakes.",
		TaskType:            types.TaskTypeEvaluation,
		DifficultyLevel:     types.DifficultyMedium,
		RewardPerSubmission: 1.5,
		TotalBudget:         15,
		MaxSubmissions:      &capacity,
		CurrentSubmissions:  3,
		VerificationCriteria: map[string]interface{}{
			"min_score": 0.7,
		},
		Instructions: map[string]interface{}{
			"format": "json",
		},
		Status:    types.TaskStatusActive,
		CreatedAt: types.NewTimestamp(time.Now().Add(-2 * time.Hour)),
	}
}

func TestNewAppCommandSurface(t *testing.T) {
	app := NewApp()

	names := make(map[string]bool)
	for _, cmd := range app.Commands {
		names[cmd.Name] = true
	}
	for _, name := range []string{"tasks", "submissions", "account", "wallet", "dashboard", "doctor", "version"} {
		require.True(t, names[name], "command %s is missing", name)
	}
}

func TestLoggerFromFallsBackToNoOp(t *testing.T) {
	app := cli.NewApp()
	app.Setup()
	ctx := cli.NewContext(app, nil, nil)

	require.NotNil(t, loggerFrom(ctx))
}
