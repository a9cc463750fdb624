package views

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofmine/proofmine-console/pkg/types"
)

func TestReputationViewRendersStats(t *testing.T) {
	view := NewReputationView()
	require.NoError(t, view.Start())
	require.NoError(t, view.Succeed(&types.Reputation{
		Wallet:              "0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
		ReputationScore:     65,
		TotalTasksCompleted: 12,
		TotalRewardsEarned:  18.5,
	}))

	var buf bytes.Buffer
	view.Render(NewPlainRenderer(&buf))
	out := buf.String()

	assert.Contains(t, out, "REPUTATION 0x742d…f44e")
	assert.Contains(t, out, "score       65/100")
	assert.Contains(t, out, "tasks done  12")
	assert.Contains(t, out, "earned      18.5 tokens")
}

func TestReputationFailureClearsStaleStats(t *testing.T) {
	view := NewReputationView()
	require.NoError(t, view.Start())
	require.NoError(t, view.Succeed(&types.Reputation{
		Wallet:          "0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
		ReputationScore: 65,
	}))

	require.NoError(t, view.Start())
	require.NoError(t, view.Fail("Cannot reach the marketplace backend."))

	assert.Nil(t, view.Reputation())

	var buf bytes.Buffer
	view.Render(NewPlainRenderer(&buf))
	out := buf.String()

	assert.Contains(t, out, "ERROR: Cannot reach the marketplace backend.")
	assert.NotContains(t, out, "65")
	assert.NotContains(t, out, "score")
}
