package commands

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	ct := newConsoleTest(t, "http://localhost:1")
	require.NoError(t, ct.run("version"))

	out := ct.output()
	require.Contains(t, out, "ProofMine Console")
	require.Contains(t, out, "Version:      dev")
	require.Contains(t, out, "Go Version:   "+runtime.Version())
}
