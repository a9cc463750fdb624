package commands

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/urfave/cli/v2"

	"github.com/proofmine/proofmine-console/internal/console/config"
	"github.com/proofmine/proofmine-console/internal/console/views"
	"github.com/proofmine/proofmine-console/internal/console/wallet"
)

// DoctorCommand diagnoses the console's environment
func DoctorCommand() *cli.Command {
	return &cli.Command{
		Name:   "doctor",
		Usage:  "Check backend, wallet provider and host health",
		Action: runDoctor,
	}
}

func runDoctor(c *cli.Context) error {
	r := newRenderer(c)
	ctx := ReqContext(c)

	r.Header("CONSOLE DOCTOR")

	r.Println("CONFIG")
	r.Printf("  backend      %s\n", config.GetAPIURL())
	r.Printf("  timeout      %s\n", config.GetRequestTimeout())
	r.Printf("  data dir     %s\n", config.GetDataDir())
	if envID := config.GetWalletEnvironmentID(); envID != "" {
		r.Printf("  wallet auth  %s (environment %s)\n", config.GetWalletAuthURL(), envID)
	} else {
		r.Printf("  wallet auth  %s (no environment configured)\n", config.GetWalletAuthURL())
	}
	r.Println()

	backendHealthy := doctorBackend(ctx, c, r)
	r.Println()
	doctorWalletProvider(ctx, c, r)
	r.Println()
	doctorHost(r)

	if !backendHealthy {
		return exitFailure()
	}
	return nil
}

func doctorBackend(ctx context.Context, c *cli.Context, r *views.Renderer) bool {
	r.Println("BACKEND")
	client, err := newMarketClient(c)
	if err != nil {
		r.Printf("  fail  %v\n", err)
		return false
	}
	defer client.Close()

	started := time.Now()
	health, err := client.Health(ctx)
	if err != nil {
		r.Printf("  fail  %s\n", views.FailureMessage(err))
		return false
	}
	latency := time.Since(started).Round(time.Millisecond)
	if health.Status != "" {
		r.Printf("  ok    status %q in %s\n", health.Status, latency)
	} else {
		r.Printf("  ok    answered /health in %s\n", latency)
	}
	return true
}

// doctorWalletProvider probes the wallet provider descriptor. A provider
// problem blocks `wallet connect` but not the marketplace commands, so it
// never fails the doctor run on its own.
func doctorWalletProvider(ctx context.Context, c *cli.Context, r *views.Renderer) {
	r.Println("WALLET PROVIDER")
	envID := config.GetWalletEnvironmentID()
	if envID == "" {
		r.Printf("  skip  WALLET_ENVIRONMENT_ID is not set; `wallet connect` is unavailable\n")
		return
	}

	provider, err := wallet.NewProviderClient(loggerFrom(c), config.GetWalletAuthURL())
	if err != nil {
		r.Printf("  fail  %v\n", err)
		return
	}
	defer provider.Close()

	started := time.Now()
	descriptor, err := provider.Descriptor(ctx, envID)
	if err != nil {
		r.Printf("  fail  %v\n", err)
		return
	}
	name := descriptor.Name
	if name == "" {
		name = descriptor.EnvironmentID
	}
	r.Printf("  ok    environment %q answered in %s\n", name, time.Since(started).Round(time.Millisecond))
}

func doctorHost(r *views.Renderer) {
	r.Println("HOST")

	if percentages, err := cpu.Percent(200*time.Millisecond, false); err == nil && len(percentages) > 0 {
		r.Printf("  cpu     %.1f%%\n", percentages[0])
	} else {
		r.Printf("  cpu     unavailable\n")
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		r.Printf("  memory  %s used of %s (%.1f%%)\n",
			humanize.IBytes(vm.Used), humanize.IBytes(vm.Total), vm.UsedPercent)
	} else {
		r.Printf("  memory  unavailable\n")
	}
}
