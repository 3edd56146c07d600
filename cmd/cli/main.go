package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/amirasaad/paymethods/infra/initializer"
	"github.com/amirasaad/paymethods/pkg/app"
	"github.com/amirasaad/paymethods/pkg/config"
	"github.com/amirasaad/paymethods/pkg/service/checkout"
	log "github.com/charmbracelet/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

// run charges every configured payment method once. Per-method failures are
// reported on stdout and never turn into an error; only setup problems do.
func run(ctx context.Context, stdout, stderr io.Writer) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(ctx, cfg, stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	amount, err := cfg.ChargeAmount()
	if err != nil {
		return err
	}

	_, noColor := os.LookupEnv("NO_COLOR")
	a := app.New(deps, cfg, checkout.NewConsoleReporter(stdout, noColor))
	defer func() {
		if err := a.Close(); err != nil {
			deps.Logger.Warn("Failed to release resources", "error", err)
		}
	}()

	deps.Logger.Info("Charging payment methods",
		"env", cfg.Env,
		"amount", amount.String(),
		"methods", len(a.Processors),
	)
	fmt.Fprintf(stdout, "Charging %s to %d payment methods\n", amount, len(a.Processors)) //nolint:errcheck

	a.CheckoutService.Run(ctx, amount)
	return nil
}
