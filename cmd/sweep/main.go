package main

import (
	"context"
	"os"
	"time"

	"crm-renewal-be/internal/bootstrap"
	"crm-renewal-be/internal/config"
	"crm-renewal-be/pkg/database"

	"github.com/fatih/color"
)

// Runs the subscription expiry sweep once, outside the scheduler.
func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	container := bootstrap.NewContainer(db, cfg)
	defer container.Close()

	timeout := cfg.Scheduler.SweepTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	color.Cyan("Running subscription expiry sweep...")
	result, err := container.SubscriptionService.SweepExpired(ctx)
	if err != nil {
		color.Red("Sweep failed: %v", err)
		container.Close()
		os.Exit(1)
	}

	if result.Expired == 0 {
		color.Yellow("No subscriptions past their end date")
		return
	}
	color.Green("Expired %d subscription(s) at %s", result.Expired, result.SweptAt.Format(time.RFC3339))
}
