// Command smartshot opens a browser session, navigates to a page and captures
// a SmartUI snapshot of it.
//
// Usage: smartshot [-mode remote|local] [-url URL] [-name NAME] [-headless]
//
// Remote runs read LT_USERNAME and LT_ACCESS_KEY; the SmartUI server address
// comes from SMARTUI_SERVER_ADDRESS.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/raysh454/smartshot/internal/app"
	"github.com/raysh454/smartshot/internal/cli"
	"github.com/raysh454/smartshot/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	args, err := cli.ParseArgs(argv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "smartshot: %v\n", err)
		return 2
	}

	cfg, err := app.LoadConfig(args, os.LookupEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "smartshot: %v\n", err)
		return 1
	}

	logger := logging.NewLogger(os.Stderr, "smartshot", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := app.NewApplication(cfg, logger).Run(ctx); err != nil {
		logger.Error("run failed", logging.Err(err))
		return 1
	}

	fmt.Println("Execution Successful")
	return 0
}
