package app

import (
	"context"
	"errors"

	"github.com/raysh454/smartshot/internal/logging"
	"github.com/raysh454/smartshot/internal/runner"
	"github.com/raysh454/smartshot/internal/session"
	"github.com/raysh454/smartshot/internal/smartui"
)

// Application holds the config, logger and the runner wired from them. Pass
// it around instead of using package-level state.
type Application struct {
	Config *Config
	Logger logging.Logger
	Runner *runner.Runner
}

// NewApplication wires the default session opener and SmartUI client into a
// Runner.
func NewApplication(cfg *Config, logger logging.Logger) *Application {
	if logger == nil {
		logger = logging.Nop()
	}
	opener := session.NewOpener(logger)
	client := smartui.NewClient(cfg.SmartUI, logger, nil)
	return &Application{
		Config: cfg,
		Logger: logger,
		Runner: runner.New(opener, client, logger),
	}
}

// Run executes the configured job once.
func (a *Application) Run(ctx context.Context) (*smartui.ArtifactRef, error) {
	if a == nil || a.Config == nil || a.Runner == nil {
		return nil, errors.New("application is not initialised")
	}
	if a.Config.UsedFallbackCredentials {
		a.Logger.Warn("LT_USERNAME or LT_ACCESS_KEY not set, using placeholder credentials")
	}

	a.Logger.Info("run starting",
		logging.Field{Key: "variant", Value: string(a.Config.Session.Variant)},
		logging.Field{Key: "url", Value: a.Config.URL},
		logging.Field{Key: "snapshot", Value: a.Config.SnapshotName})

	return a.Runner.Run(ctx, runner.Job{
		Session:         a.Config.Session,
		URL:             a.Config.URL,
		SnapshotName:    a.Config.SnapshotName,
		SnapshotOptions: a.Config.SnapshotOptions,
	})
}
