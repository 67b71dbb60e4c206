package app

import (
	"fmt"

	"github.com/raysh454/smartshot/internal/cli"
	"github.com/raysh454/smartshot/internal/logging"
	"github.com/raysh454/smartshot/internal/session"
	"github.com/raysh454/smartshot/internal/smartui"
)

// EnvLogLevel selects the minimum log level (debug|info|warn|error).
const EnvLogLevel = "LT_SDK_LOG_LEVEL"

// Config contains the runtime configuration for one run, assembled from the
// per-package configs.
type Config struct {
	// Session configuration
	Session session.Config

	// SmartUI server configuration
	SmartUI smartui.Config

	// URL is the page to snapshot.
	URL string

	// SnapshotName labels the snapshot.
	SnapshotName string

	// SnapshotOptions are handed verbatim to the serializer and server.
	SnapshotOptions smartui.Options

	LogLevel logging.Level

	// UsedFallbackCredentials is set when LT_USERNAME or LT_ACCESS_KEY was
	// missing and a placeholder was used instead.
	UsedFallbackCredentials bool
}

// DefaultConfig returns a Config populated with the defaults of a remote run
// with placeholder credentials.
func DefaultConfig() *Config {
	sess, _ := session.NewRemoteConfig(session.FallbackUsername, session.FallbackAccessKey)
	return &Config{
		Session:                 sess,
		SmartUI:                 smartui.DefaultConfig(),
		URL:                     cli.DefaultURL,
		SnapshotName:            cli.DefaultSnapshotName,
		LogLevel:                logging.LevelInfo,
		UsedFallbackCredentials: true,
	}
}

// LoadConfig builds the Config for args, reading the environment through
// lookup. An unknown log level falls back to info.
func LoadConfig(args *cli.CLIArgs, lookup session.LookupFunc) (*Config, error) {
	if args == nil {
		return nil, fmt.Errorf("%w: no arguments", session.ErrConfig)
	}

	cfg := DefaultConfig()
	cfg.URL = args.URL
	cfg.SnapshotName = args.SnapshotName

	variant := session.Variant(args.Mode)
	sess, err := session.BuildConfig(variant, lookup)
	if err != nil {
		return nil, err
	}
	switch variant {
	case session.VariantRemote:
		_, _, cfg.UsedFallbackCredentials = session.CredentialsFromEnv(lookup)
	case session.VariantLocal:
		sess.Headless = args.Headless
		cfg.UsedFallbackCredentials = false
	}
	cfg.Session = sess

	cfg.SmartUI = smartui.ConfigFromEnv(lookup)

	if lookup != nil {
		if v, ok := lookup(EnvLogLevel); ok {
			if lvl, err := logging.ParseLevel(v); err == nil {
				cfg.LogLevel = lvl
			}
		}
	}
	return cfg, nil
}
