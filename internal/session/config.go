package session

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Variant tags a Config as remote (WebDriver hub) or local (Chrome on this host).
type Variant string

const (
	VariantRemote Variant = "remote"
	VariantLocal  Variant = "local"
)

const (
	// DefaultHubURL is the WebDriver hub remote sessions are created on.
	DefaultHubURL = "https://hub.lambdatest.com/wd/hub"

	EnvUsername  = "LT_USERNAME"
	EnvAccessKey = "LT_ACCESS_KEY"

	// Fallbacks used when the credential variables are unset. They are
	// placeholders and will be rejected by the hub.
	FallbackUsername  = "USERNAME"
	FallbackAccessKey = "ACCESS_KEY"

	// OptionsKey is the vendor capability the hub options are nested under.
	OptionsKey = "LT:Options"
)

// LookupFunc reads an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// Options is the vendor option block sent to the hub under OptionsKey.
type Options struct {
	Username    string
	AccessKey   string
	Project     string
	SessionName string
	Build       string
	W3C         bool
	Plugin      string
}

// Map renders the options with the hub's key names.
func (o Options) Map() map[string]any {
	return map[string]any{
		"username":    o.Username,
		"accessKey":   o.AccessKey,
		"project":     o.Project,
		"sessionName": o.SessionName,
		"build":       o.Build,
		"w3c":         o.W3C,
		"plugin":      o.Plugin,
	}
}

// Config describes the browser session to open. It is treated as immutable
// once handed to Open.
type Config struct {
	Variant Variant

	// Browser is the browser name, e.g. "chrome".
	Browser        string
	BrowserVersion string
	Platform       string

	// HubURL and Options only apply to VariantRemote.
	HubURL  string
	Options Options

	// PageLoadTimeout bounds a single navigation. Zero means the backend default.
	PageLoadTimeout time.Duration

	// IdleAfter is how long the local backend waits for network quiet after
	// a navigation before reporting it done.
	IdleAfter time.Duration

	// Headless only applies to VariantLocal.
	Headless bool
}

// CredentialsFromEnv returns the hub credentials and reports whether either
// fell back to its placeholder.
func CredentialsFromEnv(lookup LookupFunc) (username, accessKey string, usedFallback bool) {
	username, accessKey = FallbackUsername, FallbackAccessKey
	if lookup == nil {
		return username, accessKey, true
	}
	if v, ok := lookup(EnvUsername); ok && v != "" {
		username = v
	} else {
		usedFallback = true
	}
	if v, ok := lookup(EnvAccessKey); ok && v != "" {
		accessKey = v
	} else {
		usedFallback = true
	}
	return username, accessKey, usedFallback
}

// NewRemoteConfig returns the remote config used by cloud runs: Chrome 119 on
// Windows 10 with the given credentials.
func NewRemoteConfig(username, accessKey string) (Config, error) {
	cfg := Config{
		Variant:        VariantRemote,
		Browser:        "chrome",
		BrowserVersion: "119.0",
		Platform:       "Windows 10",
		HubURL:         DefaultHubURL,
		Options: Options{
			Username:    username,
			AccessKey:   accessKey,
			Project:     "Go SDK",
			SessionName: "Go Test",
			Build:       "Go Job",
			W3C:         true,
			Plugin:      "golang-golang",
		},
		PageLoadTimeout: 60 * time.Second,
	}
	return cfg, cfg.Validate()
}

// NewLocalConfig returns a local Chrome config.
func NewLocalConfig(headless bool) (Config, error) {
	cfg := Config{
		Variant:         VariantLocal,
		Browser:         "chrome",
		PageLoadTimeout: 60 * time.Second,
		IdleAfter:       2 * time.Second,
		Headless:        headless,
	}
	return cfg, cfg.Validate()
}

// BuildConfig builds the Config for variant, reading credentials through
// lookup for remote runs.
func BuildConfig(variant Variant, lookup LookupFunc) (Config, error) {
	switch variant {
	case VariantRemote:
		user, key, _ := CredentialsFromEnv(lookup)
		return NewRemoteConfig(user, key)
	case VariantLocal:
		return NewLocalConfig(false)
	default:
		return Config{}, fmt.Errorf("%w: unknown variant %q", ErrConfig, variant)
	}
}

// Validate checks the structure of the config. Credentials are not checked
// here; the hub is the authority on those.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Browser) == "" {
		return fmt.Errorf("%w: browser is required", ErrConfig)
	}
	if c.PageLoadTimeout < 0 || c.IdleAfter < 0 {
		return fmt.Errorf("%w: timeouts must not be negative", ErrConfig)
	}
	switch c.Variant {
	case VariantRemote:
		u, err := url.Parse(c.HubURL)
		if err != nil {
			return fmt.Errorf("%w: hub url: %w", ErrConfig, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: hub url %q must be an absolute http(s) url", ErrConfig, c.HubURL)
		}
	case VariantLocal:
		if !strings.EqualFold(c.Browser, "chrome") {
			return fmt.Errorf("%w: local sessions only support chrome, got %q", ErrConfig, c.Browser)
		}
	default:
		return fmt.Errorf("%w: unknown variant %q", ErrConfig, c.Variant)
	}
	return nil
}

// Capabilities renders the W3C capability payload for a remote session.
func (c Config) Capabilities() map[string]any {
	caps := map[string]any{
		"browserName": c.Browser,
		OptionsKey:    c.Options.Map(),
	}
	if c.BrowserVersion != "" {
		caps["browserVersion"] = c.BrowserVersion
	}
	if c.Platform != "" {
		caps["platformName"] = c.Platform
	}
	return caps
}
