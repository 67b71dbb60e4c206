package smartui

import "time"

const (
	// DefaultServerAddress is where the SmartUI CLI server listens by default.
	DefaultServerAddress = "http://localhost:8080"

	EnvServerAddress = "SMARTUI_SERVER_ADDRESS"

	// TestType identifies this client to the SmartUI server.
	TestType = "lambdatest-go-selenium-driver"
)

type Config struct {
	// ServerAddress is the base URL of the SmartUI CLI server.
	ServerAddress string

	// Timeout bounds each HTTP call to the server.
	Timeout time.Duration
}

// DefaultConfig returns the config used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		ServerAddress: DefaultServerAddress,
		Timeout:       30 * time.Second,
	}
}

// ConfigFromEnv applies SMARTUI_SERVER_ADDRESS on top of DefaultConfig.
func ConfigFromEnv(lookup func(string) (string, bool)) Config {
	cfg := DefaultConfig()
	if lookup == nil {
		return cfg
	}
	if v, ok := lookup(EnvServerAddress); ok && v != "" {
		cfg.ServerAddress = v
	}
	return cfg
}
