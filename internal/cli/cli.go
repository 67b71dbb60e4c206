package cli

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"strings"
)

const (
	DefaultURL          = "https://www.lambdatest.com"
	DefaultSnapshotName = "screenshot"
)

// CLIArgs are the command-line arguments for a single run. With no flags
// they describe a remote run that snapshots DefaultURL as DefaultSnapshotName.
type CLIArgs struct {
	// Mode is "remote" (WebDriver hub) or "local" (Chrome on this host).
	Mode string

	// URL is the page to navigate to before the snapshot.
	URL string

	// SnapshotName labels the snapshot on the SmartUI server.
	SnapshotName string

	// Headless hides the local browser window; ignored for remote runs.
	Headless bool

	// RawArgs is the original args slice (useful for debugging/tests).
	RawArgs []string
}

// ParseArgs parses a slice of args and returns CLIArgs. Use in tests by passing
// arbitrary slices. The function is deterministic and does not read os.Args.
func ParseArgs(args []string) (*CLIArgs, error) {
	fs := flag.NewFlagSet("smartshot", flag.ContinueOnError)
	var (
		mode     = fs.String("mode", "remote", "Session type: remote|local")
		target   = fs.String("url", DefaultURL, "Page to navigate to before taking the snapshot")
		name     = fs.String("name", DefaultSnapshotName, "Snapshot name")
		headless = fs.Bool("headless", false, "Run the local browser without a window")
	)

	// Ensure Parse doesn't write to stdout/stderr in tests
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		// Flag parsing errors are useful to return to caller
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	m := strings.ToLower(strings.TrimSpace(*mode))
	if m != "remote" && m != "local" {
		return nil, fmt.Errorf("invalid -mode %q: want remote or local", *mode)
	}

	u, err := url.Parse(strings.TrimSpace(*target))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid -url %q: must be an absolute url", *target)
	}

	if strings.TrimSpace(*name) == "" {
		return nil, fmt.Errorf("missing required -name argument")
	}

	return &CLIArgs{
		Mode:         m,
		URL:          u.String(),
		SnapshotName: *name,
		Headless:     *headless,
		RawArgs:      args,
	}, nil
}
