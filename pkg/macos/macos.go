// Package macos maps macOS releases to the names Homebrew uses for bottle
// tags.
package macos

import (
	"context"
	"strings"

	"github.com/arthur-debert/homebrew-automation/pkg/command"
	"github.com/arthur-debert/homebrew-automation/pkg/errors"
)

// Before Big Sur the release is identified by major.minor, after it by
// major alone.
var names = map[string]string{
	"10.9":  "mavericks",
	"10.10": "yosemite",
	"10.11": "el_capitan",
	"10.12": "sierra",
	"10.13": "high_sierra",
	"10.14": "mojave",
	"10.15": "catalina",
	"11":    "big_sur",
	"12":    "monterey",
	"13":    "ventura",
	"14":    "sonoma",
	"15":    "sequoia",
	"26":    "tahoe",
}

// NameForVersion returns the Homebrew name of a macOS product version such
// as "10.11.6" or "14.2.1".
func NameForVersion(version string) (string, error) {
	parts := strings.Split(strings.TrimSpace(version), ".")
	key := parts[0]
	if key == "10" && len(parts) > 1 {
		key += "." + parts[1]
	}
	name, ok := names[key]
	if !ok {
		return "", errors.Newf(errors.ErrUnsupportedOS, "unknown macOS version: %q", version)
	}
	return name, nil
}

// Identify asks sw_vers for the running macOS version and returns its
// Homebrew name.
func Identify(ctx context.Context, runner command.Runner) (string, error) {
	res, err := runner.Run(ctx, command.Cmd{Name: "sw_vers", Args: []string{"-productVersion"}})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrUnsupportedOS, "cannot determine macOS version")
	}
	return NameForVersion(res.Stdout)
}
