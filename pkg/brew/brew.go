// Package brew exposes the Homebrew operations the bottle pipeline needs.
//
// Brew is the seam between the pipeline and the real `brew` binary: the
// CLI implementation shells out through a command.Runner, tests substitute
// a fake.
package brew

import "context"

// Flags passed to brew subcommands.
const (
	FlagForce       = "--force"
	FlagVerbose     = "--verbose"
	FlagBuildBottle = "--build-bottle"
	FlagKeepTmp     = "--keep-tmp"
	FlagJSON        = "--json"
	FlagNoRebuild   = "--no-rebuild"
)

// Brew is the set of side-effecting Homebrew operations. Every call blocks
// until the underlying process exits.
type Brew interface {
	// Tap registers a tap, cloning it from url.
	Tap(ctx context.Context, name, url string) error
	// Untap removes a tap. Used for cleanup, so it should tolerate a
	// tap that is already gone.
	Untap(ctx context.Context, name string) error
	// List reports whether formula is installed.
	List(ctx context.Context, args []string, formula string) (bool, error)
	Uninstall(ctx context.Context, args []string, formula string) error
	Install(ctx context.Context, args []string, formula string) error
	// Bottle runs `brew bottle` and returns the JSON report it writes.
	Bottle(ctx context.Context, args []string, formula string) (string, error)
}
