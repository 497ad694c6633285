package brew

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/homebrew-automation/pkg/command"
	"github.com/arthur-debert/homebrew-automation/pkg/errors"
	"github.com/arthur-debert/homebrew-automation/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// DefaultBinary is the brew executable looked up on PATH.
const DefaultBinary = "brew"

// reportPattern matches the files written by `brew bottle --json`.
const reportPattern = "*.bottle.json"

// CLI implements Brew by running the brew executable.
type CLI struct {
	runner  command.Runner
	fs      afero.Fs
	binary  string
	workDir string
	logger  zerolog.Logger
}

// Option configures a CLI.
type Option func(*CLI)

// WithBinary overrides the brew executable.
func WithBinary(path string) Option {
	return func(c *CLI) {
		if path != "" {
			c.binary = path
		}
	}
}

// WithWorkDir sets the directory `brew bottle` runs in and where its
// report and tarball are written.
func WithWorkDir(dir string) Option {
	return func(c *CLI) {
		c.workDir = dir
	}
}

// WithFS sets the filesystem used to locate the bottle report.
func WithFS(fs afero.Fs) Option {
	return func(c *CLI) {
		c.fs = fs
	}
}

// NewCLI creates a Brew backed by runner.
func NewCLI(runner command.Runner, opts ...Option) *CLI {
	c := &CLI{
		runner: runner,
		fs:     afero.NewOsFs(),
		binary: DefaultBinary,
		logger: logging.GetLogger("brew"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WorkDir returns the directory bottles are written to.
func (c *CLI) WorkDir() string {
	return c.workDir
}

func (c *CLI) run(ctx context.Context, args ...string) (command.Result, error) {
	return c.runner.Run(ctx, command.Cmd{
		Name: c.binary,
		Args: args,
		Dir:  c.workDir,
	})
}

func (c *CLI) Tap(ctx context.Context, name, url string) error {
	c.logger.Info().Str("tap", name).Str("url", url).Msg("Tapping")
	_, err := c.run(ctx, "tap", name, url)
	return err
}

func (c *CLI) Untap(ctx context.Context, name string) error {
	c.logger.Info().Str("tap", name).Msg("Untapping")
	_, err := c.run(ctx, "untap", name)
	return err
}

// List treats a non-zero exit as "not installed". brew prints an error
// to stderr in that case, which is expected.
func (c *CLI) List(ctx context.Context, args []string, formula string) (bool, error) {
	res, err := c.run(ctx, subcommand("list", args, formula)...)
	if err != nil {
		if res.ExitCode > 0 {
			c.logger.Debug().Str("formula", formula).Msg("Formula not installed")
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *CLI) Uninstall(ctx context.Context, args []string, formula string) error {
	c.logger.Info().Str("formula", formula).Strs("args", args).Msg("Uninstalling")
	_, err := c.run(ctx, subcommand("uninstall", args, formula)...)
	return err
}

func (c *CLI) Install(ctx context.Context, args []string, formula string) error {
	c.logger.Info().Str("formula", formula).Strs("args", args).Msg("Installing from source")
	defer logging.LogOperationStart(c.logger, "brew install")()
	_, err := c.run(ctx, subcommand("install", args, formula)...)
	return err
}

func (c *CLI) Bottle(ctx context.Context, args []string, formula string) (string, error) {
	c.logger.Info().Str("formula", formula).Strs("args", args).Msg("Bottling")
	if _, err := c.run(ctx, subcommand("bottle", args, formula)...); err != nil {
		return "", err
	}
	return c.readReport()
}

// readReport returns the first bottle report in the work directory.
func (c *CLI) readReport() (string, error) {
	dir := c.workDir
	if dir == "" {
		dir = "."
	}
	matches, err := afero.Glob(c.fs, filepath.Join(dir, reportPattern))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "failed to search for bottle report")
	}
	if len(matches) == 0 {
		return "", errors.Newf(errors.ErrNotFound, "no %s file in %s", reportPattern, dir)
	}
	sort.Strings(matches)
	if len(matches) > 1 {
		c.logger.Warn().Strs("reports", matches).Msg("Several bottle reports found, using the first")
	}

	data, err := afero.ReadFile(c.fs, matches[0])
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", matches[0])
	}
	c.logger.Debug().Str("report", matches[0]).Msg("Read bottle report")
	return string(data), nil
}

func subcommand(name string, args []string, formula string) []string {
	out := make([]string, 0, len(args)+2)
	out = append(out, name)
	out = append(out, args...)
	return append(out, formula)
}

var _ Brew = (*CLI)(nil)
