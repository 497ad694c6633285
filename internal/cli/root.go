// Package cli wires the homebrew-automation packages into cobra commands.
package cli

import (
	"os"

	"github.com/arthur-debert/homebrew-automation/internal/version"
	"github.com/arthur-debert/homebrew-automation/pkg/config"
	"github.com/arthur-debert/homebrew-automation/pkg/errors"
	"github.com/arthur-debert/homebrew-automation/pkg/logging"
	"github.com/arthur-debert/homebrew-automation/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// rootOptions holds the global flags shared by every subcommand.
type rootOptions struct {
	verbosity  int
	configPath string
	format     string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "homebrew-automation",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, "no command specified")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "", MsgFlagFormat)

	rootCmd.AddCommand(newPutSdistCmd())
	rootCmd.AddCommand(newPutBottleCmd())
	rootCmd.AddCommand(newBuildBottleCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// Execute runs the root command, reports a failure on stderr and returns
// the process exit code.
func Execute() int {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		renderFailure(rootCmd, err)
		return 1
	}
	return 0
}

func renderFailure(rootCmd *cobra.Command, err error) {
	format := ui.FormatAuto
	if flag := rootCmd.PersistentFlags().Lookup("format"); flag != nil {
		if f, perr := ui.ParseFormat(flag.Value.String()); perr == nil {
			format = f
		}
	}
	r, rerr := ui.NewRenderer(format, os.Stderr)
	if rerr != nil {
		r, _ = ui.NewRenderer(ui.FormatText, os.Stderr)
	}
	_ = r.RenderError(err)
}

// loadConfig layers the flags in keys (flag name to config key) that the
// user set explicitly over the other configuration sources.
func (o *rootOptions) loadConfig(cmd *cobra.Command, keys map[string]string) (*config.Config, error) {
	overrides := map[string]interface{}{}
	if flag := cmd.Flags().Lookup("format"); flag != nil && flag.Changed {
		overrides["output.format"] = flag.Value.String()
	}
	for name, key := range keys {
		if flag := cmd.Flags().Lookup(name); flag != nil && flag.Changed {
			overrides[key] = flag.Value.String()
		}
	}
	return config.Load(config.Options{Path: o.configPath, Overrides: overrides})
}

func newRenderer(cmd *cobra.Command, cfg *config.Config) (ui.Renderer, error) {
	format, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// flagRenderer builds a renderer from --format alone, for commands that run
// without loading the configuration.
func flagRenderer(cmd *cobra.Command, opts *rootOptions) (ui.Renderer, error) {
	format, err := ui.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}
