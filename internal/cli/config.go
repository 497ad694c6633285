package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/homebrew-automation/pkg/config"
	"github.com/arthur-debert/homebrew-automation/pkg/errors"
	"github.com/arthur-debert/homebrew-automation/pkg/ui"
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
	}
	cmd.AddCommand(newConfigShowCmd(opts))
	cmd.AddCommand(newConfigInitCmd(opts))
	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd, nil)
			if err != nil {
				return err
			}

			format, err := ui.ParseFormat(cfg.Output.Format)
			if err != nil {
				return err
			}
			if format == ui.FormatJSON || format == ui.FormatYAML {
				r, err := ui.NewRenderer(format, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				return r.RenderResult(cfg)
			}

			out, err := config.Dump(cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: MsgConfigInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				path = filepath.Join(config.DefaultConfigDir(), "config.toml")
			}

			if _, err := os.Stat(path); err == nil && !force {
				return errors.Newf(errors.ErrFileWrite, "%s already exists, use --force to overwrite", path).
					WithDetail("path", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", filepath.Dir(path))
			}
			if err := os.WriteFile(path, []byte(config.GenerateConfigContent()), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
			}

			r, err := flagRenderer(cmd, opts)
			if err != nil {
				return err
			}
			return r.RenderMessage(fmt.Sprintf(MsgConfigWritten, path))
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}
