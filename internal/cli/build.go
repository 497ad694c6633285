package cli

import (
	"context"

	"github.com/arthur-debert/homebrew-automation/pkg/bottle"
	"github.com/arthur-debert/homebrew-automation/pkg/brew"
	"github.com/arthur-debert/homebrew-automation/pkg/command"
	"github.com/arthur-debert/homebrew-automation/pkg/config"
	"github.com/arthur-debert/homebrew-automation/pkg/logging"
	"github.com/arthur-debert/homebrew-automation/pkg/macos"
	"github.com/arthur-debert/homebrew-automation/pkg/publish"
	"github.com/arthur-debert/homebrew-automation/pkg/tap"
	"github.com/arthur-debert/homebrew-automation/pkg/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// bottleFlags maps build-bottle flags to their configuration keys.
var bottleFlags = map[string]string{
	"tap":        "bottle.tap_name",
	"tap-url":    "bottle.tap_url",
	"formula":    "bottle.formula",
	"os":         "bottle.os",
	"keep-tmp":   "bottle.keep_tmp",
	"output-dir": "bottle.output_dir",
	"work-dir":   "bottle.work_dir",
}

func newBuildBottleCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build-bottle",
		Short: MsgBuildBottleShort,
		Long:  MsgBuildBottleLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd, bottleFlags)
			if err != nil {
				return err
			}
			return runBuildBottle(cmd, cfg)
		},
	}

	// Defaults live in the config layer; only explicitly set flags override it.
	cmd.Flags().String("tap", "", MsgFlagTap)
	cmd.Flags().String("tap-url", "", MsgFlagTapURL)
	cmd.Flags().String("formula", "", MsgFlagFormula)
	cmd.Flags().String("os", "", MsgFlagOS)
	cmd.Flags().Bool("keep-tmp", false, MsgFlagKeepTmp)
	cmd.Flags().String("output-dir", "", MsgFlagOutputDir)
	cmd.Flags().String("work-dir", "", MsgFlagWorkDir)

	return cmd
}

func runBuildBottle(cmd *cobra.Command, cfg *config.Config) error {
	ctx := cmd.Context()
	settings := cfg.Bottle

	if settings.TapName == "" && settings.TapURL != "" {
		if name, err := tap.FromURL(settings.TapURL); err == nil {
			settings.TapName = name.String()
		}
	}
	// Report missing inputs before probing the machine for derived ones.
	if err := settings.ValidateInputs(); err != nil {
		return err
	}

	name, err := tap.Parse(settings.TapName)
	if err != nil {
		return err
	}
	// brew keys the bottle report by the short tap name.
	settings.TapName = name.String()
	if settings.TapURL == "" {
		settings.TapURL = name.URL()
	}
	if settings.OS == "" {
		osName, err := macos.Identify(ctx, command.NewExecRunner())
		if err != nil {
			return err
		}
		settings.OS = osName
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	renderer, err := newRenderer(cmd, cfg)
	if err != nil {
		return err
	}

	runner := command.NewExecRunner()
	if cfg.Brew.StreamOutput {
		runner = runner.WithOutput(cmd.ErrOrStderr(), cmd.ErrOrStderr())
	}

	fs := afero.NewOsFs()
	brewCLI := brew.NewCLI(runner,
		brew.WithBinary(cfg.Brew.Path),
		brew.WithWorkDir(settings.WorkDir),
		brew.WithFS(fs),
	)
	builder := bottle.NewBuilder(bottle.Spec{
		TapName:     settings.TapName,
		TapURL:      settings.TapURL,
		FormulaName: settings.Formula,
		OSName:      settings.OS,
		KeepTmp:     settings.KeepTmp,
	}, brewCLI, bottle.NewFSFinder(fs, brewCLI.WorkDir()))

	logger := logging.WithFields(map[string]interface{}{
		"component": "cli.build-bottle",
		"formula":   builder.Spec().QualifiedFormulaName(),
		"os":        settings.OS,
		"outputDir": settings.OutputDir,
	})
	logger.Info().Msg("Building bottle")

	return buildAndPublish(ctx, builder, publish.NewPublisher(fs, settings.OutputDir), renderer)
}

// buildAndPublish renders the artifact whenever it was published, even when
// the build then fails to clean up, since its checksum is needed to update
// the formula.
func buildAndPublish(ctx context.Context, builder *bottle.Builder, publisher *publish.Publisher, renderer ui.Renderer) error {
	var (
		artifact  publish.Artifact
		published bool
	)
	err := builder.Build(ctx, func(filename string, contents []byte) error {
		a, err := publisher.Publish(filename, contents)
		if err != nil {
			return err
		}
		artifact, published = a, true
		return nil
	})
	if !published {
		return err
	}

	if renderErr := renderer.RenderResult(artifact); renderErr != nil && err == nil {
		return renderErr
	}
	return err
}
