package bottle

import (
	"context"

	"github.com/arthur-debert/homebrew-automation/pkg/brew"
	"github.com/arthur-debert/homebrew-automation/pkg/effects"
	"github.com/arthur-debert/homebrew-automation/pkg/errors"
	"github.com/arthur-debert/homebrew-automation/pkg/logging"
	"github.com/rs/zerolog"
)

// DoneFunc receives a finished bottle: the filename Homebrew expects it to
// be published under, and the tarball contents.
type DoneFunc func(filename string, contents []byte) error

// Builder builds one bottle described by a Spec.
type Builder struct {
	spec   Spec
	brew   brew.Brew
	finder Finder
	logger zerolog.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(spec Spec, b brew.Brew, finder Finder) *Builder {
	return &Builder{
		spec:   spec,
		brew:   b,
		finder: finder,
		logger: logging.GetLogger("bottle.build").With().
			Str("formula", spec.QualifiedFormulaName()).
			Str("os", spec.OSName).
			Logger(),
	}
}

// Spec returns the bottle being built.
func (b *Builder) Spec() Spec {
	return b.spec
}

type tarball struct {
	localFilename string
	filename      string
}

// Build taps, installs with --build-bottle, bottles, and calls done once
// with the result. Unless you already built the formula on this machine
// this takes a long time.
//
// Once the tap succeeded it is always untapped before Build returns. A
// failed untap is returned only when everything else succeeded; otherwise
// it is logged and the original error is returned.
func (b *Builder) Build(ctx context.Context, done DoneFunc) (err error) {
	if done == nil {
		return errors.New(errors.ErrContractViolation, "bottle build requires a completion callback")
	}

	if tapErr := b.brew.Tap(ctx, b.spec.TapName, b.spec.TapURL); tapErr != nil {
		return tapErr
	}
	defer func() {
		untapErr := b.brew.Untap(context.WithoutCancel(ctx), b.spec.TapName)
		if untapErr == nil {
			return
		}
		if err != nil {
			b.logger.Error().Err(untapErr).Str("tap", b.spec.TapName).Msg("Failed to untap after failed build")
			return
		}
		err = errors.Wrapf(untapErr, errors.ErrCommandFailed, "failed to untap %s", b.spec.TapName)
	}()

	var filename string
	filename, err = effects.ForceAs[string](b.plan(ctx, done))
	if err != nil {
		b.logger.Debug().Err(err).Msg("Bottle build failed")
		return err
	}
	b.logger.Info().Str("filename", filename).Msg("Bottle delivered")
	return nil
}

func (b *Builder) plan(ctx context.Context, done DoneFunc) *effects.Eff {
	formula := b.spec.QualifiedFormulaName()

	plan := effects.FromComputation(func() (any, error) {
		return b.brew.List(ctx, nil, formula)
	})

	// --force removes every installed version.
	plan.ChainInPlace(func(installed any) *effects.Eff {
		if !installed.(bool) {
			return effects.Pure(nil)
		}
		return effects.FromComputation(func() (any, error) {
			return nil, b.brew.Uninstall(ctx, []string{brew.FlagForce}, formula)
		})
	})

	plan.TransformInPlace(func(any) (any, error) {
		return nil, b.brew.Install(ctx, b.installArgs(), formula)
	})

	plan.TransformInPlace(func(any) (any, error) {
		return b.brew.Bottle(ctx, []string{brew.FlagVerbose, brew.FlagJSON, brew.FlagNoRebuild}, formula)
	})

	plan.TransformInPlace(func(report any) (any, error) {
		local, filename, err := ResolveTarball(report.(string), formula, b.spec.OSName)
		if err != nil {
			return nil, err
		}
		b.logger.Info().Str("localFilename", local).Str("filename", filename).Msg("Located bottle")
		return tarball{localFilename: local, filename: filename}, nil
	})

	plan.TransformInPlace(func(v any) (any, error) {
		t := v.(tarball)
		contents, err := b.finder.ReadTarball(t.localFilename)
		if err != nil {
			return nil, err
		}
		if err := done(t.filename, contents); err != nil {
			return nil, err
		}
		return t.filename, nil
	})

	return plan
}

func (b *Builder) installArgs() []string {
	args := []string{brew.FlagVerbose, brew.FlagBuildBottle, brew.FlagForce}
	if b.spec.KeepTmp {
		args = append(args, brew.FlagKeepTmp)
	}
	return args
}
