package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/arthur-debert/homebrew-automation/pkg/bottle"
	"github.com/arthur-debert/homebrew-automation/pkg/errors"
	"github.com/arthur-debert/homebrew-automation/pkg/publish"
	"github.com/arthur-debert/homebrew-automation/pkg/ui"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wireReport = `{"easoncxz/tap/wire": {"bottle": {"tags": {"el_capitan": {
  "local_filename": "wire--0.1.0.el_capitan.bottle.tar.gz",
  "filename": "wire-0.1.0.el_capitan.bottle.tar.gz"
}}}}}`

// stubBrew succeeds at everything except what its error fields say.
type stubBrew struct {
	installErr error
	untapErr   error
	untapped   int
}

func (s *stubBrew) Tap(context.Context, string, string) error { return nil }

func (s *stubBrew) Untap(context.Context, string) error {
	s.untapped++
	return s.untapErr
}

func (s *stubBrew) List(context.Context, []string, string) (bool, error) { return false, nil }

func (s *stubBrew) Uninstall(context.Context, []string, string) error { return nil }

func (s *stubBrew) Install(context.Context, []string, string) error { return s.installErr }

func (s *stubBrew) Bottle(context.Context, []string, string) (string, error) {
	return wireReport, nil
}

func buildWith(t *testing.T, b *stubBrew) (string, afero.Fs, error) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/wire--0.1.0.el_capitan.bottle.tar.gz", []byte("bottle"), 0644))

	builder := bottle.NewBuilder(bottle.Spec{
		TapName:     "easoncxz/tap",
		TapURL:      "https://github.com/easoncxz/homebrew-tap.git",
		FormulaName: "wire",
		OSName:      "el_capitan",
	}, b, bottle.NewFSFinder(fs, "/work"))

	var out bytes.Buffer
	renderer, err := ui.NewRenderer(ui.FormatText, &out)
	require.NoError(t, err)

	err = buildAndPublish(context.Background(), builder, publish.NewPublisher(fs, "/out"), renderer)
	return out.String(), fs, err
}

func TestBuildAndPublish_Success(t *testing.T) {
	b := &stubBrew{}
	out, fs, err := buildWith(t, b)
	require.NoError(t, err)

	assert.Contains(t, out, "wire-0.1.0.el_capitan.bottle.tar.gz\n")
	assert.Contains(t, out, "sha256: "+publish.Checksum([]byte("bottle")))
	assert.Equal(t, 1, b.untapped)

	data, err := afero.ReadFile(fs, "/out/wire-0.1.0.el_capitan.bottle.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, []byte("bottle"), data)
}

func TestBuildAndPublish_UntapFailsAfterPublish(t *testing.T) {
	b := &stubBrew{untapErr: errors.New(errors.ErrCommandFailed, "untap exploded")}
	out, _, err := buildWith(t, b)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
	assert.Contains(t, out, "sha256: "+publish.Checksum([]byte("bottle")),
		"the published artifact is still reported")
}

func TestBuildAndPublish_BuildFails(t *testing.T) {
	b := &stubBrew{installErr: errors.New(errors.ErrCommandFailed, "compile error")}
	out, fs, err := buildWith(t, b)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile error")
	assert.Empty(t, out)
	assert.Equal(t, 1, b.untapped)

	exists, err := afero.DirExists(fs, "/out")
	require.NoError(t, err)
	assert.False(t, exists)
}
