package publish_test

import (
	"testing"

	"github.com/arthur-debert/homebrew-automation/pkg/errors"
	"github.com/arthur-debert/homebrew-automation/pkg/publish"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_Publish(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := publish.NewPublisher(fs, "/out/bottles")

	artifact, err := p.Publish("foo-1.0.el_capitan.bottle.tar.gz", []byte("hello"))
	require.NoError(t, err)

	assert.Equal(t, publish.Artifact{
		Filename: "foo-1.0.el_capitan.bottle.tar.gz",
		Path:     "/out/bottles/foo-1.0.el_capitan.bottle.tar.gz",
		SHA256:   "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		Size:     5,
	}, artifact)

	data, err := afero.ReadFile(fs, artifact.Path)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestPublisher_Publish_UnsafeNames(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := publish.NewPublisher(fs, "/out")

	for _, name := range []string{"", ".", "..", "../escape.tar.gz", "/etc/passwd", `dir\file`, "a/b.tar.gz"} {
		_, err := p.Publish(name, []byte("x"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), name)
	}

	exists, err := afero.DirExists(fs, "/out")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPublisher_Publish_ReadOnly(t *testing.T) {
	p := publish.NewPublisher(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/out")
	_, err := p.Publish("foo.tar.gz", []byte("x"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", publish.Checksum(nil))
}
