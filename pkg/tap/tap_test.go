package tap_test

import (
	"testing"

	"github.com/arthur-debert/homebrew-automation/pkg/errors"
	"github.com/arthur-debert/homebrew-automation/pkg/tap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"easoncxz/tap", "easoncxz/tap"},
		{"easoncxz/homebrew-tap", "easoncxz/tap"},
		{"some-org/my.tools", "some-org/my.tools"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := tap.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.String())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "tap", "a/b/c", "/tap", "user/", "user/homebrew-", "us er/tap"} {
		_, err := tap.Parse(input)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), input)
	}
}

func TestFromRepository(t *testing.T) {
	n, err := tap.FromRepository("easoncxz/homebrew-tap")
	require.NoError(t, err)
	assert.Equal(t, tap.Name{User: "easoncxz", Repo: "tap"}, n)

	_, err = tap.FromRepository("easoncxz/tap")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestName_URL(t *testing.T) {
	n := tap.Name{User: "easoncxz", Repo: "tap"}
	assert.Equal(t, "easoncxz/homebrew-tap", n.Repository())
	assert.Equal(t, "https://github.com/easoncxz/homebrew-tap.git", n.URL())
}

func TestFromURL(t *testing.T) {
	for _, input := range []string{
		"https://github.com/easoncxz/homebrew-tap.git",
		"https://github.com/easoncxz/homebrew-tap",
		"https://GitHub.com/easoncxz/homebrew-tap/",
	} {
		n, err := tap.FromURL(input)
		require.NoError(t, err, input)
		assert.Equal(t, tap.Name{User: "easoncxz", Repo: "tap"}, n, input)
	}

	for _, input := range []string{
		"/some/path/to/my-git-repo",
		"https://gitlab.com/easoncxz/homebrew-tap.git",
		"https://github.com/easoncxz/tap.git",
		"https://github.com/easoncxz/homebrew-tap/extra.git",
	} {
		_, err := tap.FromURL(input)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), input)
	}

	n := tap.Name{User: "easoncxz", Repo: "tap"}
	roundTrip, err := tap.FromURL(n.URL())
	require.NoError(t, err)
	assert.Equal(t, n, roundTrip)
}
