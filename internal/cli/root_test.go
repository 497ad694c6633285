package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/homebrew-automation/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const formulaText = `class Wire < Formula
  url "https://example.com/wire-0.1.0.tar.gz"
  sha256 "AAAA"

  def install
    bin.install "wire"
  end
end
`

var sum = strings.Repeat("b", 64)

// run executes the root command with args and stdin, isolated from the
// user's config and state directories.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestNoCommand(t *testing.T) {
	_, err := run(t, "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestPutSdistCmd(t *testing.T) {
	out, err := run(t, formulaText, "put-sdist", "--url", "https://example.com/wire-0.2.0.tar.gz", "--sha256", sum)
	require.NoError(t, err)

	assert.Contains(t, out, `  url "https://example.com/wire-0.2.0.tar.gz"`)
	assert.Contains(t, out, `  sha256 "`+sum+`"`)
	assert.NotContains(t, out, "AAAA")
}

func TestPutSdistCmd_RequiresFlags(t *testing.T) {
	_, err := run(t, formulaText, "put-sdist", "--url", "https://example.com/x.tar.gz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sha256")
}

func TestPutSdistCmd_NotAFormula(t *testing.T) {
	_, err := run(t, "puts 'hello'\n", "put-sdist", "--url", "https://example.com/x.tar.gz", "--sha256", sum)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFormulaParse))
}

func TestPutBottleCmd(t *testing.T) {
	out, err := run(t, formulaText, "put-bottle", "--os", "el_capitan", "--sha256", sum)
	require.NoError(t, err)

	assert.Contains(t, out, "bottle do")
	assert.Contains(t, out, `el_capitan: "`+sum+`"`)
}

func TestBuildBottleCmd_MissingSettings(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "os given", args: []string{"build-bottle", "--os", "el_capitan"}},
		// The OS is detected only after the inputs are known to be complete,
		// so this reports the missing settings even off macOS.
		{name: "os left to detection", args: []string{"build-bottle"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
			assert.Equal(t,
				[]string{"bottle.tap_name", "bottle.formula"},
				errors.GetErrorDetails(err)["missing"])
		})
	}
}

func TestBuildBottleCmd_TapFromURL(t *testing.T) {
	// An unknown format fails after the settings validated, so reaching it
	// shows the tap name was derived from the URL.
	_, err := run(t, "", "build-bottle", "--os", "el_capitan", "--formula", "wire",
		"--tap-url", "https://github.com/easoncxz/homebrew-tap.git", "--format", "xml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "unknown format")
}

func TestBuildBottleCmd_InvalidTap(t *testing.T) {
	_, err := run(t, "", "build-bottle", "--os", "el_capitan", "--formula", "wire", "--tap", "not-a-tap")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestBuildBottleCmd_InvalidFormat(t *testing.T) {
	_, err := run(t, "", "build-bottle", "--os", "el_capitan", "--formula", "wire",
		"--tap", "easoncxz/tap", "--format", "xml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestConfigShowCmd(t *testing.T) {
	t.Run("toml", func(t *testing.T) {
		t.Setenv("HOMEBREW_AUTOMATION_BOTTLE__FORMULA", "wire-hs")
		out, err := run(t, "", "config", "show")
		require.NoError(t, err)
		assert.Contains(t, out, "[bottle]")
		assert.Contains(t, out, "wire-hs")
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "", "config", "show", "--format", "json")
		require.NoError(t, err)

		var got map[string]map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "brew", got["brew"]["path"])
		assert.Equal(t, "json", got["output"]["format"])
	})
}

func TestConfigInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, err := run(t, "", "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+path+"\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# tap_name = \"\"")

	_, err = run(t, "", "config", "init", "--config", path)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))

	out, err = run(t, "", "config", "init", "--config", path, "--force", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Wrote `+path+`"}`, out)
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "homebrew-automation version dev")
}

func TestCompletionCmd(t *testing.T) {
	out, err := run(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "homebrew-automation")

	_, err = run(t, "", "completion", "tcsh")
	assert.Error(t, err)
}
