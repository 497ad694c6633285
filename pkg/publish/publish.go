// Package publish stores built bottles and records their checksums.
package publish

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/homebrew-automation/pkg/errors"
	"github.com/arthur-debert/homebrew-automation/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Artifact describes a published bottle.
type Artifact struct {
	Filename string `json:"filename" yaml:"filename"`
	Path     string `json:"path" yaml:"path"`
	SHA256   string `json:"sha256" yaml:"sha256"`
	Size     int64  `json:"size" yaml:"size"`
}

// Publisher writes bottles into a directory.
type Publisher struct {
	fs     afero.Fs
	dir    string
	logger zerolog.Logger
}

// NewPublisher creates a Publisher writing into dir.
func NewPublisher(fs afero.Fs, dir string) *Publisher {
	return &Publisher{
		fs:     fs,
		dir:    dir,
		logger: logging.GetLogger("publish"),
	}
}

// Publish writes contents to dir/filename. filename comes from the bottle
// report and must be a plain file name.
func (p *Publisher) Publish(filename string, contents []byte) (Artifact, error) {
	if err := validateFilename(filename); err != nil {
		return Artifact{}, err
	}

	if err := p.fs.MkdirAll(p.dir, 0755); err != nil {
		return Artifact{}, errors.Wrapf(err, errors.ErrFileWrite, "cannot create output directory %s", p.dir)
	}

	path := filepath.Join(p.dir, filename)
	if err := afero.WriteFile(p.fs, path, contents, 0644); err != nil {
		return Artifact{}, errors.Wrapf(err, errors.ErrFileWrite, "cannot write bottle %s", path)
	}

	artifact := Artifact{
		Filename: filename,
		Path:     path,
		SHA256:   Checksum(contents),
		Size:     int64(len(contents)),
	}
	p.logger.Info().
		Str("path", artifact.Path).
		Str("sha256", artifact.SHA256).
		Int64("size", artifact.Size).
		Msg("Published bottle")
	return artifact, nil
}

// Checksum returns the hex sha256 of data, as used in formula files.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func validateFilename(filename string) error {
	if filename == "" || filename == "." || filename == ".." ||
		strings.ContainsAny(filename, `/\`) || filename != filepath.Base(filename) {
		return errors.Newf(errors.ErrInvalidInput, "refusing to publish to unsafe filename %q", filename)
	}
	return nil
}
