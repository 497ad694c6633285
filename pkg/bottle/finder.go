package bottle

import (
	"path/filepath"

	"github.com/arthur-debert/homebrew-automation/pkg/errors"
	"github.com/spf13/afero"
)

// Finder reads the tarball named by a bottle report.
type Finder interface {
	ReadTarball(path string) ([]byte, error)
}

// FSFinder reads tarballs from a filesystem. Relative paths are resolved
// against Dir, the directory `brew bottle` ran in.
type FSFinder struct {
	fs  afero.Fs
	dir string
}

// NewFSFinder creates a Finder rooted at dir.
func NewFSFinder(fs afero.Fs, dir string) *FSFinder {
	return &FSFinder{fs: fs, dir: dir}
}

func (f *FSFinder) ReadTarball(path string) ([]byte, error) {
	if !filepath.IsAbs(path) && f.dir != "" {
		path = filepath.Join(f.dir, path)
	}
	info, err := f.fs.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read bottle tarball %s", path)
	}
	if info.IsDir() {
		return nil, errors.Newf(errors.ErrFileAccess, "bottle tarball %s is a directory", path)
	}
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read bottle tarball %s", path)
	}
	return data, nil
}
