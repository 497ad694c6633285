package bottle

import (
	"encoding/json"
	"strconv"

	"github.com/arthur-debert/homebrew-automation/pkg/errors"
)

// Leaf fields of a bottle tag entry.
const (
	fieldLocalFilename = "local_filename"
	fieldFilename      = "filename"
)

// Report is a parsed bottle report. Its shape is not trusted; see Lookup.
type Report struct {
	doc any
}

// LookupResult is the outcome of walking a key path through a Report.
// Exactly one of Found or MissingKey is meaningful.
type LookupResult struct {
	Found bool
	Value any
	// MissingKey is the first key that could not be followed and Depth its
	// index in the path.
	MissingKey string
	Depth      int
}

// ParseReport decodes the text written by `brew bottle --json`.
func ParseReport(text string) (*Report, error) {
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrBottleFormat, "error parsing bottle JSON").
			WithDetail(errors.DetailOriginal, text)
	}
	return &Report{doc: doc}, nil
}

// Document returns the decoded tree.
func (r *Report) Document() any {
	return r.doc
}

// Lookup follows keys from the document root. Maps are indexed by key and
// arrays by decimal index; scalars cannot be followed.
func (r *Report) Lookup(keys ...string) LookupResult {
	return lookup(r.doc, keys, 0)
}

func lookup(node any, keys []string, depth int) LookupResult {
	if depth == len(keys) {
		return LookupResult{Found: true, Value: node}
	}
	key := keys[depth]
	missing := LookupResult{MissingKey: key, Depth: depth}

	switch n := node.(type) {
	case map[string]any:
		child, ok := n[key]
		if !ok || child == nil {
			return missing
		}
		return lookup(child, keys, depth+1)
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(n) || n[i] == nil {
			return missing
		}
		return lookup(n[i], keys, depth+1)
	default:
		return missing
	}
}

// TarballPath returns where brew wrote the bottle for formula and osName, and
// the filename it should be published under.
func (r *Report) TarballPath(formula, osName string) (localFilename, filename string, err error) {
	res := r.Lookup(formula, "bottle", "tags", osName)
	if !res.Found {
		return "", "", errors.Newf(errors.ErrBottleFormat,
			"unexpected JSON structure, couldn't find key: %s", res.MissingKey).
			WithDetail("key", res.MissingKey).
			WithDetail("depth", res.Depth).
			WithDetail(errors.DetailOriginal, r.doc)
	}

	tag, ok := res.Value.(map[string]any)
	if !ok {
		return "", "", errors.Newf(errors.ErrBottleFormat,
			"unexpected JSON structure, tag %s is not an object", osName).
			WithDetail(errors.DetailOriginal, r.doc)
	}

	localFilename, okLocal := tag[fieldLocalFilename].(string)
	filename, okName := tag[fieldFilename].(string)
	if !okLocal || !okName {
		return "", "", errors.Newf(errors.ErrBottleFormat,
			"unexpected JSON structure, couldn't find both `%s` and `%s` keys: %v, %v",
			fieldLocalFilename, fieldFilename, tag[fieldLocalFilename], tag[fieldFilename]).
			WithDetail(errors.DetailOriginal, r.doc)
	}
	return localFilename, filename, nil
}

// ResolveTarball parses text and resolves the tarball for formula and osName.
func ResolveTarball(text, formula, osName string) (localFilename, filename string, err error) {
	report, err := ParseReport(text)
	if err != nil {
		return "", "", err
	}
	return report.TarballPath(formula, osName)
}
