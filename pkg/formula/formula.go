// Package formula edits Homebrew formula source text.
//
// Only the lines being changed are touched; everything else, including
// comments and formatting, is preserved byte for byte.
package formula

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/homebrew-automation/pkg/errors"
)

var (
	classRe = regexp.MustCompile(`^\s*class\s+\w+\s*<\s*Formula\b`)
	openRe  = regexp.MustCompile(`(^\s*(class|module|def|if|unless|case|begin|while|until)\b)|(\bdo(\s*\|[^|]*\|)?\s*$)`)
	closeRe = regexp.MustCompile(`^\s*end\b`)
	// def x; 1; end
	inlineEndRe = regexp.MustCompile(`;\s*end\s*$`)
	// def caveats = "..."
	endlessDefRe = regexp.MustCompile(`^\s*def\s+[\w.]+[?!]?(\([^)]*\))?\s*=\s`)
	urlRe        = regexp.MustCompile(`^(\s*)url\s+"[^"]*"(.*)$`)
	sdistRe      = regexp.MustCompile(`^(\s*)sha256\s+"[^"]*"\s*$`)
	bottleRe     = regexp.MustCompile(`^(\s*)bottle\s+do\s*$`)

	// sha256 "abc..." => :el_capitan
	legacyTagRe = regexp.MustCompile(`^(\s*)sha256\s+"[^"]*"\s*=>\s*:(\w+)\s*$`)
	// sha256 cellar: :any, el_capitan: "abc..."
	modernTagRe = regexp.MustCompile(`^(\s*sha256\s+(?:.*,\s*)?)(\w+):\s*"[^"]*"\s*$`)

	checksumRe = regexp.MustCompile(`^[0-9a-f]{64}$`)
	osNameRe   = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// Formula is the text of a formula file. Edits return a new Formula.
type Formula struct {
	lines []string
}

// Parse checks that text declares a formula class.
func Parse(text string) (*Formula, error) {
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		if classRe.MatchString(line) {
			return &Formula{lines: lines}, nil
		}
	}
	return nil, errors.New(errors.ErrFormulaParse, "no `class ... < Formula` declaration found")
}

// String returns the formula text.
func (f *Formula) String() string {
	return strings.Join(f.lines, "\n")
}

// PutSdist points the formula at a new source tarball.
func (f *Formula) PutSdist(url, sha256 string) (*Formula, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "url must not be empty")
	}
	sha256, err := normalizeChecksum(sha256)
	if err != nil {
		return nil, err
	}

	lines := f.copyLines()
	depth, err := depths(lines)
	if err != nil {
		return nil, err
	}

	urlLine := find(lines, depth, urlRe, 1)
	if urlLine < 0 {
		return nil, errors.New(errors.ErrFormulaParse, "no top-level url line found")
	}
	m := urlRe.FindStringSubmatch(lines[urlLine])
	lines[urlLine] = m[1] + `url "` + url + `"` + m[2]

	shaLine := find(lines, depth, sdistRe, 1)
	if shaLine < 0 {
		return nil, errors.New(errors.ErrFormulaParse, "no top-level sha256 line found")
	}
	indent := sdistRe.FindStringSubmatch(lines[shaLine])[1]
	lines[shaLine] = indent + `sha256 "` + sha256 + `"`

	return &Formula{lines: lines}, nil
}

// PutBottle records the checksum of the bottle for osName. An existing
// entry for osName keeps its syntax; new entries use the
// `sha256 os: "..."` form. A bottle block is created after the source
// checksum if the formula has none.
func (f *Formula) PutBottle(osName, sha256 string) (*Formula, error) {
	if !osNameRe.MatchString(osName) {
		return nil, errors.Newf(errors.ErrInvalidInput, "invalid OS name: %q", osName)
	}
	sha256, err := normalizeChecksum(sha256)
	if err != nil {
		return nil, err
	}

	lines := f.copyLines()
	depth, err := depths(lines)
	if err != nil {
		return nil, err
	}

	start := find(lines, depth, bottleRe, 1)
	if start < 0 {
		return f.insertBottleBlock(lines, depth, osName, sha256)
	}
	indent := bottleRe.FindStringSubmatch(lines[start])[1]

	end := -1
	for i := start + 1; i < len(lines); i++ {
		if depth[i] == 1 && closeRe.MatchString(lines[i]) {
			end = i
			break
		}
		if depth[i] != 2 {
			continue
		}
		if m := legacyTagRe.FindStringSubmatch(lines[i]); m != nil && m[2] == osName {
			lines[i] = m[1] + `sha256 "` + sha256 + `" => :` + osName
			return &Formula{lines: lines}, nil
		}
		if m := modernTagRe.FindStringSubmatch(lines[i]); m != nil && m[2] == osName {
			lines[i] = m[1] + osName + `: "` + sha256 + `"`
			return &Formula{lines: lines}, nil
		}
	}
	if end < 0 {
		return nil, errors.New(errors.ErrFormulaParse, "unterminated bottle block")
	}

	entry := indent + "  " + modernEntry(osName, sha256)
	return &Formula{lines: insert(lines, end, entry)}, nil
}

func (f *Formula) insertBottleBlock(lines []string, depth []int, osName, sha256 string) (*Formula, error) {
	shaLine := find(lines, depth, sdistRe, 1)
	if shaLine < 0 {
		return nil, errors.New(errors.ErrFormulaParse, "no top-level sha256 line to place the bottle block after")
	}
	indent := sdistRe.FindStringSubmatch(lines[shaLine])[1]
	block := []string{
		"",
		indent + "bottle do",
		indent + "  " + modernEntry(osName, sha256),
		indent + "end",
	}
	return &Formula{lines: insert(lines, shaLine+1, block...)}, nil
}

func modernEntry(osName, sha256 string) string {
	return `sha256 ` + osName + `: "` + sha256 + `"`
}

func (f *Formula) copyLines() []string {
	lines := make([]string, len(f.lines))
	copy(lines, f.lines)
	return lines
}

// depths returns the block nesting level of every line: the class line is
// at 0, the class body at 1. Comments are ignored, as are lines that open
// and close a block themselves.
func depths(lines []string) ([]int, error) {
	out := make([]int, len(lines))
	level := 0
	for i, line := range lines {
		code := stripComment(line)
		if closeRe.MatchString(code) && level > 0 {
			level--
		}
		out[i] = level
		if opens(code) {
			level++
		}
	}
	if level != 0 {
		return nil, errors.Newf(errors.ErrFormulaParse, "unbalanced blocks, %d left open", level).
			WithDetail("depth", level)
	}
	return out, nil
}

func opens(code string) bool {
	if !openRe.MatchString(code) {
		return false
	}
	return !inlineEndRe.MatchString(code) && !endlessDefRe.MatchString(code)
}

// stripComment drops a trailing # comment that is not inside a string
// literal. #{...} interpolation only occurs inside strings.
func stripComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0 && c == quote:
			quote = 0
		case quote != 0:
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			return line[:i]
		}
	}
	return line
}

func find(lines []string, depth []int, re *regexp.Regexp, level int) int {
	for i, line := range lines {
		if depth[i] == level && re.MatchString(line) {
			return i
		}
	}
	return -1
}

func insert(lines []string, at int, add ...string) []string {
	out := make([]string, 0, len(lines)+len(add))
	out = append(out, lines[:at]...)
	out = append(out, add...)
	return append(out, lines[at:]...)
}

func normalizeChecksum(sha256 string) (string, error) {
	sum := strings.ToLower(strings.TrimSpace(sha256))
	if !checksumRe.MatchString(sum) {
		return "", errors.Newf(errors.ErrInvalidInput, "invalid sha256 checksum: %q", sha256)
	}
	return sum, nil
}
