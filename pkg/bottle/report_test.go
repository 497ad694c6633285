package bottle_test

import (
	"encoding/json"
	"testing"

	"github.com/arthur-debert/homebrew-automation/pkg/bottle"
	"github.com/arthur-debert/homebrew-automation/pkg/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const elCapitanReport = `{"tap/foo": {"bottle": {"tags": {"el_capitan": {
	"local_filename": "/tmp/x.tar.gz",
	"filename": "foo-1.0.el_capitan.bottle.tar.gz",
	"sha256": "ignored"
}}}}}`

func decode(t *testing.T, text string) any {
	t.Helper()
	var doc any
	require.NoError(t, json.Unmarshal([]byte(text), &doc))
	return doc
}

func TestResolveTarball(t *testing.T) {
	local, filename, err := bottle.ResolveTarball(elCapitanReport, "tap/foo", "el_capitan")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.tar.gz", local)
	assert.Equal(t, "foo-1.0.el_capitan.bottle.tar.gz", filename)
}

func TestResolveTarball_Errors(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		formula     string
		os          string
		wantMessage string
		wantKey     string
	}{
		{
			name:        "absent os",
			text:        elCapitanReport,
			formula:     "tap/foo",
			os:          "sierra",
			wantMessage: "couldn't find key: sierra",
			wantKey:     "sierra",
		},
		{
			name:        "absent formula",
			text:        elCapitanReport,
			formula:     "tap/bar",
			os:          "el_capitan",
			wantMessage: "couldn't find key: tap/bar",
			wantKey:     "tap/bar",
		},
		{
			name:        "bottle is a scalar",
			text:        `{"tap/foo": {"bottle": 3}}`,
			formula:     "tap/foo",
			os:          "el_capitan",
			wantMessage: "couldn't find key: tags",
			wantKey:     "tags",
		},
		{
			name:        "tags is null",
			text:        `{"tap/foo": {"bottle": {"tags": null}}}`,
			formula:     "tap/foo",
			os:          "el_capitan",
			wantMessage: "couldn't find key: el_capitan",
			wantKey:     "el_capitan",
		},
		{
			name:        "missing filename",
			text:        `{"tap/foo": {"bottle": {"tags": {"el_capitan": {"local_filename": "/tmp/x.tar.gz"}}}}}`,
			formula:     "tap/foo",
			os:          "el_capitan",
			wantMessage: "couldn't find both `local_filename` and `filename` keys",
		},
		{
			name:        "non-string local_filename",
			text:        `{"tap/foo": {"bottle": {"tags": {"el_capitan": {"local_filename": 1, "filename": "f"}}}}}`,
			formula:     "tap/foo",
			os:          "el_capitan",
			wantMessage: "couldn't find both",
		},
		{
			name:        "tag is not an object",
			text:        `{"tap/foo": {"bottle": {"tags": {"el_capitan": "nope"}}}}`,
			formula:     "tap/foo",
			os:          "el_capitan",
			wantMessage: "tag el_capitan is not an object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := bottle.ResolveTarball(tt.text, tt.formula, tt.os)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrBottleFormat))
			assert.Contains(t, err.Error(), tt.wantMessage)

			if diff := cmp.Diff(decode(t, tt.text), errors.Original(err)); diff != "" {
				t.Errorf("original document mismatch (-want +got):\n%s", diff)
			}
			if tt.wantKey != "" {
				assert.Equal(t, tt.wantKey, errors.GetErrorDetails(err)["key"])
			}
		})
	}
}

func TestParseReport_Malformed(t *testing.T) {
	text := `{"tap/foo": {"bottle": `
	_, err := bottle.ParseReport(text)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrBottleFormat))
	assert.Contains(t, err.Error(), "error parsing bottle JSON")
	assert.Equal(t, text, errors.Original(err))

	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestReport_Lookup(t *testing.T) {
	report, err := bottle.ParseReport(`{"a": {"list": [{"name": "x"}, null], "n": 1}}`)
	require.NoError(t, err)

	tests := []struct {
		name string
		keys []string
		want bottle.LookupResult
	}{
		{
			name: "empty path is the root",
			keys: nil,
			want: bottle.LookupResult{Found: true, Value: report.Document()},
		},
		{
			name: "array index",
			keys: []string{"a", "list", "0", "name"},
			want: bottle.LookupResult{Found: true, Value: "x"},
		},
		{
			name: "array index out of range",
			keys: []string{"a", "list", "5"},
			want: bottle.LookupResult{MissingKey: "5", Depth: 2},
		},
		{
			name: "array null element",
			keys: []string{"a", "list", "1"},
			want: bottle.LookupResult{MissingKey: "1", Depth: 2},
		},
		{
			name: "non-numeric array key",
			keys: []string{"a", "list", "name"},
			want: bottle.LookupResult{MissingKey: "name", Depth: 2},
		},
		{
			name: "scalar is not navigable",
			keys: []string{"a", "n", "x"},
			want: bottle.LookupResult{MissingKey: "x", Depth: 2},
		},
		{
			name: "missing first key",
			keys: []string{"b"},
			want: bottle.LookupResult{MissingKey: "b", Depth: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := report.Lookup(tt.keys...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Lookup() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSpec_QualifiedFormulaName(t *testing.T) {
	spec := bottle.Spec{TapName: "easoncxz/tap", FormulaName: "wire"}
	assert.Equal(t, "easoncxz/tap/wire", spec.QualifiedFormulaName())
}
