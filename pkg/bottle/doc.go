// Package bottle builds a Homebrew bottle for one formula on one OS.
//
// A Builder taps the formula's repository, rebuilds the formula from
// source with --build-bottle, asks brew for the bottle report and hands
// the resulting tarball to a callback. The tap is always removed again
// once it was added, whatever happens in between.
//
// The report written by `brew bottle --json` is treated as untrusted
// input: Report navigates it as a generic tree and turns every structural
// surprise into a BOTTLE_FORMAT error carrying the offending document.
package bottle
