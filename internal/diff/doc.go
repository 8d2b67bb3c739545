// Package diff implements unified, line-oriented diffs and a
// structural tree-diff for GWY object trees.
//
// The line-diff engine builds on top of https://github.com/andreyvit/diff,
// which generates line diffs (with unlimited context lines) on top of
// word diffs. Hunk assembly and context trimming on top of that raw
// line diff, and the content-hash SameAs shortcut (github.com/cespare/xxhash),
// are this package's own.
package diff
