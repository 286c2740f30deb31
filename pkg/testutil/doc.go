// Package testutil provides helpers for tests that work on file trees.
//
// Trees are declared inline as nested FileTree maps and created on any
// afero filesystem, usually an afero.MemMapFs. Snapshot reads a tree back
// into a flat map that compares cleanly with go-cmp.
package testutil
