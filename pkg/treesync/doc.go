// Package treesync merges a source directory tree into a destination tree.
//
// Only files whose content differs are written; unchanged files are left
// untouched so their timestamps survive and incremental builds downstream
// stay incremental. Directories are created on demand. Nothing is ever
// removed from the destination.
//
// Sync is given an exclusion root, normally the destination itself, which
// is never entered or copied even when it is nested inside the source.
// Only regular files and directories are supported; any other entry aborts
// the sync with an ErrUnsupportedEntry error.
//
// Writes replace the target by renaming a temporary file over it, so a
// reader never sees a half-written file. The sync as a whole is not atomic:
// a failure part way leaves the files already copied in place.
package treesync
