package treesync

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arthur-debert/templating/pkg/errors"
	"github.com/arthur-debert/templating/pkg/filesystem"
	"github.com/arthur-debert/templating/pkg/fingerprint"
	"github.com/arthur-debert/templating/pkg/logging"
)

const dirPerm = 0755

// Result reports what a sync did
type Result struct {
	// Copied is the number of files written to the destination
	Copied int
	// Skipped is the number of files already up to date
	Skipped int
	// Directories is the number of destination directories created
	Directories int
	// CopiedFiles lists the written files relative to the roots, in walk order
	CopiedFiles []string
}

// UpToDate reports whether nothing needed copying
func (r *Result) UpToDate() bool {
	return r.Copied == 0
}

// Synchronizer copies changed files between trees on one filesystem
type Synchronizer struct {
	fs     afero.Fs
	logger zerolog.Logger
}

// New returns a Synchronizer operating on fsys
func New(fsys afero.Fs) *Synchronizer {
	return &Synchronizer{
		fs:     fsys,
		logger: logging.GetLogger("treesync"),
	}
}

// walk carries the state of one sync
type walk struct {
	*Synchronizer
	srcRoot string
	dstRoot string
	exclude string
	result  *Result
}

// Sync merges source into destination, skipping the exclude path wherever
// it appears. An empty exclude disables exclusion.
func (s *Synchronizer) Sync(source, destination, exclude string) (*Result, error) {
	done := logging.LogOperationStart(s.logger, "sync")
	defer done()

	src, dst, err := s.checkRoots(source, destination)
	if err != nil {
		return nil, err
	}

	w := &walk{
		Synchronizer: s,
		srcRoot:      src,
		dstRoot:      dst,
		result:       &Result{CopiedFiles: []string{}},
	}
	if exclude != "" {
		if w.exclude, err = filepath.Abs(exclude); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfig, "invalid exclusion path '%s'", exclude).WithPath(exclude)
		}
	}

	s.logger.Debug().
		Str("source", src).
		Str("destination", dst).
		Str("exclude", w.exclude).
		Msg("Synchronizing trees")

	if err := w.ensureDir(dst); err != nil {
		return nil, err
	}
	if err := w.syncDir(src, dst); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int("copied", w.result.Copied).
		Int("skipped", w.result.Skipped).
		Int("directories", w.result.Directories).
		Msg("Synchronization finished")
	return w.result, nil
}

// checkRoots validates the roots before anything is touched and returns
// their absolute forms.
func (s *Synchronizer) checkRoots(source, destination string) (string, string, error) {
	if source == "" {
		return "", "", errors.New(errors.ErrConfig, "source directory is required")
	}
	if destination == "" {
		return "", "", errors.New(errors.ErrConfig, "destination directory is required")
	}

	src, err := filepath.Abs(source)
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrConfig, "invalid source directory '%s'", source).WithPath(source)
	}
	dst, err := filepath.Abs(destination)
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrConfig, "invalid destination directory '%s'", destination).WithPath(destination)
	}
	if src == dst {
		return "", "", errors.Newf(errors.ErrConfig, "source and destination are the same directory '%s'", src).WithPath(src)
	}

	if !filesystem.IsDir(s.fs, src) {
		return "", "", errors.Newf(errors.ErrConfig, "source directory '%s' does not exist or is not a directory", src).WithPath(src)
	}
	return src, dst, nil
}

func (w *walk) syncDir(srcDir, dstDir string) error {
	// afero.ReadDir sorts entries by name
	entries, err := afero.ReadDir(w.fs, srcDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot list directory '%s'", srcDir).WithPath(srcDir)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(srcDir, entry.Name())
		dstPath := filepath.Join(dstDir, entry.Name())

		if srcPath == w.exclude {
			w.logger.Trace().Str("path", srcPath).Msg("Skipping excluded path")
			continue
		}

		info, err := filesystem.Lstat(w.fs, srcPath)
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "cannot stat '%s'", srcPath).WithPath(srcPath)
		}

		switch mode := info.Mode(); {
		case mode.IsRegular():
			if err := w.syncFile(srcPath, dstPath, mode.Perm()); err != nil {
				return err
			}
		case mode.IsDir():
			if err := w.ensureDir(dstPath); err != nil {
				return err
			}
			if err := w.syncDir(srcPath, dstPath); err != nil {
				return err
			}
		default:
			return errors.Newf(errors.ErrUnsupportedEntry, "unsupported file type at '%s' (%s)", srcPath, mode.Type()).
				WithPath(srcPath).
				WithDetail("mode", mode.String())
		}
	}
	return nil
}

// ensureDir makes dir exist as a directory, creating parents as needed
func (w *walk) ensureDir(dir string) error {
	info, err := w.fs.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return errors.Newf(errors.ErrIO, "destination '%s' exists and is not a directory", dir).WithPath(dir)
	case !os.IsNotExist(err):
		return errors.Wrapf(err, errors.ErrIO, "cannot stat destination directory '%s'", dir).WithPath(dir)
	}

	if err := w.fs.MkdirAll(dir, dirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "could not create destination directory '%s'", dir).WithPath(dir)
	}
	w.result.Directories++
	w.logger.Trace().Str("path", dir).Msg("Created directory")
	return nil
}

func (w *walk) syncFile(srcPath, dstPath string, perm fs.FileMode) error {
	changed, err := w.changed(srcPath, dstPath)
	if err != nil {
		return err
	}

	rel, _ := filepath.Rel(w.srcRoot, srcPath)
	if !changed {
		w.result.Skipped++
		w.logger.Trace().Str("file", rel).Msg("Up to date")
		return nil
	}

	if err := w.copyFile(srcPath, dstPath, perm); err != nil {
		return err
	}
	w.result.Copied++
	w.result.CopiedFiles = append(w.result.CopiedFiles, rel)
	w.logger.Debug().Str("file", rel).Msg("Copied")
	return nil
}

// changed reports whether dstPath needs to be rewritten from srcPath. A
// destination that is missing or cannot be opened always needs it.
func (w *walk) changed(srcPath, dstPath string) (bool, error) {
	dstDigest, err := fingerprint.File(w.fs, dstPath)
	if err != nil {
		if fingerprint.Unopenable(err) {
			return true, nil
		}
		return false, err
	}

	srcDigest, err := fingerprint.File(w.fs, srcPath)
	if err != nil {
		return false, err
	}
	return srcDigest != dstDigest, nil
}

// copyFile replaces dstPath with the contents of srcPath
func (w *walk) copyFile(srcPath, dstPath string, perm fs.FileMode) (err error) {
	in, err := w.fs.Open(srcPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot open '%s'", srcPath).WithPath(srcPath)
	}
	defer func() { _ = in.Close() }()

	tmp, err := afero.TempFile(w.fs, filepath.Dir(dstPath), "."+filepath.Base(dstPath)+".tmp-")
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot create temporary file for '%s'", dstPath).WithPath(dstPath)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = w.fs.Remove(tmpName)
		}
	}()

	buf := make([]byte, fingerprint.ChunkSize)
	if _, err = io.CopyBuffer(tmp, in, buf); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot copy '%s' to '%s'", srcPath, dstPath).WithPath(dstPath)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot write '%s'", dstPath).WithPath(dstPath)
	}
	if err = w.fs.Chmod(tmpName, perm); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot set mode of '%s'", dstPath).WithPath(dstPath)
	}
	if err = w.fs.Rename(tmpName, dstPath); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot replace '%s'", dstPath).WithPath(dstPath)
	}
	return nil
}
