package render

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arthur-debert/templating/pkg/delimiters"
	"github.com/arthur-debert/templating/pkg/errors"
	"github.com/arthur-debert/templating/pkg/logging"
)

// Request carries everything a Renderer needs for one rendering
type Request struct {
	SourceDir             string
	OutputDir             string
	Delimiters            *delimiters.Set
	EscapeString          string
	Overwrite             bool
	Encoding              string
	NonFilteredExtensions []string
	Properties            map[string]string
}

// Renderer renders a source tree into an output tree
type Renderer interface {
	// DefaultDelimiters returns the set used when no custom delimiters are configured
	DefaultDelimiters() *delimiters.Set
	// Render writes the rendered form of req.SourceDir into req.OutputDir
	Render(req Request) error
}

// DefaultDelimiters returns {${*}, @}
func DefaultDelimiters() *delimiters.Set {
	return delimiters.NewSet(delimiters.StandardPair, delimiters.TokenPair("@"))
}

// Interpolator is the built-in Renderer
type Interpolator struct {
	fs     afero.Fs
	logger zerolog.Logger
}

var _ Renderer = (*Interpolator)(nil)

// NewInterpolator returns an Interpolator working on fsys
func NewInterpolator(fsys afero.Fs) *Interpolator {
	return &Interpolator{
		fs:     fsys,
		logger: logging.GetLogger("render"),
	}
}

// DefaultDelimiters implements Renderer
func (r *Interpolator) DefaultDelimiters() *delimiters.Set {
	return DefaultDelimiters()
}

// Render implements Renderer
func (r *Interpolator) Render(req Request) error {
	done := logging.LogOperationStart(r.logger, "render")
	defer done()

	codec, err := newCodec(req.Encoding)
	if err != nil {
		return err
	}

	set := req.Delimiters
	if set.Len() == 0 {
		set = r.DefaultDelimiters()
	}

	r.logger.Debug().
		Str("source", req.SourceDir).
		Str("output", req.OutputDir).
		Strs("delimiters", set.Strings()).
		Str("encoding", req.Encoding).
		Msg("Rendering templates")

	if err := r.fs.MkdirAll(req.OutputDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot create output directory '%s'", req.OutputDir).WithPath(req.OutputDir)
	}

	return afero.Walk(r.fs, req.SourceDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "cannot read '%s'", path).WithPath(path)
		}

		rel, err := filepath.Rel(req.SourceDir, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "cannot relativize '%s'", path).WithPath(path)
		}
		target := filepath.Join(req.OutputDir, rel)

		if info.Mode()&os.ModeSymlink != 0 {
			resolved, err := r.fs.Stat(path)
			if err != nil || !resolved.Mode().IsRegular() {
				r.logger.Warn().Str("path", path).Msg("Skipping symlink that does not point to a regular file")
				return nil
			}
			info = resolved
		}

		switch {
		case info.IsDir():
			if err := r.fs.MkdirAll(target, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrIO, "cannot create directory '%s'", target).WithPath(target)
			}
			return nil
		case info.Mode().IsRegular():
			return r.renderFile(path, target, info, req, set, codec)
		default:
			r.logger.Warn().Str("path", path).Str("mode", info.Mode().String()).Msg("Skipping unsupported entry")
			return nil
		}
	})
}

func (r *Interpolator) renderFile(src, dst string, info os.FileInfo, req Request, set *delimiters.Set, c codec) error {
	if !req.Overwrite {
		if existing, err := r.fs.Stat(dst); err == nil && existing.ModTime().After(info.ModTime()) {
			r.logger.Trace().Str("file", dst).Msg("Output newer than source, leaving it")
			return nil
		}
	}

	data, err := afero.ReadFile(r.fs, src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot read '%s'", src).WithPath(src)
	}

	if isNonFiltered(src, req.NonFilteredExtensions) {
		r.logger.Trace().Str("file", src).Msg("Copying without filtering")
	} else {
		text, err := c.decode(data)
		if err != nil {
			return errors.Wrapf(err, errors.ErrProcessing, "cannot decode '%s' as %s", src, req.Encoding).WithPath(src)
		}
		if c.replaced(data, text) {
			r.logger.Warn().
				Str("file", src).
				Str("encoding", req.Encoding).
				Msg("Invalid byte sequences replaced while decoding, add the extension to non_filtered_extensions if this is a binary file")
		}
		text = InterpolateString(text, set, req.EscapeString, req.Properties)
		if data, err = c.encode(text); err != nil {
			return errors.Wrapf(err, errors.ErrProcessing, "cannot encode '%s' as %s", dst, req.Encoding).WithPath(dst)
		}
	}

	if err := r.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot create directory '%s'", filepath.Dir(dst)).WithPath(dst)
	}
	if err := afero.WriteFile(r.fs, dst, data, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot write '%s'", dst).WithPath(dst)
	}
	return nil
}

func isNonFiltered(path string, extensions []string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return false
	}
	for _, e := range extensions {
		if strings.EqualFold(ext, strings.TrimPrefix(e, ".")) {
			return true
		}
	}
	return false
}
