// Package fingerprint computes the content checksums used to decide whether
// a file has changed.
package fingerprint

import (
	stderrors "errors"
	"fmt"
	"hash/crc32"
	"io"
	"io/fs"

	"github.com/spf13/afero"

	"github.com/arthur-debert/templating/pkg/errors"
)

// ChunkSize bounds how much of a stream is held in memory at once
const ChunkSize = 4096

const (
	opOpen = "open"
	opRead = "read"
)

// Digest is a CRC-32 (IEEE) checksum
type Digest uint32

func (d Digest) String() string {
	return fmt.Sprintf("%08x", uint32(d))
}

// Reader checksums r in ChunkSize reads
func Reader(r io.Reader) (Digest, error) {
	h := crc32.NewIEEE()
	buf := make([]byte, ChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			return Digest(h.Sum32()), nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// File checksums the file at path
func File(fsys afero.Fs, path string) (Digest, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrIO, "cannot open '%s'", path).
			WithPath(path).
			WithDetail("op", opOpen)
	}
	defer func() { _ = f.Close() }()

	d, err := Reader(f)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrIO, "cannot read '%s'", path).
			WithPath(path).
			WithDetail("op", opRead)
	}
	return d, nil
}

// Unopenable reports whether err is a File failure to open a file that is
// missing or not permitted. Such a destination counts as changed.
func Unopenable(err error) bool {
	if err == nil || errors.GetErrorDetails(err)["op"] != opOpen {
		return false
	}
	return stderrors.Is(err, fs.ErrNotExist) || stderrors.Is(err, fs.ErrPermission)
}
