package render

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/arthur-debert/templating/pkg/errors"
)

// codec converts between file bytes and text
type codec struct {
	enc encoding.Encoding
}

// newCodec looks name up in the WHATWG encoding index. An empty name
// passes bytes through untouched.
func newCodec(name string) (codec, error) {
	if name == "" {
		return codec{}, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return codec{}, errors.Wrapf(err, errors.ErrInvalidInput, "unsupported encoding '%s'", name).
			WithDetail("encoding", name)
	}
	return codec{enc: enc}, nil
}

func (c codec) decode(data []byte) (string, error) {
	if c.enc == nil {
		return string(data), nil
	}
	out, err := c.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// replaced reports whether decoding data into text substituted U+FFFD for
// byte sequences that are invalid in the encoding
func (c codec) replaced(data []byte, text string) bool {
	if c.enc == nil {
		return false
	}
	return strings.Count(text, string(utf8.RuneError)) > bytes.Count(data, []byte(string(utf8.RuneError)))
}

func (c codec) encode(text string) ([]byte, error) {
	if c.enc == nil {
		return []byte(text), nil
	}
	return c.enc.NewEncoder().Bytes([]byte(text))
}

// ValidEncoding reports whether name is empty or a known encoding
func ValidEncoding(name string) bool {
	_, err := newCodec(name)
	return err == nil
}
