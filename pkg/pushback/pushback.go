package pushback

import (
	"bufio"
	"errors"
	"io"
)

var ErrPushbackFull = errors.New("pushback slot already holds a character")

// Reader is a byte reader with room for exactly one pushed-back byte.
type Reader struct {
	src     *bufio.Reader
	held    byte
	holding bool
}

func NewReader(r io.Reader) *Reader {
	return &Reader{src: bufio.NewReader(r)}
}

// ReadChar returns the pushed-back byte if there is one, otherwise the next
// byte from the source.
func (r *Reader) ReadChar() (byte, error) {
	if r.holding {
		r.holding = false
		return r.held, nil
	}
	return r.src.ReadByte()
}

// Read implements io.Reader. A pushed-back byte is delivered before any
// source data.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.holding {
		r.holding = false
		p[0] = r.held
		return 1, nil
	}
	return r.src.Read(p)
}

// PushBack makes c the next byte returned by ReadChar.
func (r *Reader) PushBack(c byte) error {
	if r.holding {
		return ErrPushbackFull
	}
	r.held = c
	r.holding = true
	return nil
}

func (r *Reader) PeekChar() (byte, error) {
	c, err := r.ReadChar()
	if err != nil {
		return 0, err
	}
	return c, r.PushBack(c)
}
