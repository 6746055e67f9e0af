package buffer

import (
	"errors"
	"fmt"
)

const DefaultCapacity = 80

var ErrGrowth = errors.New("buffer growth failed")

// Allocator returns zeroed storage of exactly n bytes, or an error if it
// cannot.
type Allocator func(n int) ([]byte, error)

type Option func(*Buffer)

// WithMaxCapacity bounds growth. Zero means unbounded.
func WithMaxCapacity(limit int) Option {
	return func(b *Buffer) {
		b.limit = limit
	}
}

func WithAllocator(alloc Allocator) Option {
	return func(b *Buffer) {
		b.alloc = alloc
	}
}

// Buffer is a byte buffer whose capacity only changes through Grow.
// len(b.data) is always the capacity.
type Buffer struct {
	data  []byte
	n     int
	limit int
	alloc Allocator
}

func New(capacity int, opts ...Option) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	b := &Buffer{
		data:  make([]byte, capacity),
		alloc: defaultAllocator,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func defaultAllocator(n int) ([]byte, error) {
	return make([]byte, n), nil
}

// Grow doubles the capacity. If it fails, the buffer is left exactly as it
// was.
func (b *Buffer) Grow() error {
	next := len(b.data) * 2
	if next <= len(b.data) {
		return fmt.Errorf("%w: capacity %d overflows", ErrGrowth, len(b.data))
	}
	if b.limit > 0 && next > b.limit {
		return fmt.Errorf("%w: capacity %d exceeds limit %d", ErrGrowth, next, b.limit)
	}

	data, err := b.alloc(next)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGrowth, err)
	}
	if len(data) < next {
		return fmt.Errorf("%w: allocator returned %d bytes, want %d", ErrGrowth, len(data), next)
	}

	copy(data, b.data[:b.n])
	b.data = data[:next]
	return nil
}

// Append writes c, growing first when the buffer is full.
func (b *Buffer) Append(c byte) error {
	if b.n == len(b.data) {
		if err := b.Grow(); err != nil {
			return err
		}
	}
	b.data[b.n] = c
	b.n++
	return nil
}

func (b *Buffer) Reset() {
	b.n = 0
}

func (b *Buffer) Len() int {
	return b.n
}

func (b *Buffer) Cap() int {
	return len(b.data)
}

// Bytes returns the current contents without copying. The slice is only
// valid until the next call that mutates the buffer.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.n]
}

func (b *Buffer) String() string {
	return string(b.data[:b.n])
}
