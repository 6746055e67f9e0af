package lex

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"

	"github.com/ian-shakespeare/subsym/internal/buffer"
	"github.com/ian-shakespeare/subsym/internal/logging"
	"github.com/ian-shakespeare/subsym/pkg/array"
	"github.com/ian-shakespeare/subsym/pkg/iterator"
	"github.com/ian-shakespeare/subsym/pkg/pushback"
)

// Source is a byte stream that can take back the byte it just delivered.
type Source interface {
	ReadChar() (byte, error)
	PushBack(c byte) error
}

type Option func(*Tokenizer)

// WithBuffer makes the tokenizer accumulate words in b instead of a fresh
// buffer of buffer.DefaultCapacity.
func WithBuffer(b *buffer.Buffer) Option {
	return func(t *Tokenizer) {
		t.buf = b
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(t *Tokenizer) {
		t.logger = logger
	}
}

type Tokenizer struct {
	input  Source
	buf    *buffer.Buffer
	logger *slog.Logger
}

func NewTokenizer(input io.Reader, opts ...Option) *Tokenizer {
	src, ok := input.(Source)
	if !ok {
		src = pushback.NewReader(input)
	}

	t := &Tokenizer{input: src}
	for _, opt := range opts {
		opt(t)
	}
	if t.buf == nil {
		t.buf = buffer.New(buffer.DefaultCapacity)
	}
	if t.logger == nil {
		t.logger = logging.Discard()
	}
	return t
}

// IsAlnum reports whether c is an ASCII letter or digit.
func IsAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// NextToken returns the next token, io.EOF once the input is exhausted, or a
// *GrowthError if a word does not fit. In the growth case the bytes that did
// fit stay in the buffer and the byte that did not is the next one read.
func (t *Tokenizer) NextToken() (Token, error) {
	t.buf.Reset()

	for {
		c, err := t.input.ReadChar()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Token{}, err
		}

		if !IsAlnum(c) {
			if t.buf.Len() > 0 {
				// c delimits the word and starts the next token.
				if err := t.input.PushBack(c); err != nil {
					return Token{}, err
				}
				return t.emit(WORD_TOKEN), nil
			}
			if err := t.buf.Append(c); err != nil {
				return Token{}, err
			}
			return t.emit(SYMBOL_TOKEN), nil
		}

		capacity := t.buf.Cap()
		if err := t.buf.Append(c); err != nil {
			if perr := t.input.PushBack(c); perr != nil {
				return Token{}, errors.Join(err, perr)
			}
			t.logger.Debug("buffer growth failed", "capacity", capacity, "length", t.buf.Len(), "error", err)
			return Token{}, &GrowthError{
				Partial:  append([]byte(nil), t.buf.Bytes()...),
				Capacity: capacity,
				Err:      err,
			}
		}
		if t.buf.Cap() != capacity {
			t.logger.Debug("buffer grew", "from", capacity, "to", t.buf.Cap())
		}
	}

	if t.buf.Len() > 0 {
		return t.emit(WORD_TOKEN), nil
	}
	return Token{}, io.EOF
}

func (t *Tokenizer) emit(typ TokenType) Token {
	token := Token{Type: typ, Value: t.buf.Bytes()}
	if ctx := context.Background(); t.logger.Enabled(ctx, logging.LevelTrace) {
		t.logger.Log(ctx, logging.LevelTrace, "token", "type", typ, "value", token.String())
	}
	return token
}

// Tokens yields tokens until the input is exhausted. Any error is yielded
// once and ends the sequence. Yielded values share the tokenizer's buffer.
func (t *Tokenizer) Tokens() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			token, err := t.NextToken()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(token, err) || err != nil {
				return
			}
		}
	}
}

// Strings tokenizes the whole input into independent strings.
func (t *Tokenizer) Strings() ([]string, error) {
	words, errs := iterator.Collect2(iterator.MapKeys(t.Tokens(), Token.String))
	if i := array.Index(errs, isError); i > -1 {
		return words[:i], errs[i]
	}
	return words, nil
}

func isError(err error) bool {
	return err != nil
}
