// Package subst copies a byte stream token by token, replacing every token
// equal to a search string.
package subst

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ian-shakespeare/subsym/internal/buffer"
	"github.com/ian-shakespeare/subsym/internal/lex"
	"github.com/ian-shakespeare/subsym/internal/logging"
)

var ErrEmptySearch = errors.New("search token is empty")

// Policy decides what happens when a word outgrows the token buffer.
type Policy int

const (
	// POLICY_ABORT stops the run and returns the growth error.
	POLICY_ABORT Policy = 0
	// POLICY_PASSTHROUGH copies the partial word and carries on.
	POLICY_PASSTHROUGH Policy = 1
)

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "abort":
		return POLICY_ABORT, nil
	case "passthrough":
		return POLICY_PASSTHROUGH, nil
	default:
		return POLICY_ABORT, fmt.Errorf("unknown growth failure policy %q", s)
	}
}

func (p Policy) String() string {
	switch p {
	case POLICY_PASSTHROUGH:
		return "passthrough"
	default:
		return "abort"
	}
}

type Stats struct {
	Tokens         int
	Replacements   int
	GrowthFailures int
}

type Substituter struct {
	Search  string
	Replace string
	Policy  Policy

	// BufferSize and MaxBufferSize size the token buffer. Zero means
	// buffer.DefaultCapacity and unbounded respectively.
	BufferSize    int
	MaxBufferSize int

	Logger *slog.Logger
}

// Run tokenizes r and writes the result to w. Output written before an
// error is still flushed.
func (s *Substituter) Run(r io.Reader, w io.Writer) (stats Stats, err error) {
	if s.Search == "" {
		return stats, ErrEmptySearch
	}

	logger := s.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	size := s.BufferSize
	if size == 0 {
		size = buffer.DefaultCapacity
	}
	buf := buffer.New(size, buffer.WithMaxCapacity(s.MaxBufferSize))
	tokens := lex.NewTokenizer(r, lex.WithBuffer(buf), lex.WithLogger(logger))

	out := bufio.NewWriter(w)
	defer func() {
		if ferr := out.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("flush output: %w", ferr)
		}
	}()

	// Set while the rest of an overflowing word is still being copied.
	overflow := false

	for {
		token, terr := tokens.NextToken()
		if errors.Is(terr, io.EOF) {
			break
		}

		var growthErr *lex.GrowthError
		if errors.As(terr, &growthErr) {
			stats.GrowthFailures++
			if s.Policy != POLICY_PASSTHROUGH {
				return stats, terr
			}
			logger.Warn("word exceeds token buffer, copying unmatched", "prefix", string(growthErr.Partial), "capacity", growthErr.Capacity)
			if _, err := out.Write(growthErr.Partial); err != nil {
				return stats, fmt.Errorf("write output: %w", err)
			}
			overflow = true
			continue
		}
		if terr != nil {
			return stats, fmt.Errorf("read input: %w", terr)
		}

		stats.Tokens++
		if token.Equal(s.Search) && !overflow {
			stats.Replacements++
			_, err = out.WriteString(s.Replace)
		} else {
			_, err = out.Write(token.Value)
		}
		overflow = false
		if err != nil {
			return stats, fmt.Errorf("write output: %w", err)
		}
	}

	logger.Info("substitution finished", "tokens", stats.Tokens, "replacements", stats.Replacements, "growth_failures", stats.GrowthFailures)
	return stats, nil
}
