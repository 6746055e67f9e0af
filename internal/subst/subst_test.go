package subst_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/ian-shakespeare/subsym/internal/buffer"
	"github.com/ian-shakespeare/subsym/internal/logging"
	"github.com/ian-shakespeare/subsym/internal/subst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRun(t *testing.T) {
	t.Parallel()

	replacements := []struct {
		name    string
		input   string
		search  string
		replace string
		expect  string
		count   int
	}{
		{"word", "export CC=gcc-12\n", "gcc", "clang", "export CC=clang-12\n", 1},
		{"wholeWordsOnly", "gcc gcc12 xgcc gcc", "gcc", "cc", "cc gcc12 xgcc cc", 2},
		{"symbol", "a.b.c", ".", "::", "a::b::c", 2},
		{"emptyReplacement", "rm -rf tmp", "rf", "", "rm - tmp", 1},
		{"noMatch", ">>text3.txt", "text", "doc", ">>text3.txt", 0},
		{"emptyInput", "", "x", "y", "", 0},
		{"multiCharSymbolNeverMatches", "a->b", "->", "=>", "a->b", 0},
	}

	for _, input := range replacements {
		t.Run(input.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			s := &subst.Substituter{Search: input.search, Replace: input.replace}
			stats, err := s.Run(strings.NewReader(input.input), &out)
			require.NoError(t, err)
			assert.Equal(t, input.expect, out.String())
			assert.Equal(t, input.count, stats.Replacements)
		})
	}

	t.Run("stats", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		s := &subst.Substituter{Search: "a", Replace: "b"}
		stats, err := s.Run(strings.NewReader("a a"), &out)
		require.NoError(t, err)
		assert.Equal(t, subst.Stats{Tokens: 3, Replacements: 2}, stats)
	})

	t.Run("emptySearch", func(t *testing.T) {
		t.Parallel()

		s := &subst.Substituter{Replace: "x"}
		_, err := s.Run(strings.NewReader("abc"), &bytes.Buffer{})
		assert.ErrorIs(t, err, subst.ErrEmptySearch)
	})

	t.Run("smallBufferGrows", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		s := &subst.Substituter{Search: "abcdef", Replace: "X", BufferSize: 2}
		stats, err := s.Run(strings.NewReader("abcdef abcdefg"), &out)
		require.NoError(t, err)
		assert.Equal(t, "X abcdefg", out.String())
		assert.Zero(t, stats.GrowthFailures)
	})

	t.Run("abortOnGrowthFailure", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		s := &subst.Substituter{Search: "x", Replace: "y", BufferSize: 2, MaxBufferSize: 2}
		stats, err := s.Run(strings.NewReader("x abcdef"), &out)
		assert.ErrorIs(t, err, buffer.ErrGrowth)
		assert.Equal(t, "y ", out.String())
		assert.Equal(t, 1, stats.GrowthFailures)
	})

	t.Run("passthroughOnGrowthFailure", func(t *testing.T) {
		t.Parallel()

		var out, logs bytes.Buffer
		s := &subst.Substituter{
			Search:        "ef",
			Replace:       "Z",
			Policy:        subst.POLICY_PASSTHROUGH,
			BufferSize:    2,
			MaxBufferSize: 2,
			Logger:        logging.NewLogger("info", &logs),
		}
		stats, err := s.Run(strings.NewReader("abcdef ef"), &out)
		require.NoError(t, err)
		assert.Equal(t, "abcdef Z", out.String())
		assert.Equal(t, 2, stats.GrowthFailures)
		assert.Equal(t, 1, stats.Replacements)
		assert.Contains(t, logs.String(), "word exceeds token buffer")
		assert.Contains(t, logs.String(), "substitution finished")
	})

	t.Run("readError", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("unreadable")
		s := &subst.Substituter{Search: "a", Replace: "b"}
		_, err := s.Run(iotest.ErrReader(boom), &bytes.Buffer{})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("writeError", func(t *testing.T) {
		t.Parallel()

		s := &subst.Substituter{Search: "a", Replace: "b"}
		_, err := s.Run(strings.NewReader("a"), failingWriter{})
		assert.ErrorContains(t, err, "disk full")
	})
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  subst.Policy
	}{
		{"", subst.POLICY_ABORT},
		{"abort", subst.POLICY_ABORT},
		{"Passthrough", subst.POLICY_PASSTHROUGH},
	}

	for _, tt := range tests {
		p, err := subst.ParsePolicy(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, p)
	}

	_, err := subst.ParsePolicy("retry")
	assert.Error(t, err)
	assert.Equal(t, "passthrough", subst.POLICY_PASSTHROUGH.String())
	assert.Equal(t, "abort", subst.POLICY_ABORT.String())
}
