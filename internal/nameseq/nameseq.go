// Package nameseq derives the next name in a numbered file series, e.g.
// toolchain3.sh -> toolchain4.sh.
package nameseq

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

var ErrNoOrdinal = errors.New("file name has no ordinal")

// split breaks base into prefix, digits and extension. The extension
// includes its leading dot and may be empty.
func split(base string) (prefix, digits, ext string) {
	ext = filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	end := len(stem)
	start := end
	for start > 0 && '0' <= stem[start-1] && stem[start-1] <= '9' {
		start--
	}
	return stem[:start], stem[start:end], ext
}

// Ordinal returns the integer that ends the file name before its extension.
func Ordinal(name string) (int, error) {
	_, digits, _ := split(filepath.Base(name))
	if digits == "" {
		return 0, fmt.Errorf("%w: %s", ErrNoOrdinal, name)
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrNoOrdinal, name, err)
	}
	return n, nil
}

// Next returns name with its ordinal incremented. The directory is kept.
// Leading zeros are kept as a minimum width, so run09.txt becomes run10.txt
// and run099.txt becomes run100.txt.
func Next(name string) (string, error) {
	dir, base := filepath.Split(name)
	prefix, digits, ext := split(base)
	n, err := Ordinal(base)
	if err != nil {
		return "", err
	}
	if n == math.MaxInt {
		return "", fmt.Errorf("%w: %s: ordinal cannot be incremented", ErrNoOrdinal, name)
	}
	return dir + fmt.Sprintf("%s%0*d%s", prefix, len(digits), n+1, ext), nil
}
