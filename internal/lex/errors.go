package lex

import "fmt"

// GrowthError reports a word that outgrew the buffer. The byte that did not
// fit has been pushed back onto the input.
type GrowthError struct {
	Partial  []byte
	Capacity int
	Err      error
}

func (g *GrowthError) Error() string {
	return fmt.Sprintf("growtherror: word %q filled buffer of capacity %d: %v", g.Partial, g.Capacity, g.Err)
}

func (g *GrowthError) Unwrap() error {
	return g.Err
}
