package lex

type TokenType int

const (
	UNKNOWN_TOKEN TokenType = 0
	WORD_TOKEN    TokenType = 1
	SYMBOL_TOKEN  TokenType = 2
)

func (t TokenType) String() string {
	switch t {
	case WORD_TOKEN:
		return "word"
	case SYMBOL_TOKEN:
		return "symbol"
	default:
		return "unknown"
	}
}

// Token is either a maximal run of alphanumerics or a single other byte.
// Value aliases the tokenizer's buffer and is overwritten by the next call
// to NextToken.
type Token struct {
	Type  TokenType
	Value []byte
}

func (t Token) String() string {
	return string(t.Value)
}

func (t Token) Equal(s string) bool {
	return string(t.Value) == s
}
