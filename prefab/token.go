package prefab

import (
	"fmt"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	TokenError TokenType = iota
	TokenEOF

	// Literals
	TokenIdent   // bare identifier
	TokenString  // "quoted"
	TokenInteger // 123
	TokenFloat   // 123.45

	// Operators and Delimiters
	TokenAt     // @
	TokenLParen // (
	TokenRParen // )
	TokenLBrace // {
	TokenRBrace // }
	TokenColon  // :
	TokenComma  // ,
	TokenMinus  // -
)

// Token represents a lexical token. Int and Float carry the parsed
// numeric value for the corresponding literal types.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Col     int
	Int     int64
	Float   float64
}

func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return fmt.Sprintf("Error(%s)", t.Literal)
	}
	if len(t.Literal) > 20 {
		return fmt.Sprintf("%q...", t.Literal[:20])
	}
	return fmt.Sprintf("%q", t.Literal)
}
