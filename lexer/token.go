package lexer

import (
	"fmt"
	"slices"
)

// TokenType is the type of token.
type TokenType int

// Token types as constants.
const (
	TokError TokenType = iota
	TokEOF

	// Keywords.
	TokDef
	TokIf
	TokThen
	TokElse

	// Identifiers + literals.
	TokIdentifier
	TokNumber

	// Operators.
	TokPlus      // '+'.
	TokMinus     // '-'.
	TokStar      // '*'.
	TokSlash     // '/'.
	TokLess      // '<'.
	TokGreater   // '>'.
	TokNotEqual  // NOTEQUAL (<>).
	TokEqual     // EQUAL (==).
	TokPipe      // '|'.
	TokAmpersand // '&'.

	// Delimiters.
	TokParenLeft
	TokParenRight
	TokComma
	TokSemicolon

	// End of tokens.
	FinalToken
)

// String returns the string representation of the token type.
func (tt TokenType) String() string {
	return tokenTypeStrings[tt]
}

// Map of token types to their string representation for debugging.
var tokenTypeStrings = map[TokenType]string{
	TokError: "ERROR",
	TokEOF:   "EOF",

	TokDef:  "DEF",
	TokIf:   "IF",
	TokThen: "THEN",
	TokElse: "ELSE",

	TokIdentifier: "IDENTIFIER",
	TokNumber:     "NUMBER",

	TokPlus:      "+",
	TokMinus:     "-",
	TokStar:      "*",
	TokSlash:     "/",
	TokLess:      "<",
	TokGreater:   ">",
	TokNotEqual:  "<>",
	TokEqual:     "==",
	TokPipe:      "|",
	TokAmpersand: "&",

	TokParenLeft:  "PAREN_LEFT",
	TokParenRight: "PAREN_RIGHT",
	TokComma:      "COMMA",
	TokSemicolon:  "SEMICOLON",
}

// keywords maps identifier text to its keyword TokenType.
var keywords = map[string]TokenType{
	"def":  TokDef,
	"if":   TokIf,
	"then": TokThen,
	"else": TokElse,
}

func (tt TokenType) IsOneOf(t ...TokenType) bool {
	return slices.Contains(t, tt)
}

// Token represents a lexical token of the source language.
type Token struct {
	Type  TokenType
	Value string

	// Number holds the parsed value for TokNumber tokens.
	Number float32

	// Line is the 1-based source line the token was recognized on.
	Line int

	pos int
}

func (t Token) String() string {
	switch {
	case t.Type == TokEOF:
		return "EOF"
	case t.Type == TokError:
		return t.errorString()
	case t.Type == TokNumber:
		return fmt.Sprintf("%s[%d:%d]: %v", t.Type, t.Line, t.pos, t.Number)
	}
	return fmt.Sprintf("%s[%d:%d]: %q", t.Type, t.Line, t.pos, t.Value)
}

func (t Token) errorString() string {
	return fmt.Sprintf("ERROR [%d:%d]: %s", t.Line, t.pos, t.Value)
}
