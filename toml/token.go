// Package toml reads and writes the subset of TOML used by tilemaze configuration:
// key/value pairs, dotted keys, [tables], [[arrays of tables]], inline tables,
// nested arrays, strings, integers, floats and booleans. Dates are not supported.
package toml

import (
	"fmt"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenNewline
	tokenKey // bare key
	tokenString
	tokenInteger
	tokenFloat
	tokenBool
	tokenEqual
	tokenDot
	tokenComma
	tokenLBracket
	tokenRBracket
	tokenLBrace
	tokenRBrace
)

type token struct {
	typ  tokenType
	text string
	line int
}

func (t token) String() string {
	switch t.typ {
	case tokenEOF:
		return "end of input"
	case tokenNewline:
		return "newline"
	case tokenString:
		return fmt.Sprintf("string %q", t.text)
	}
	return fmt.Sprintf("%q", t.text)
}

// ParseError reports malformed input with its 1-based line
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("toml: line %d: %s", e.Line, e.Msg)
}

func errorf(line int, format string, args ...any) error {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
