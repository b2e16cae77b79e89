package toml

import (
	"strings"
)

// lexer turns the whole input into a token slice up front; comments are dropped
type lexer struct {
	src    string
	pos    int
	line   int
	tokens []token
}

func tokenize(src string) ([]token, error) {
	l := &lexer{src: src, line: 1}
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
		if tok.typ == tokenEOF {
			return l.tokens, nil
		}
	}
}

func (l *lexer) emit(typ tokenType, text string) token {
	return token{typ: typ, text: text, line: l.line}
}

func (l *lexer) next() (token, error) {
	// Whitespace and comments
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if ch == ' ' || ch == '\t' || ch == '\r' {
			l.pos++
			continue
		}
		if ch == '#' {
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		break
	}

	if l.pos >= len(l.src) {
		return l.emit(tokenEOF, ""), nil
	}

	ch := l.src[l.pos]
	switch ch {
	case '\n':
		tok := l.emit(tokenNewline, "\n")
		l.pos++
		l.line++
		return tok, nil
	case '=':
		l.pos++
		return l.emit(tokenEqual, "="), nil
	case '.':
		l.pos++
		return l.emit(tokenDot, "."), nil
	case ',':
		l.pos++
		return l.emit(tokenComma, ","), nil
	case '[':
		l.pos++
		return l.emit(tokenLBracket, "["), nil
	case ']':
		l.pos++
		return l.emit(tokenRBracket, "]"), nil
	case '{':
		l.pos++
		return l.emit(tokenLBrace, "{"), nil
	case '}':
		l.pos++
		return l.emit(tokenRBrace, "}"), nil
	case '"':
		return l.basicString()
	case '\'':
		return l.literalString()
	}

	if isBareChar(ch) || ch == '+' {
		return l.bare()
	}
	return token{}, errorf(l.line, "unexpected character %q", ch)
}

func (l *lexer) basicString() (token, error) {
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		switch ch {
		case '\n':
			return token{}, errorf(l.line, "newline in string")
		case '"':
			l.pos++
			return l.emit(tokenString, sb.String()), nil
		case '\\':
			if l.pos+1 >= len(l.src) {
				return token{}, errorf(l.line, "unterminated escape")
			}
			l.pos++
			switch esc := l.src[l.pos]; esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '"', '\\':
				sb.WriteByte(esc)
			default:
				return token{}, errorf(l.line, "unsupported escape \\%c", esc)
			}
		default:
			sb.WriteByte(ch)
		}
		l.pos++
	}
	return token{}, errorf(l.line, "unterminated string")
}

func (l *lexer) literalString() (token, error) {
	l.pos++
	start := l.pos
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\n':
			return token{}, errorf(l.line, "newline in string")
		case '\'':
			text := l.src[start:l.pos]
			l.pos++
			return l.emit(tokenString, text), nil
		}
		l.pos++
	}
	return token{}, errorf(l.line, "unterminated string")
}

// bare reads a run of key/number characters and classifies it
func (l *lexer) bare() (token, error) {
	start := l.pos
	numeric := isDigit(l.src[l.pos]) || l.src[l.pos] == '+' || l.src[l.pos] == '-'
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if isBareChar(ch) || ch == '+' || (ch == '.' && numeric && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1])) {
			l.pos++
			continue
		}
		break
	}
	text := l.src[start:l.pos]

	switch {
	case text == "true" || text == "false":
		return l.emit(tokenBool, text), nil
	case looksInteger(text):
		return l.emit(tokenInteger, text), nil
	case looksFloat(text):
		return l.emit(tokenFloat, text), nil
	case strings.HasPrefix(text, "+"):
		return token{}, errorf(l.line, "invalid value %q", text)
	}
	return l.emit(tokenKey, text), nil
}

func looksInteger(s string) bool {
	s = strings.TrimLeft(s, "+-")
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) && s[i] != '_' {
			return false
		}
	}
	return isDigit(s[0])
}

func looksFloat(s string) bool {
	s = strings.TrimLeft(s, "+-")
	if s == "" || !isDigit(s[0]) {
		return false
	}
	seenDigit := false
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case isDigit(ch):
			seenDigit = true
		case ch == '.' || ch == 'e' || ch == 'E' || ch == '_' || ch == '-' || ch == '+':
		default:
			return false
		}
	}
	return seenDigit && strings.ContainsAny(s, ".eE")
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isBareChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || isDigit(ch) || ch == '_' || ch == '-'
}
