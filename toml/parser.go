package toml

import (
	"strconv"
	"strings"
)

// Parse decodes TOML text into nested map[string]any values. Arrays are []any,
// arrays of tables are []map[string]any, integers are int64, floats are float64.
func Parse(data []byte) (map[string]any, error) {
	tokens, err := tokenize(string(data))
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens, root: make(map[string]any)}
	p.scope = p.root
	if err := p.document(); err != nil {
		return nil, err
	}
	return p.root, nil
}

type parser struct {
	tokens []token
	pos    int
	root   map[string]any
	scope  map[string]any
	// defined tracks explicitly declared [tables] to reject duplicates
	defined map[string]bool
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if tok.typ != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(typ tokenType, what string) (token, error) {
	tok := p.advance()
	if tok.typ != typ {
		return tok, errorf(tok.line, "expected %s, got %s", what, tok)
	}
	return tok, nil
}

func (p *parser) skipNewlines() {
	for p.peek().typ == tokenNewline {
		p.advance()
	}
}

func (p *parser) document() error {
	for {
		p.skipNewlines()
		tok := p.peek()
		switch tok.typ {
		case tokenEOF:
			return nil
		case tokenLBracket:
			if err := p.tableHeader(); err != nil {
				return err
			}
		case tokenKey, tokenString, tokenInteger, tokenBool:
			if err := p.keyValue(p.scope); err != nil {
				return err
			}
		default:
			return errorf(tok.line, "unexpected %s", tok)
		}

		// A statement must end the line
		if end := p.peek(); end.typ != tokenNewline && end.typ != tokenEOF {
			return errorf(end.line, "expected end of line, got %s", end)
		}
	}
}

func (p *parser) tableHeader() error {
	open := p.advance()
	array := false
	if p.peek().typ == tokenLBracket {
		p.advance()
		array = true
	}

	keys, err := p.key()
	if err != nil {
		return err
	}
	if _, err := p.expect(tokenRBracket, "']'"); err != nil {
		return err
	}
	if array {
		if _, err := p.expect(tokenRBracket, "']]'"); err != nil {
			return err
		}
	}

	parent, err := descend(p.root, keys[:len(keys)-1], open.line)
	if err != nil {
		return err
	}
	last := keys[len(keys)-1]
	path := strings.Join(keys, ".")

	if array {
		var list []map[string]any
		if existing, ok := parent[last]; ok {
			if list, ok = existing.([]map[string]any); !ok {
				return errorf(open.line, "%s is not an array of tables", path)
			}
		}
		table := make(map[string]any)
		parent[last] = append(list, table)
		p.scope = table
		return nil
	}

	if p.defined == nil {
		p.defined = make(map[string]bool)
	}
	if p.defined[path] {
		return errorf(open.line, "table %s defined twice", path)
	}
	p.defined[path] = true

	table, err := descend(parent, []string{last}, open.line)
	if err != nil {
		return err
	}
	p.scope = table
	return nil
}

// descend walks keys from m, creating tables as needed. An array of tables is
// entered through its last element.
func descend(m map[string]any, keys []string, line int) (map[string]any, error) {
	for _, k := range keys {
		switch v := m[k].(type) {
		case nil:
			next := make(map[string]any)
			m[k] = next
			m = next
		case map[string]any:
			m = v
		case []map[string]any:
			if len(v) == 0 {
				return nil, errorf(line, "%s is an empty array of tables", k)
			}
			m = v[len(v)-1]
		default:
			return nil, errorf(line, "%s is already a value, not a table", k)
		}
	}
	return m, nil
}

func (p *parser) key() ([]string, error) {
	var keys []string
	for {
		tok := p.advance()
		switch tok.typ {
		case tokenKey, tokenString, tokenInteger, tokenBool:
			keys = append(keys, tok.text)
		default:
			return nil, errorf(tok.line, "expected key, got %s", tok)
		}
		if p.peek().typ != tokenDot {
			return keys, nil
		}
		p.advance()
	}
}

func (p *parser) keyValue(scope map[string]any) error {
	keys, err := p.key()
	if err != nil {
		return err
	}
	eq, err := p.expect(tokenEqual, "'='")
	if err != nil {
		return err
	}
	val, err := p.value()
	if err != nil {
		return err
	}

	target, err := descend(scope, keys[:len(keys)-1], eq.line)
	if err != nil {
		return err
	}
	last := keys[len(keys)-1]
	if _, dup := target[last]; dup {
		return errorf(eq.line, "duplicate key %s", strings.Join(keys, "."))
	}
	target[last] = val
	return nil
}

func (p *parser) value() (any, error) {
	tok := p.advance()
	switch tok.typ {
	case tokenString:
		return tok.text, nil
	case tokenBool:
		return tok.text == "true", nil
	case tokenInteger:
		n, err := strconv.ParseInt(strings.ReplaceAll(tok.text, "_", ""), 10, 64)
		if err != nil {
			return nil, errorf(tok.line, "invalid integer %q", tok.text)
		}
		return n, nil
	case tokenFloat:
		f, err := strconv.ParseFloat(strings.ReplaceAll(tok.text, "_", ""), 64)
		if err != nil {
			return nil, errorf(tok.line, "invalid float %q", tok.text)
		}
		return f, nil
	case tokenLBracket:
		return p.array()
	case tokenLBrace:
		return p.inlineTable(tok.line)
	}
	return nil, errorf(tok.line, "expected value, got %s", tok)
}

// array parses after '['; newlines and a trailing comma are allowed
func (p *parser) array() ([]any, error) {
	arr := make([]any, 0)
	for {
		p.skipNewlines()
		if p.peek().typ == tokenRBracket {
			p.advance()
			return arr, nil
		}
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)

		p.skipNewlines()
		switch tok := p.advance(); tok.typ {
		case tokenComma:
		case tokenRBracket:
			return arr, nil
		default:
			return nil, errorf(tok.line, "expected ',' or ']' in array, got %s", tok)
		}
	}
}

func (p *parser) inlineTable(line int) (map[string]any, error) {
	table := make(map[string]any)
	if p.peek().typ == tokenRBrace {
		p.advance()
		return table, nil
	}
	for {
		if err := p.keyValue(table); err != nil {
			return nil, err
		}
		switch tok := p.advance(); tok.typ {
		case tokenComma:
		case tokenRBrace:
			return table, nil
		default:
			return nil, errorf(line, "expected ',' or '}' in inline table, got %s", tok)
		}
	}
}
