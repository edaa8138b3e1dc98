package substitute

import (
	"fmt"
	"sort"
	"strings"
)

// Delimiter starts every placeholder.
const Delimiter = '~'

// Mapping holds placeholder values keyed by identifier.
type Mapping map[string]string

// Clone returns an independent copy of m.
func (m Mapping) Clone() Mapping {
	c := make(Mapping, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Keys returns the identifiers in m, sorted.
func (m Mapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MissingKeyError reports a placeholder whose identifier has no value.
type MissingKeyError struct {
	Key    string
	Line   int
	Column int
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("no value for placeholder %q at line %d, column %d", e.Key, e.Line, e.Column)
}

// InvalidPlaceholderError reports a delimiter that does not start a valid
// placeholder or escape.
type InvalidPlaceholderError struct {
	Line   int
	Column int
}

func (e *InvalidPlaceholderError) Error() string {
	return fmt.Sprintf("invalid placeholder at line %d, column %d", e.Line, e.Column)
}

// token is one lexed element of a template string. Text tokens carry the
// literal output; placeholder tokens carry the identifier.
type token struct {
	text   string
	ident  string
	offset int
}

// Substitute replaces every placeholder in s with its value from m. Nothing
// is returned on error: either the whole string expands or none of it does.
func Substitute(s string, m Mapping) (string, error) {
	tokens, err := lex(s)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, tok := range tokens {
		if tok.ident == "" {
			b.WriteString(tok.text)
			continue
		}
		v, ok := m[tok.ident]
		if !ok {
			line, col := position(s, tok.offset)
			return "", &MissingKeyError{Key: tok.ident, Line: line, Column: col}
		}
		b.WriteString(v)
	}
	return b.String(), nil
}

// Placeholders returns the distinct identifiers referenced by s in order of
// first appearance.
func Placeholders(s string) ([]string, error) {
	tokens, err := lex(s)
	if err != nil {
		return nil, err
	}
	var idents []string
	seen := make(map[string]bool)
	for _, tok := range tokens {
		if tok.ident == "" || seen[tok.ident] {
			continue
		}
		seen[tok.ident] = true
		idents = append(idents, tok.ident)
	}
	return idents, nil
}

// Check verifies that s is well formed and every placeholder resolves in m,
// without building the expanded string.
func Check(s string, m Mapping) error {
	tokens, err := lex(s)
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		if tok.ident == "" {
			continue
		}
		if _, ok := m[tok.ident]; !ok {
			line, col := position(s, tok.offset)
			return &MissingKeyError{Key: tok.ident, Line: line, Column: col}
		}
	}
	return nil
}

// IsIdentifier reports whether name can be used as a placeholder.
func IsIdentifier(name string) bool {
	return name != "" && identLen(name) == len(name)
}

func lex(s string) ([]token, error) {
	var tokens []token
	start := 0
	flush := func(end int) {
		if end > start {
			tokens = append(tokens, token{text: s[start:end], offset: start})
		}
	}

	for i := 0; i < len(s); {
		if s[i] != Delimiter {
			i++
			continue
		}
		flush(i)
		rest := s[i+1:]
		switch {
		case strings.HasPrefix(rest, string(Delimiter)):
			tokens = append(tokens, token{text: string(Delimiter), offset: i})
			i += 2
		case strings.HasPrefix(rest, "{"):
			n := identLen(rest[1:])
			if n == 0 || len(rest) < n+2 || rest[n+1] != '}' {
				line, col := position(s, i)
				return nil, &InvalidPlaceholderError{Line: line, Column: col}
			}
			tokens = append(tokens, token{ident: rest[1 : n+1], offset: i})
			i += n + 3
		default:
			n := identLen(rest)
			if n == 0 {
				line, col := position(s, i)
				return nil, &InvalidPlaceholderError{Line: line, Column: col}
			}
			tokens = append(tokens, token{ident: rest[:n], offset: i})
			i += n + 1
		}
		start = i
	}
	flush(len(s))
	return tokens, nil
}

// identLen returns the length of the identifier at the start of s, or 0.
func identLen(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return i
		}
	}
	return len(s)
}

// position converts a byte offset into a 1-based line and column.
func position(s string, offset int) (line, col int) {
	before := s[:offset]
	line = strings.Count(before, "\n") + 1
	col = offset - strings.LastIndex(before, "\n")
	return line, col
}
