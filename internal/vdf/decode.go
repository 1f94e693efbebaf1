package vdf

import (
	"bytes"
	"strings"
)

// =============================================================================
// DECODE OPTIONS
// =============================================================================

// DecodeOptions controls how VDF text is read.
type DecodeOptions struct {
	// EscapeSequences enables \\, \", \n and \t inside quoted strings.
	// When false a backslash is an ordinary character and a string ends at
	// the first double quote.
	// Default: true
	EscapeSequences bool
}

// DefaultDecodeOptions returns the default decode options.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		EscapeSequences: true,
	}
}

// =============================================================================
// DECODING
// =============================================================================

// Unmarshal parses a VDF document and returns its root property.
//
// Only the first root property is read; anything after it is ignored.
// `//` comments and `[$CONDITION]` tags are skipped, and a leading UTF-8
// byte order mark is removed. Within an object a repeated key overwrites the
// earlier value.
func Unmarshal(data []byte) (*Property, error) {
	return UnmarshalWithOptions(data, DefaultDecodeOptions())
}

// UnmarshalWithOptions is Unmarshal with custom options.
func UnmarshalWithOptions(data []byte, options DecodeOptions) (*Property, error) {
	d := &decoder{
		lex: &lexer{
			data:    stripBOM(data),
			line:    1,
			escapes: options.EscapeSequences,
		},
	}
	return d.document()
}

type decoder struct {
	lex *lexer
}

func (d *decoder) document() (*Property, error) {
	tok, err := d.lex.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenEOF:
		return nil, &SyntaxError{Line: tok.line, Msg: "empty document"}
	case tokenString:
	default:
		return nil, &SyntaxError{Line: tok.line, Msg: "expected root key, found " + tok.kind.String()}
	}

	value, err := d.value(tok.text)
	if err != nil {
		return nil, err
	}
	return &Property{Key: tok.text, Value: value}, nil
}

// value reads whatever follows key: a string or a braced object.
func (d *decoder) value(key string) (Node, error) {
	tok, err := d.lex.next()
	if err != nil {
		return Node{}, err
	}
	switch tok.kind {
	case tokenString:
		return StringNode(tok.text), nil
	case tokenOpen:
		obj, err := d.object()
		if err != nil {
			return Node{}, err
		}
		return ObjectNode(obj), nil
	case tokenEOF:
		return Node{}, &SyntaxError{Line: tok.line, Msg: "unexpected end of input after key " + quote(key)}
	default:
		return Node{}, &SyntaxError{Line: tok.line, Msg: "expected value for key " + quote(key) + ", found " + tok.kind.String()}
	}
}

// object reads properties up to and including the closing brace.
func (d *decoder) object() (*Object, error) {
	obj := NewObject()
	for {
		tok, err := d.lex.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenClose:
			return obj, nil
		case tokenEOF:
			return nil, &SyntaxError{Line: tok.line, Msg: "unexpected end of input, missing }"}
		case tokenString:
			value, err := d.value(tok.text)
			if err != nil {
				return nil, err
			}
			obj.Set(tok.text, value)
		default:
			return nil, &SyntaxError{Line: tok.line, Msg: "expected key, found " + tok.kind.String()}
		}
	}
}

// =============================================================================
// LEXER
// =============================================================================

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenString
	tokenOpen
	tokenClose
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "end of input"
	case tokenString:
		return "string"
	case tokenOpen:
		return "{"
	case tokenClose:
		return "}"
	}
	return "unknown token"
}

type token struct {
	kind tokenKind
	text string
	line int
}

type lexer struct {
	data    []byte
	pos     int
	line    int
	escapes bool
}

func (l *lexer) next() (token, error) {
	for {
		l.skipSpace()
		if l.pos >= len(l.data) {
			return token{kind: tokenEOF, line: l.line}, nil
		}

		c := l.data[l.pos]
		switch {
		case c == '/' && l.peek(1) == '/':
			l.skipLine()
		case c == '[':
			if err := l.skipConditional(); err != nil {
				return token{}, err
			}
		case c == '{':
			l.pos++
			return token{kind: tokenOpen, line: l.line}, nil
		case c == '}':
			l.pos++
			return token{kind: tokenClose, line: l.line}, nil
		case c == '"':
			return l.quoted()
		default:
			return l.bare(), nil
		}
	}
}

func (l *lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.data) {
		return 0
	}
	return l.data[l.pos+offset]
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.data) {
		switch l.data[l.pos] {
		case '\n':
			l.line++
		case ' ', '\t', '\r':
		default:
			return
		}
		l.pos++
	}
}

func (l *lexer) skipLine() {
	for l.pos < len(l.data) && l.data[l.pos] != '\n' {
		l.pos++
	}
}

// skipConditional drops a platform tag such as [$WIN32] or [!$X360].
func (l *lexer) skipConditional() error {
	start := l.line
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		if c == ']' {
			return nil
		}
		if c == '\n' {
			return &SyntaxError{Line: start, Msg: "unterminated conditional"}
		}
	}
	return &SyntaxError{Line: start, Msg: "unterminated conditional"}
}

func (l *lexer) quoted() (token, error) {
	start := l.line
	l.pos++ // opening quote

	var sb strings.Builder
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch {
		case c == '"':
			l.pos++
			return token{kind: tokenString, text: sb.String(), line: start}, nil
		case c == '\\' && l.escapes && l.pos+1 < len(l.data):
			l.pos++
			switch e := l.data[l.pos]; e {
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				// Unknown sequences are kept verbatim.
				sb.WriteByte('\\')
				sb.WriteByte(e)
				if e == '\n' {
					l.line++
				}
			}
		default:
			if c == '\n' {
				l.line++
			}
			sb.WriteByte(c)
		}
		l.pos++
	}
	return token{}, &SyntaxError{Line: start, Msg: "unterminated string"}
}

func (l *lexer) bare() token {
	start := l.pos
	for l.pos < len(l.data) {
		switch l.data[l.pos] {
		case ' ', '\t', '\r', '\n', '"', '{', '}':
			return token{kind: tokenString, text: string(l.data[start:l.pos]), line: l.line}
		}
		l.pos++
	}
	return token{kind: tokenString, text: string(l.data[start:l.pos]), line: l.line}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func stripBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, utf8BOM)
}

func quote(s string) string {
	return `"` + s + `"`
}
