package vdf

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// =============================================================================
// ENCODE OPTIONS
// =============================================================================

// EncodeOptions controls how VDF text is written.
type EncodeOptions struct {
	// Indent is written once per nesting level.
	// Default: "\t"
	Indent string

	// Separator is written between a key and its string value.
	// Default: "\t\t"
	Separator string

	// EscapeSequences escapes backslashes, quotes, newlines and tabs.
	// When false, a string containing a double quote cannot be written.
	// Default: true
	EscapeSequences bool
}

// DefaultEncodeOptions returns the default encode options.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Indent:          "\t",
		Separator:       "\t\t",
		EscapeSequences: true,
	}
}

// =============================================================================
// ENCODING
// =============================================================================

// ErrUnescapedQuote is returned when a string holds a double quote and
// escape sequences are disabled.
var ErrUnescapedQuote = errors.New("vdf: string contains a double quote and escape sequences are disabled")

// Marshal renders root as VDF text using the default options.
func Marshal(root Property) ([]byte, error) {
	return MarshalWithOptions(root, DefaultEncodeOptions())
}

// MarshalWithOptions renders root as VDF text.
func MarshalWithOptions(root Property, options EncodeOptions) ([]byte, error) {
	var buffer bytes.Buffer
	if err := Encode(&buffer, root, options); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Encode writes root to w.
//
// Objects are written with the opening and closing braces on their own
// lines:
//
//	"key"
//	{
//		"child"		"value"
//	}
func Encode(w io.Writer, root Property, options EncodeOptions) error {
	e := &encoder{
		w:       bufio.NewWriter(w),
		options: options,
	}
	e.property(root, 0)
	if e.err != nil {
		return e.err
	}
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("failed to write VDF: %w", err)
	}
	return nil
}

type encoder struct {
	w       *bufio.Writer
	options EncodeOptions
	err     error
}

func (e *encoder) property(p Property, depth int) {
	e.indent(depth)
	e.quoted(p.Key)

	if p.Value.Kind() == KindString {
		e.w.WriteString(e.options.Separator)
		e.quoted(p.Value.str)
		e.w.WriteByte('\n')
		return
	}

	e.w.WriteByte('\n')
	e.indent(depth)
	e.w.WriteString("{\n")
	if p.Value.obj != nil {
		for _, child := range p.Value.obj.props {
			e.property(child, depth+1)
		}
	}
	e.indent(depth)
	e.w.WriteString("}\n")
}

func (e *encoder) indent(depth int) {
	for i := 0; i < depth; i++ {
		e.w.WriteString(e.options.Indent)
	}
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
)

func (e *encoder) quoted(s string) {
	if !e.options.EscapeSequences && strings.Contains(s, `"`) && e.err == nil {
		e.err = fmt.Errorf("%w: %q", ErrUnescapedQuote, s)
	}
	e.w.WriteByte('"')
	if e.options.EscapeSequences {
		escaper.WriteString(e.w, s)
	} else {
		e.w.WriteString(s)
	}
	e.w.WriteByte('"')
}
