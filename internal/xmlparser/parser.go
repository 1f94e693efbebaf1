// =============================================================================
// steam2xml - XML Achievement Parser
// =============================================================================
//
// This module streams an achievements XML document and builds the in-memory
// achievement model.
//
// EXPECTED STRUCTURE:
//
//   <achievements language="english">
//     <achievement key="ACH_WIN_ONE_GAME">
//       <name>Winner</name>
//       <description>Win one game.</description>
//     </achievement>
//   </achievements>
//
// PARSER STATES:
//   awaitingRoot -> inDocument -> inAchievement (-> inAchievement ...)
//
//   - The first element is the root; its "language" attribute is the
//     document language. A missing attribute gives an empty language.
//   - Any later element with a "key" attribute starts a new achievement.
//   - Any later element without a "key" attribute is a field of the current
//     achievement. A field named "name" sets the name; every other field
//     name sets the description. Fields hold plain text; markup inside a
//     field is an error.
//
// =============================================================================

package xmlparser

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/steam2xml/internal/types"
	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/net/html/charset"
)

var log = logging.Logger("steam2xml/xmlparser")

// =============================================================================
// ERRORS
// =============================================================================

// ErrNoRootElement is returned for a document without any element.
var ErrNoRootElement = errors.New("document has no root element")

// FieldOutsideAchievementError reports a field element that appears before
// any achievement element.
type FieldOutsideAchievementError struct {
	Field string
	Line  int
}

func (e *FieldOutsideAchievementError) Error() string {
	return fmt.Sprintf("line %d: <%s> is not inside an achievement", e.Line, e.Field)
}

// NestedElementError is returned when a field element contains markup.
type NestedElementError struct {
	Field string
	Child string
	Line  int
}

func (e *NestedElementError) Error() string {
	return fmt.Sprintf("line %d: <%s> must hold text only, found <%s>", e.Line, e.Field, e.Child)
}

// DuplicateKeyError reports a second achievement with an existing key.
type DuplicateKeyError struct {
	Key  string
	Line int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("line %d: duplicate achievement key %q", e.Line, e.Key)
}

// =============================================================================
// PARSER
// =============================================================================

// parserState tracks where the parser is in the document.
type parserState int

const (
	// awaitingRoot: no element read yet.
	awaitingRoot parserState = iota

	// inDocument: root read, no achievement started.
	inDocument

	// inAchievement: fields apply to the current achievement.
	inAchievement
)

const (
	languageAttr = "language"
	keyAttr      = "key"
	nameField    = "name"
)

// Parse reads an achievements XML document.
//
// PARAMETERS:
//   - r: The XML source. A UTF-8 byte order mark is skipped, and documents
//     declaring another encoding are decoded through golang.org/x/net charset.
//
// RETURNS:
//   - The parsed document.
//   - An error if the XML is malformed or does not follow the parser states.
func Parse(r io.Reader) (*types.Document, error) {
	p := &parser{
		decoder: newDecoder(r),
		state:   awaitingRoot,
	}
	return p.run()
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(data []byte) (*types.Document, error) {
	return Parse(bytes.NewReader(data))
}

type parser struct {
	decoder *xml.Decoder
	state   parserState
	doc     *types.Document
	current *types.Achievement
}

func newDecoder(r io.Reader) *xml.Decoder {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(3); err == nil && bytes.Equal(bom, []byte{0xEF, 0xBB, 0xBF}) {
		br.Discard(3)
	}

	d := xml.NewDecoder(br)
	d.CharsetReader = charset.NewReaderLabel
	return d
}

func (p *parser) run() (*types.Document, error) {
	for {
		tok, err := p.decoder.Token()
		if err == io.EOF {
			if p.state == awaitingRoot {
				return nil, ErrNoRootElement
			}
			return p.doc, nil
		}
		if err != nil {
			return nil, fmt.Errorf("malformed XML: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if err := p.element(start); err != nil {
			return nil, err
		}
	}
}

// element applies one start element according to the current state.
func (p *parser) element(start xml.StartElement) error {
	if p.state == awaitingRoot {
		language, found := attr(start, languageAttr)
		if !found {
			log.Warnf("root element <%s> has no %q attribute", start.Name.Local, languageAttr)
		}
		p.doc = types.NewDocument(language)
		p.state = inDocument
		return nil
	}

	if key, found := attr(start, keyAttr); found {
		a, added := p.doc.Achievements.Add(key)
		if !added {
			return &DuplicateKeyError{Key: key, Line: p.line()}
		}
		p.current = a
		p.state = inAchievement
		return nil
	}

	if p.state != inAchievement {
		return &FieldOutsideAchievementError{Field: start.Name.Local, Line: p.line()}
	}

	text, err := p.fieldText(start)
	if err != nil {
		return err
	}

	if start.Name.Local == nameField {
		p.current.Name = text
	} else {
		if start.Name.Local != "description" {
			log.Debugf("achievement %q: storing <%s> as description", p.current.Key, start.Name.Local)
		}
		p.current.Description = text
	}
	return nil
}

// fieldText reads the character data of a field element up to its end tag.
// Fields hold plain text, so a nested element is an error.
func (p *parser) fieldText(start xml.StartElement) (string, error) {
	var text strings.Builder
	for {
		tok, err := p.decoder.Token()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return "", fmt.Errorf("malformed XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			return "", &NestedElementError{Field: start.Name.Local, Child: t.Name.Local, Line: p.line()}
		case xml.EndElement:
			return text.String(), nil
		}
	}
}

func (p *parser) line() int {
	line, _ := p.decoder.InputPos()
	return line
}

// attr returns the value of the attribute with the given local name.
func attr(start xml.StartElement, name string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}
