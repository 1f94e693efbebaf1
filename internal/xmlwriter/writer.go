// =============================================================================
// steam2xml - XML Writer Module
// =============================================================================
//
// This module generates the achievements XML document from the in-memory
// achievement model.
//
// XML STRUCTURE:
//
//   <?xml version="1.0" encoding="utf-8"?>
//   <achievements language="english">
//     <achievement key="ACH_WIN_ONE_GAME">
//       <name>Winner</name>
//       <description>Win one game.</description>
//     </achievement>
//   </achievements>
//
// Every achievement gets both a <name> and a <description> element, even
// when the value is empty, so the output always matches the shape the XML
// parser reads.
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/ginjaninja78/steam2xml/internal/types"
)

// Element and attribute names of the achievements document.
const (
	RootElement        = "achievements"
	AchievementElement = "achievement"
	NameElement        = "name"
	DescriptionElement = "description"
	LanguageAttribute  = "language"
	KeyAttribute       = "key"
)

const declaration = `<?xml version="1.0" encoding="utf-8"?>`

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// An empty string writes the document body on a single line.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
	}
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Generate creates the XML document for doc using the default options.
func Generate(doc *types.Document) ([]byte, error) {
	return GenerateWithOptions(doc, DefaultGenerateOptions())
}

// GenerateWithOptions creates the XML document for doc.
func GenerateWithOptions(doc *types.Document, options GenerateOptions) ([]byte, error) {
	var buffer bytes.Buffer
	if err := Write(&buffer, doc, options); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Write streams the XML document for doc to w.
//
// PARAMETERS:
//   - w: The destination.
//   - doc: The language and achievements to write.
//   - options: The generation options.
//
// RETURNS:
//   - An error if encoding or writing fails. Output already written to w
//     is not rolled back.
func Write(w io.Writer, doc *types.Document, options GenerateOptions) error {
	if options.IncludeXMLDeclaration {
		if _, err := io.WriteString(w, declaration+"\n"); err != nil {
			return fmt.Errorf("failed to write XML declaration: %w", err)
		}
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", options.Indent)

	root := xml.StartElement{
		Name: xml.Name{Local: RootElement},
		Attr: []xml.Attr{attr(LanguageAttribute, doc.Language)},
	}
	if err := enc.EncodeToken(root); err != nil {
		return fmt.Errorf("failed to encode <%s>: %w", RootElement, err)
	}

	for _, achievement := range doc.Achievements.All() {
		if err := writeAchievement(enc, achievement); err != nil {
			return err
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return fmt.Errorf("failed to encode </%s>: %w", RootElement, err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("failed to flush XML: %w", err)
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("failed to write XML: %w", err)
	}
	return nil
}

// writeAchievement encodes one <achievement> element with both fields.
func writeAchievement(enc *xml.Encoder, achievement types.Achievement) error {
	start := xml.StartElement{
		Name: xml.Name{Local: AchievementElement},
		Attr: []xml.Attr{attr(KeyAttribute, achievement.Key)},
	}
	if err := enc.EncodeToken(start); err != nil {
		return fmt.Errorf("failed to encode achievement %q: %w", achievement.Key, err)
	}

	if err := writeTextElement(enc, NameElement, achievement.Name); err != nil {
		return fmt.Errorf("failed to encode achievement %q: %w", achievement.Key, err)
	}
	if err := writeTextElement(enc, DescriptionElement, achievement.Description); err != nil {
		return fmt.Errorf("failed to encode achievement %q: %w", achievement.Key, err)
	}

	if err := enc.EncodeToken(start.End()); err != nil {
		return fmt.Errorf("failed to encode achievement %q: %w", achievement.Key, err)
	}
	return nil
}

// writeTextElement encodes <name>value</name>. Empty values still produce
// an open and close tag.
func writeTextElement(enc *xml.Encoder, name, value string) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if value != "" {
		if err := enc.EncodeToken(xml.CharData(value)); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}
