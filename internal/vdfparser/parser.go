// =============================================================================
// steam2xml - VDF Achievement Parser
// =============================================================================
//
// This module reads a Steam localization VDF file and builds the in-memory
// achievement model.
//
// EXPECTED STRUCTURE:
//
//   "lang"
//   {
//   	"Language"	"english"
//   	"Tokens"
//   	{
//   		"ACH_WIN_ONE_GAME_NAME"	"Winner"
//   		"ACH_WIN_ONE_GAME_DESC"	"Win one game."
//   	}
//   }
//
// TOKEN NAMING:
//   A token key ending in "_NAME" sets the name of the achievement whose key
//   is the token key without the suffix; "_DESC" sets the description.
//   Matching is exact and case-sensitive. Tokens with neither suffix are
//   skipped.
//
// =============================================================================

package vdfparser

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/steam2xml/internal/types"
	"github.com/ginjaninja78/steam2xml/internal/vdf"
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("steam2xml/vdfparser")

// Node and token names of the localization document.
const (
	LanguageKey = "Language"
	TokensKey   = "Tokens"
	NameSuffix  = "_NAME"
	DescSuffix  = "_DESC"
)

// =============================================================================
// PARSE OPTIONS
// =============================================================================

// ParseOptions controls how the localization document is read.
type ParseOptions struct {
	// Decode is passed to the VDF decoder.
	Decode vdf.DecodeOptions

	// CaseInsensitiveLookup lets "language"/"tokens" stand in for
	// "Language"/"Tokens" when no exact match exists.
	// Default: false
	CaseInsensitiveLookup bool
}

// DefaultParseOptions returns the default parse options.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Decode:                vdf.DefaultDecodeOptions(),
		CaseInsensitiveLookup: false,
	}
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a localization VDF document using the default options.
func Parse(data []byte) (*types.Document, error) {
	return ParseWithOptions(data, DefaultParseOptions())
}

// ParseWithOptions reads a localization VDF document.
//
// RETURNS:
//   - The parsed document.
//   - An error if the text is not valid VDF, or if the Language string or
//     the Tokens object is missing or has the wrong shape.
func ParseWithOptions(data []byte, options ParseOptions) (*types.Document, error) {
	root, err := vdf.UnmarshalWithOptions(data, options.Decode)
	if err != nil {
		return nil, err
	}
	return FromTree(root, options.CaseInsensitiveLookup)
}

// FromTree extracts the document from an already decoded VDF tree.
func FromTree(root *vdf.Property, caseInsensitive bool) (*types.Document, error) {
	body, err := root.Value.AsObject()
	if err != nil {
		return nil, fmt.Errorf("root %q: %w", root.Key, err)
	}

	languageNode, err := lookup(body, LanguageKey, caseInsensitive)
	if err != nil {
		return nil, err
	}
	language, err := languageNode.AsString()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LanguageKey, err)
	}

	tokensNode, err := lookup(body, TokensKey, caseInsensitive)
	if err != nil {
		return nil, err
	}
	tokens, err := tokensNode.AsObject()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", TokensKey, err)
	}

	doc := types.NewDocument(language)
	skipped := 0
	for _, token := range tokens.Properties() {
		key, field, ok := DecodeTokenKey(token.Key)
		if !ok {
			skipped++
			log.Debugf("skipping token %q: no %s or %s suffix", token.Key, NameSuffix, DescSuffix)
			continue
		}

		value, err := token.Value.AsString()
		if err != nil {
			return nil, fmt.Errorf("%s: token %q: %w", TokensKey, token.Key, err)
		}

		achievement := doc.Achievements.Ensure(key)
		switch field {
		case FieldName:
			achievement.Name = value
		case FieldDescription:
			achievement.Description = value
		}
	}

	if skipped > 0 {
		log.Infof("skipped %d token(s) that are not achievement names or descriptions", skipped)
	}

	return doc, nil
}

func lookup(obj *vdf.Object, key string, caseInsensitive bool) (vdf.Node, error) {
	if caseInsensitive {
		if n, ok := obj.LookupFold(key); ok {
			return n, nil
		}
		return vdf.Node{}, &vdf.MissingKeyError{Key: key}
	}
	return obj.Get(key)
}

// =============================================================================
// TOKEN NAMING
// =============================================================================

// Field selects which achievement string a token holds.
type Field int

const (
	// FieldName is carried by the _NAME suffix.
	FieldName Field = iota

	// FieldDescription is carried by the _DESC suffix.
	FieldDescription
)

// DecodeTokenKey splits a token key into the achievement key and field.
// ok is false when the key ends in neither suffix.
func DecodeTokenKey(token string) (key string, field Field, ok bool) {
	if key, found := strings.CutSuffix(token, NameSuffix); found {
		return key, FieldName, true
	}
	if key, found := strings.CutSuffix(token, DescSuffix); found {
		return key, FieldDescription, true
	}
	return "", 0, false
}

// EncodeTokenKey builds the token key for an achievement field.
func EncodeTokenKey(key string, field Field) string {
	if field == FieldName {
		return key + NameSuffix
	}
	return key + DescSuffix
}
