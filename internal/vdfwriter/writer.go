// =============================================================================
// steam2xml - VDF Writer Module
// =============================================================================
//
// This module builds the Steam localization tree from the achievement model
// and renders it as VDF text:
//
//   "lang"
//   {
//   	"Language"		"english"
//   	"Tokens"
//   	{
//   		"ACH_1_NAME"		"Win"
//   		"ACH_1_DESC"		"Win a game"
//   	}
//   }
//
// Both tokens are written for every achievement, with an empty string when
// the value is missing.
//
// =============================================================================

package vdfwriter

import (
	"io"

	"github.com/ginjaninja78/steam2xml/internal/types"
	"github.com/ginjaninja78/steam2xml/internal/vdf"
	"github.com/ginjaninja78/steam2xml/internal/vdfparser"
)

// RootKey is the key of the root object.
const RootKey = "lang"

// GenerateOptions contains options for VDF generation.
type GenerateOptions = vdf.EncodeOptions

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return vdf.DefaultEncodeOptions()
}

// BuildTree converts doc into the localization tree.
func BuildTree(doc *types.Document) vdf.Property {
	tokens := vdf.NewObject()
	for _, a := range doc.Achievements.All() {
		tokens.SetString(vdfparser.EncodeTokenKey(a.Key, vdfparser.FieldName), a.Name)
		tokens.SetString(vdfparser.EncodeTokenKey(a.Key, vdfparser.FieldDescription), a.Description)
	}

	body := vdf.NewObject()
	body.SetString(vdfparser.LanguageKey, doc.Language)
	body.Set(vdfparser.TokensKey, vdf.ObjectNode(tokens))

	return vdf.Property{Key: RootKey, Value: vdf.ObjectNode(body)}
}

// Generate renders doc as VDF text using the default options.
func Generate(doc *types.Document) ([]byte, error) {
	return GenerateWithOptions(doc, DefaultGenerateOptions())
}

// GenerateWithOptions renders doc as VDF text.
func GenerateWithOptions(doc *types.Document, options GenerateOptions) ([]byte, error) {
	return vdf.MarshalWithOptions(BuildTree(doc), options)
}

// Write streams the VDF text for doc to w.
func Write(w io.Writer, doc *types.Document, options GenerateOptions) error {
	return vdf.Encode(w, BuildTree(doc), options)
}
