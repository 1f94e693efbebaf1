package vdfparser

import (
	"errors"
	"testing"

	"github.com/ginjaninja78/steam2xml/internal/types"
	"github.com/ginjaninja78/steam2xml/internal/vdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Scenario(t *testing.T) {
	doc, err := Parse([]byte(`"lang" { "Language" "english" "Tokens" { "ACH_1_NAME" "Win" "ACH_1_DESC" "Win a game" } }`))
	require.NoError(t, err)

	assert.Equal(t, "english", doc.Language)
	assert.Equal(t, []types.Achievement{
		{Key: "ACH_1", Name: "Win", Description: "Win a game"},
	}, doc.Achievements.All())
}

func TestParse_SuffixDecoding(t *testing.T) {
	input := `"lang"
{
	"Language"	"english"
	"Tokens"
	{
		"B_DESC"	"b description"
		"A_NAME"	"a name"
		"B_NAME"	"b name"
		"UNRELATED"	"ignored"
		"META"
		{
			"x"	"y"
		}
		"C_name"	"lowercase suffix is ignored"
		"X_NAME_DESC"	"desc of X_NAME"
		"A_NAME"	"a name again"
	}
}`
	doc, err := Parse([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, []types.Achievement{
		{Key: "B", Name: "b name", Description: "b description"},
		{Key: "A", Name: "a name again"},
		{Key: "X_NAME", Description: "desc of X_NAME"},
	}, doc.Achievements.All())
	assert.Nil(t, doc.Achievements.Get("UNRELATED"))
	assert.Nil(t, doc.Achievements.Get("META"))
	assert.Nil(t, doc.Achievements.Get("C"))
	assert.Nil(t, doc.Achievements.Get("C_name"))
}

func TestParse_CaseInsensitiveLookup(t *testing.T) {
	input := []byte(`"lang" { "language" "english" "tokens" { "A_NAME" "x" } }`)

	_, err := Parse(input)
	var missing *vdf.MissingKeyError
	require.True(t, errors.As(err, &missing), "got %v", err)
	assert.Equal(t, LanguageKey, missing.Key)

	options := DefaultParseOptions()
	options.CaseInsensitiveLookup = true
	doc, err := ParseWithOptions(input, options)
	require.NoError(t, err)
	assert.Equal(t, "english", doc.Language)
	assert.Equal(t, 1, doc.Achievements.Len())
}

func TestParse_LowercaseTokensNodeIsMissing(t *testing.T) {
	_, err := Parse([]byte(`"lang" { "Language" "english" "tokens" { "A_NAME" "x" } }`))
	var missing *vdf.MissingKeyError
	require.True(t, errors.As(err, &missing), "got %v", err)
	assert.Equal(t, TokensKey, missing.Key)
}

func TestParse_ShapeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		missing string
	}{
		{name: "missing tokens", input: `"lang" { "Language" "english" }`, missing: TokensKey},
		{name: "missing language", input: `"lang" { "Tokens" { } }`, missing: LanguageKey},
		{name: "tokens is a string", input: `"lang" { "Language" "english" "Tokens" "oops" }`},
		{name: "language is an object", input: `"lang" { "Language" { } "Tokens" { } }`},
		{name: "token is an object", input: `"lang" { "Language" "english" "Tokens" { "A_NAME" { } } }`},
		{name: "root is a string", input: `"lang" "english"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)

			if tt.missing != "" {
				var missing *vdf.MissingKeyError
				require.True(t, errors.As(err, &missing), "got %v", err)
				assert.Equal(t, tt.missing, missing.Key)
				return
			}
			var shape *vdf.ShapeError
			assert.True(t, errors.As(err, &shape), "got %v", err)
		})
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse([]byte(`"lang" { "Language" "english"`))
	var syntaxErr *vdf.SyntaxError
	assert.True(t, errors.As(err, &syntaxErr), "got %v", err)
}

func TestTokenKeys(t *testing.T) {
	tests := []struct {
		token string
		key   string
		field Field
		ok    bool
	}{
		{token: "ACH_1_NAME", key: "ACH_1", field: FieldName, ok: true},
		{token: "ACH_1_DESC", key: "ACH_1", field: FieldDescription, ok: true},
		{token: "_NAME", key: "", field: FieldName, ok: true},
		{token: "ACH_1_Name", ok: false},
		{token: "ACH_1_DESCRIPTION", ok: false},
		{token: "NAME", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			key, field, ok := DecodeTokenKey(tt.token)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.field, field)
			assert.Equal(t, tt.token, EncodeTokenKey(key, field))
		})
	}
}
