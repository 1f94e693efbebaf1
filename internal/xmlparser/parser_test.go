package xmlparser

import (
	"errors"
	"strings"
	"testing"

	"github.com/ginjaninja78/steam2xml/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleAchievement(t *testing.T) {
	doc, err := ParseBytes([]byte(`<achievements language="english"><achievement key="ACH_1"><name>Win</name><description>Win a game</description></achievement></achievements>`))
	require.NoError(t, err)

	assert.Equal(t, "english", doc.Language)
	assert.Equal(t, []types.Achievement{
		{Key: "ACH_1", Name: "Win", Description: "Win a game"},
	}, doc.Achievements.All())
}

func TestParse_PreservesDocumentOrder(t *testing.T) {
	input := `<?xml version="1.0" encoding="utf-8"?>
<achievements language="french">
  <!-- first -->
  <achievement key="B">
    <name>Bee</name>
    <description>Second letter</description>
  </achievement>
  <achievement key="A">
    <description>Only a description</description>
  </achievement>
  <achievement key="C" />
</achievements>
`
	doc, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "french", doc.Language)
	assert.Equal(t, []types.Achievement{
		{Key: "B", Name: "Bee", Description: "Second letter"},
		{Key: "A", Description: "Only a description"},
		{Key: "C"},
	}, doc.Achievements.All())
}

func TestParse_UnknownFieldBecomesDescription(t *testing.T) {
	doc, err := ParseBytes([]byte(`<achievements language="english"><achievement key="A"><name>N</name><descripton>typo</descripton></achievement></achievements>`))
	require.NoError(t, err)

	assert.Equal(t, "typo", doc.Achievements.Get("A").Description)
}

func TestParse_MissingLanguage(t *testing.T) {
	doc, err := ParseBytes([]byte(`<achievements><achievement key="A"><name>N</name></achievement></achievements>`))
	require.NoError(t, err)

	assert.Equal(t, "", doc.Language)
	assert.Equal(t, 1, doc.Achievements.Len())
}

func TestParse_EntitiesAndBOM(t *testing.T) {
	input := "\xEF\xBB\xBF" + `<achievements language="english"><achievement key="A"><name>Tom &amp; Jerry</name><description>&lt;3 &quot;x&quot;</description></achievement></achievements>`

	doc, err := ParseBytes([]byte(input))
	require.NoError(t, err)

	a := doc.Achievements.Get("A")
	require.NotNil(t, a)
	assert.Equal(t, "Tom & Jerry", a.Name)
	assert.Equal(t, `<3 "x"`, a.Description)
}

func TestParse_Latin1Declaration(t *testing.T) {
	input := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>" +
		"<achievements language=\"spanish\"><achievement key=\"A\"><name>Campe\xf3n</name></achievement></achievements>"

	doc, err := ParseBytes([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, "Campeón", doc.Achievements.Get("A").Name)
}

func TestParse_Errors(t *testing.T) {
	t.Run("unbalanced tags", func(t *testing.T) {
		_, err := ParseBytes([]byte(`<achievements language="english"><achievement key="A"><name>Win</description></achievement></achievements>`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "malformed XML")
	})

	t.Run("unclosed root", func(t *testing.T) {
		_, err := ParseBytes([]byte(`<achievements language="english"><achievement key="A">`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "malformed XML")
	})

	t.Run("empty document", func(t *testing.T) {
		_, err := ParseBytes([]byte(`<?xml version="1.0"?>`))
		assert.True(t, errors.Is(err, ErrNoRootElement))
	})

	t.Run("field before achievement", func(t *testing.T) {
		_, err := ParseBytes([]byte("<achievements language=\"english\">\n<name>Stray</name></achievements>"))
		var fieldErr *FieldOutsideAchievementError
		require.True(t, errors.As(err, &fieldErr), "got %v", err)
		assert.Equal(t, "name", fieldErr.Field)
		assert.Equal(t, 2, fieldErr.Line)
	})

	t.Run("duplicate key", func(t *testing.T) {
		_, err := ParseBytes([]byte(`<achievements language="english"><achievement key="A"/><achievement key="A"/></achievements>`))
		var dupErr *DuplicateKeyError
		require.True(t, errors.As(err, &dupErr), "got %v", err)
		assert.Equal(t, "A", dupErr.Key)
	})

	t.Run("markup inside a field", func(t *testing.T) {
		_, err := ParseBytes([]byte(`<achievements language="english"><achievement key="A"><description>Reach <b>5</b> wins</description></achievement></achievements>`))
		var nestedErr *NestedElementError
		require.True(t, errors.As(err, &nestedErr), "got %v", err)
		assert.Equal(t, "description", nestedErr.Field)
		assert.Equal(t, "b", nestedErr.Child)
	})
}

func TestParse_FieldTextWithCommentsAndCDATA(t *testing.T) {
	doc, err := ParseBytes([]byte(`<achievements language="english"><achievement key="A"><name>Wi<!-- x -->n</name><description><![CDATA[a < b]]></description></achievement></achievements>`))
	require.NoError(t, err)
	assert.Equal(t, "Win", doc.Achievements.Get("A").Name)
	assert.Equal(t, "a < b", doc.Achievements.Get("A").Description)
}
