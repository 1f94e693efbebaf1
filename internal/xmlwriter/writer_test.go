package xmlwriter

import (
	"errors"
	"testing"

	"github.com/ginjaninja78/steam2xml/internal/types"
	"github.com/ginjaninja78/steam2xml/internal/xmlparser"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *types.Document {
	doc := types.NewDocument("english")
	a := doc.Achievements.Ensure("ACH_1")
	a.Name = "Win"
	a.Description = "Win a game"
	return doc
}

func TestGenerate_DefaultLayout(t *testing.T) {
	out, err := Generate(sampleDocument())
	require.NoError(t, err)

	want := `<?xml version="1.0" encoding="utf-8"?>
<achievements language="english">
  <achievement key="ACH_1">
    <name>Win</name>
    <description>Win a game</description>
  </achievement>
</achievements>
`
	assert.Equal(t, want, string(out))
}

func TestGenerate_EmptyFieldsAreNotOmitted(t *testing.T) {
	doc := types.NewDocument("german")
	doc.Achievements.Ensure("ONLY_KEY")

	out, err := GenerateWithOptions(doc, GenerateOptions{})
	require.NoError(t, err)

	assert.Equal(t,
		`<achievements language="german"><achievement key="ONLY_KEY"><name></name><description></description></achievement></achievements>`+"\n",
		string(out))
}

func TestGenerate_EmptySet(t *testing.T) {
	out, err := GenerateWithOptions(types.NewDocument(""), GenerateOptions{Indent: "\t"})
	require.NoError(t, err)
	assert.Equal(t, `<achievements language=""></achievements>`+"\n", string(out))
}

func TestGenerate_EscapesText(t *testing.T) {
	doc := types.NewDocument("english")
	a := doc.Achievements.Ensure(`A&B`)
	a.Name = "Tom & Jerry <3"

	out, err := GenerateWithOptions(doc, GenerateOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(out), `key="A&amp;B"`)
	assert.Contains(t, string(out), `<name>Tom &amp; Jerry &lt;3</name>`)
}

func TestGenerate_RoundTripsThroughParser(t *testing.T) {
	doc := types.NewDocument("english")
	for _, a := range []types.Achievement{
		{Key: "Z_LAST", Name: "Zed", Description: "multi\nline\ttext"},
		{Key: "A_FIRST", Name: `"quoted" & 'single'`, Description: "<b>not markup</b>"},
		{Key: "M_MIDDLE", Name: "Ünïcödé", Description: "日本語"},
	} {
		rec := doc.Achievements.Ensure(a.Key)
		rec.Name = a.Name
		rec.Description = a.Description
	}

	out, err := Generate(doc)
	require.NoError(t, err)

	parsed, err := xmlparser.ParseBytes(out)
	require.NoError(t, err)

	assert.Equal(t, doc.Language, parsed.Language)
	if diff := cmp.Diff(doc.Achievements.All(), parsed.Achievements.All()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWrite_PropagatesWriterErrors(t *testing.T) {
	err := Write(failingWriter{}, sampleDocument(), DefaultGenerateOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	err = Write(failingWriter{}, sampleDocument(), GenerateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
