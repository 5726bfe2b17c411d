package vocab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadPack_JSON(t *testing.T) {
	p, err := LoadPack(filepath.Join("testdata", "basics.json"))
	require.NoError(t, err)

	assert.Equal(t, "Spanish Basics", p.Name)
	assert.Equal(t, "es", p.Language.Code)
	require.Len(t, p.Lessons, 2)
	assert.Equal(t, "es.1", p.Lessons[0].ID)

	entries := p.Entries()
	require.Len(t, entries, 6)
	assert.Equal(t, "es.1.1", entries[0].ID)
	assert.Equal(t, "es.1", entries[0].LessonID)
	assert.Equal(t, "es-mother", entries[4].ID)
	assert.Equal(t, "es.2", entries[4].LessonID)
	assert.True(t, entries[0].HasExamples())
	assert.False(t, entries[2].HasExamples())
}

func TestLoadPack_UnsupportedExtension(t *testing.T) {
	_, err := LoadPack("pack.csv")
	assert.Error(t, err)
}

func TestParseJSON_SchemaViolation(t *testing.T) {
	_, err := ParseJSON([]byte(`{"name": "x", "version": "1.0.0", "language": {"code": "es", "name": "Spanish"}, "lessons": []}`))
	assert.Error(t, err, "empty lessons array must fail minItems")

	_, err = ParseJSON([]byte(`{"name": "x"`))
	assert.Error(t, err)
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	p := &Pack{
		Version:  "not-a-version",
		Language: Language{Code: "de"},
		Lessons: []Lesson{{
			Title:      "Basics",
			Difficulty: 9,
			Entries: []Entry{
				{ID: "a", SourceWord: "dog", TargetWord: "Hund"},
				{ID: "a", SourceWord: "", TargetWord: "Katze"},
			},
		}},
	}

	err := p.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 5)
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "v1.0.1", -1},
		{"2.0.0", "1.9.9", 1},
		{"v1.10.0", "1.9.0", 1},
	}
	for _, tt := range tests {
		if got := CompareVersions(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLoadPack_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "german.xlsx")

	f := excelize.NewFile()
	_, err := f.NewSheet(MetaSheet)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(MetaSheet, "A1", &[]any{"name", "German Starter"}))
	require.NoError(t, f.SetSheetRow(MetaSheet, "A2", &[]any{"version", "0.3.0"}))
	require.NoError(t, f.SetSheetRow(MetaSheet, "A3", &[]any{"language_code", "DE"}))
	require.NoError(t, f.SetSheetRow(MetaSheet, "A4", &[]any{"language_name", "German"}))

	_, err = f.NewSheet("Animals")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Animals", "A1", &[]any{"Source", "Target", "Example_Source", "Example_Target"}))
	require.NoError(t, f.SetSheetRow("Animals", "A2", &[]any{"dog", "Hund", "The dog barks.", "Der Hund bellt."}))
	require.NoError(t, f.SetSheetRow("Animals", "A3", &[]any{"cat", "Katze"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	p, err := LoadPack(path)
	require.NoError(t, err)
	assert.Equal(t, "German Starter", p.Name)
	assert.Equal(t, "de", p.Language.Code)
	require.Len(t, p.Lessons, 1)
	assert.Equal(t, "Animals", p.Lessons[0].Title)

	entries := p.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Der Hund bellt.", entries[0].ExampleTarget)
	assert.Equal(t, "de.1.2", entries[1].ID)
}

func TestLoadPack_WorkbookMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")

	f := excelize.NewFile()
	_, err := f.NewSheet("Words")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Words", "A1", &[]any{"source", "meaning"}))
	require.NoError(t, f.SetSheetRow("Words", "A2", &[]any{"dog", "Hund"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err = LoadPack(path)
	assert.ErrorContains(t, err, "missing \"target\" column")
}

func TestLoadPack_MissingFile(t *testing.T) {
	_, err := LoadPack(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
