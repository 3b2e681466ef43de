package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"

	"github.com/njclarkbmf/oraschemagen/config"
	"github.com/njclarkbmf/oraschemagen/generator"
)

func testObjects() []generator.Object {
	return []generator.Object{
		{
			Kind:  generator.KindTable,
			Name:  "DEPARTMENTS",
			Owner: "HR",
			SQL:   "CREATE TABLE DEPARTMENTS\n(\n  DEPARTMENT_ID NUMBER(4)\n);",
		},
		{
			Kind:      generator.KindData,
			Name:      "DEPARTMENTS_DATA",
			Owner:     "HR",
			SQL:       "INSERT INTO DEPARTMENTS (DEPARTMENT_ID, DEPARTMENT_NAME_JP) VALUES (1, '営業部');",
			DependsOn: []string{"HR.DEPARTMENTS"},
		},
	}
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	return cfg
}

func TestWriteSingleFileRoundTripsUTF8(t *testing.T) {
	cfg := testConfig(t)
	cfg.SingleFile = true

	w, err := NewWriter(cfg)
	require.NoError(t, err)
	objects := testObjects()

	rendered, err := w.Render(objects)
	require.NoError(t, err)

	report, err := w.Write(objects)
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.False(t, report.Coverage.Lossy())

	written, err := os.ReadFile(report.Files[0].Path)
	require.NoError(t, err)
	assert.Equal(t, rendered, string(written), "UTF-8 output must round-trip byte for byte")
	assert.Equal(t, len(written), report.Files[0].Bytes)
	assert.Equal(t, 2, report.Files[0].Objects)
}

func TestWriteSplitsByKind(t *testing.T) {
	cfg := testConfig(t)

	w, err := NewWriter(cfg)
	require.NoError(t, err)
	report, err := w.Write(testObjects())
	require.NoError(t, err)

	require.Len(t, report.Files, 2)
	assert.Equal(t, "table.sql", filepath.Base(report.Files[0].Path))
	assert.Equal(t, "data.sql", filepath.Base(report.Files[1].Path))
	assert.Equal(t, 1, report.Counts[generator.KindTable])
	assert.Equal(t, 1, report.Counts[generator.KindData])

	tableSQL, err := os.ReadFile(report.Files[0].Path)
	require.NoError(t, err)
	assert.Contains(t, string(tableSQL), "CREATE TABLE DEPARTMENTS")
	assert.NotContains(t, string(tableSQL), "INSERT INTO")
}

func TestWriteShiftJISSubstitutesUnsupportedRunes(t *testing.T) {
	cfg := testConfig(t)
	cfg.SingleFile = true
	cfg.Encoding = "shift_jis"
	cfg.IncludeHeader = false

	objects := []generator.Object{{
		Kind:  generator.KindData,
		Name:  "NOTES_DATA",
		Owner: "HR",
		// 営業部 encodes; the euro sign and the emoji do not
		SQL: "INSERT INTO NOTES (TXT) VALUES ('営業部 €100 😀');",
	}}

	w, err := NewWriter(cfg)
	require.NoError(t, err)
	report, err := w.Write(objects)
	require.NoError(t, err)

	assert.True(t, report.Coverage.Lossy())
	assert.Equal(t, 2, report.Coverage.Substituted)
	assert.Equal(t, "shift_jis", report.Coverage.Encoding)
	assert.Equal(t, []string{"HR.NOTES_DATA"}, report.Coverage.Objects)

	raw, err := os.ReadFile(report.Files[0].Path)
	require.NoError(t, err)
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(raw)
	require.NoError(t, err)
	assert.Contains(t, string(decoded), "営業部 ?100 ?")
}

func TestWriteRejectsOutOfOrderStream(t *testing.T) {
	cfg := testConfig(t)
	objects := testObjects()
	// reverse: data before the table it depends on
	objects[0], objects[1] = objects[1], objects[0]

	w, err := NewWriter(cfg)
	require.NoError(t, err)
	_, err = w.Write(objects)
	require.Error(t, err)

	var ordering *OrderingError
	require.ErrorAs(t, err, &ordering)
	assert.Equal(t, "HR.DEPARTMENTS_DATA", ordering.Object)
	assert.Equal(t, "HR.DEPARTMENTS", ordering.Missing)

	// nothing was written
	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRenderFraming(t *testing.T) {
	cfg := testConfig(t)
	w, err := NewWriter(cfg)
	require.NoError(t, err)

	text, err := w.Render(testObjects())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "-- Export dump file generated by oraschemagen"))
	assert.Contains(t, text, "-- Character Set: UTF-8")
	assert.Contains(t, text, "-- Objects: 2")
	assert.Contains(t, text, "-- TABLE: DEPARTMENTS")
	assert.Contains(t, text, "-- DATA: DEPARTMENTS_DATA")
	assert.Contains(t, text, "-- Export completed successfully")
	assert.Contains(t, text, "-- Object counts: TABLE=1 DATA=1")
}

func TestRenderWithoutHeader(t *testing.T) {
	cfg := testConfig(t)
	cfg.IncludeHeader = false
	w, err := NewWriter(cfg)
	require.NoError(t, err)

	text, err := w.Render(testObjects())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "-- TABLE: DEPARTMENTS"))
	assert.NotContains(t, text, "Export completed")
}

func TestNewWriterRejectsBadEncoding(t *testing.T) {
	cfg := testConfig(t)
	cfg.Encoding = "latin-9"
	_, err := NewWriter(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown encoding")
}

func TestNewWriterRejectsUnencodablePlaceholder(t *testing.T) {
	cfg := testConfig(t)
	cfg.Encoding = "shift_jis"
	cfg.Placeholder = "€"
	_, err := NewWriter(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "placeholder")
}
