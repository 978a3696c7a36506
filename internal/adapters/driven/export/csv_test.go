package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportViewRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	columns := []string{"PatientID", "ContentDate", "DoseAreaProduct"}
	rows := [][]string{
		{"P001", "20240101", "1.5"},
		{"P002", "20240102", ""},
	}

	e := NewCSV(0)
	require.NoError(t, e.ExportView(path, columns, rows))

	gotColumns, gotRows, err := e.ReadView(path)
	require.NoError(t, err)
	assert.Equal(t, columns, gotColumns)
	assert.Equal(t, rows, gotRows)
}

func TestExportViewCustomDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")
	e := NewCSV('\t')
	require.NoError(t, e.ExportView(path, []string{"a", "b"}, [][]string{{"1", "2"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\tb\n1\t2\n", string(data))
}

func TestExportViewHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	e := NewCSV(0)
	require.NoError(t, e.ExportView(path, []string{"a", "b"}, nil))

	gotColumns, gotRows, err := e.ReadView(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, gotColumns)
	assert.Empty(t, gotRows)
}

func TestReadViewMissingFile(t *testing.T) {
	_, _, err := NewCSV(0).ReadView(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
