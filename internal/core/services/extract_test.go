package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinphys/rdsr-cli/internal/core/domain"
)

func TestBuildRecord(t *testing.T) {
	t.Run("extracts each value kind", func(t *testing.T) {
		doc := domain.Document{
			Content: []domain.ContentNode{
				{ConceptName: "KVP", Value: domain.Numeric(120)},
				{ConceptName: "Acquisition Protocol", Value: domain.Text("Chest CT")},
				{ConceptName: "Start of X-Ray Irradiation", Value: domain.DateTime("20240101120000")},
				{ConceptName: "Irradiation Event UID", Value: domain.Identifier("1.2.3.4")},
				{ConceptName: "Person Observer Name", Value: domain.PersonName("DOE^JANE")},
			},
		}

		rec := BuildRecord(doc)

		assert.Equal(t, domain.NumericCell(120), rec.Cell("KVP"))
		assert.Equal(t, domain.StringCell("Chest CT"), rec.Cell("Acquisition Protocol"))
		assert.Equal(t, domain.StringCell("20240101120000"), rec.Cell("Start of X-Ray Irradiation"))
		assert.Equal(t, domain.StringCell("1.2.3.4"), rec.Cell("Irradiation Event UID"))
		assert.Equal(t, domain.StringCell("DOE^JANE"), rec.Cell("Person Observer Name"))
	})

	t.Run("last write wins in traversal order", func(t *testing.T) {
		// Two irradiation events each carrying KVP; the later one in
		// pre-order wins.
		doc := domain.Document{
			Content: []domain.ContentNode{
				{
					ConceptName: "Irradiation Event UID",
					Value:       domain.Identifier("event-1"),
					Children: []domain.ContentNode{
						{ConceptName: "KVP", Value: domain.Numeric(80)},
					},
				},
				{
					ConceptName: "Irradiation Event UID",
					Value:       domain.Identifier("event-2"),
					Children: []domain.ContentNode{
						{ConceptName: "KVP", Value: domain.Numeric(120)},
					},
				},
			},
		}

		rec := BuildRecord(doc)

		assert.Equal(t, domain.NumericCell(120), rec.Cell("KVP"))
		assert.Equal(t, domain.StringCell("event-2"), rec.Cell("Irradiation Event UID"))
	})

	t.Run("traverses children of unmatched nodes", func(t *testing.T) {
		doc := domain.Document{
			Content: []domain.ContentNode{
				{
					// Container with no concept annotation at all.
					Children: []domain.ContentNode{
						{
							ConceptName: "CT Acquisition", // not in the dictionary
							Children: []domain.ContentNode{
								{ConceptName: "Mean CTDIvol", Value: domain.Numeric(4.2)},
							},
						},
					},
				},
			},
		}

		rec := BuildRecord(doc)

		assert.Equal(t, domain.NumericCell(4.2), rec.Cell("Mean CTDIvol"))
		assert.False(t, rec.Cell("CT Acquisition").Present)
	})

	t.Run("matched concept without usable value is skipped", func(t *testing.T) {
		doc := domain.Document{
			Content: []domain.ContentNode{
				{ConceptName: "KVP", Value: domain.Absent()},
			},
		}

		rec := BuildRecord(doc)

		assert.True(t, rec.Empty())
	})

	t.Run("top-level attributes overlay tree values as strings", func(t *testing.T) {
		doc := domain.Document{
			Content: []domain.ContentNode{
				{ConceptName: "SOPInstanceUID", Value: domain.Identifier("from-tree")},
			},
			Attributes: map[string]string{
				"SOPInstanceUID": "from-attributes",
				"PatientID":      "P-001",
				"NotAConcept":    "ignored",
			},
		}

		rec := BuildRecord(doc)

		assert.Equal(t, domain.StringCell("from-attributes"), rec.Cell("SOPInstanceUID"))
		assert.Equal(t, domain.StringCell("P-001"), rec.Cell("PatientID"))
		assert.False(t, rec.Cell("NotAConcept").Present)
	})
}

func TestReindex(t *testing.T) {
	t.Run("column set equals canonical order for sparse records", func(t *testing.T) {
		rec := Reindex(domain.Record{"KVP": domain.NumericCell(100)})

		require.Len(t, rec, len(domain.ColumnOrder))
		for _, col := range domain.ColumnOrder {
			_, ok := rec[col]
			assert.True(t, ok, "column %q must be present", col)
		}
		assert.Equal(t, domain.NumericCell(100), rec.Cell("KVP"))
		assert.False(t, rec.Cell("DLP").Present)
	})

	t.Run("missing concepts render as empty strings", func(t *testing.T) {
		rec := Reindex(domain.Record{})

		for _, col := range domain.ColumnOrder {
			assert.Equal(t, "", rec.Cell(col).String())
		}
	})
}
