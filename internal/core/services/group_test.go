package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinphys/rdsr-cli/internal/core/domain"
)

func exposureRow(patient, date string) domain.Record {
	return domain.Record{
		"PatientID":   domain.StringCell(patient),
		"ContentDate": domain.StringCell(date),
	}
}

func TestMultipleExposures(t *testing.T) {
	t.Run("threshold boundary: two excluded, three included", func(t *testing.T) {
		view := viewOf(
			exposureRow("P1", "2024-01-01"),
			exposureRow("P1", "2024-01-01"),
			exposureRow("P1", "2024-01-01"),
			exposureRow("P2", "2024-01-01"),
			exposureRow("P2", "2024-01-01"),
		)

		report, err := MultipleExposures(view)

		require.NoError(t, err)
		require.Len(t, report.Groups, 1)
		assert.Equal(t, "P1", report.Groups[0].Key.PatientID)
		assert.Equal(t, 3, report.Groups[0].Count())
		assert.Equal(t, 3, report.TotalRows())
	})

	t.Run("time of day is discarded when grouping", func(t *testing.T) {
		view := viewOf(
			exposureRow("P1", "2024-01-01 08:00:00"),
			exposureRow("P1", "2024-01-01 12:30:00"),
			exposureRow("P1", "20240101"),
		)

		report, err := MultipleExposures(view)

		require.NoError(t, err)
		require.Len(t, report.Groups, 1)
		assert.Equal(t, 3, report.Groups[0].Count())
	})

	t.Run("groups ordered by date then patient", func(t *testing.T) {
		rows := []domain.Record{}
		for i := 0; i < 3; i++ {
			rows = append(rows, exposureRow("P2", "20240201"))
			rows = append(rows, exposureRow("P1", "20240201"))
			rows = append(rows, exposureRow("P9", "20240101"))
		}

		report, err := MultipleExposures(viewOf(rows...))

		require.NoError(t, err)
		require.Len(t, report.Groups, 3)
		assert.Equal(t, "P9", report.Groups[0].Key.PatientID)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), report.Groups[0].Key.Date)
		assert.Equal(t, "P1", report.Groups[1].Key.PatientID)
		assert.Equal(t, "P2", report.Groups[2].Key.PatientID)
	})

	t.Run("rows with bad keys are excluded before grouping", func(t *testing.T) {
		view := viewOf(
			exposureRow("", "2024-01-01"),
			exposureRow("", "2024-01-01"),
			exposureRow("", "2024-01-01"),
			exposureRow("P1", "not-a-date"),
			exposureRow("P1", "not-a-date"),
			exposureRow("P1", "not-a-date"),
		)

		report, err := MultipleExposures(view)

		require.NoError(t, err)
		assert.True(t, report.Empty())
	})

	t.Run("missing required columns aborts the operation", func(t *testing.T) {
		view := domain.RecordCollection{
			Columns: []string{"KVP"},
			Rows:    []domain.Record{{"KVP": domain.NumericCell(100)}},
		}

		_, err := MultipleExposures(view)

		assert.ErrorIs(t, err, domain.ErrColumnMissing)
	})

	t.Run("empty view reports no data", func(t *testing.T) {
		_, err := MultipleExposures(viewOf())
		assert.ErrorIs(t, err, domain.ErrNoData)
	})
}

func TestExposuresOverTime(t *testing.T) {
	t.Run("counts per calendar day in date order", func(t *testing.T) {
		view := viewOf(
			exposureRow("P1", "20240102"),
			exposureRow("P2", "20240101"),
			exposureRow("P3", "20240102 "),
			exposureRow("P4", "garbage"),
		)

		counts, err := ExposuresOverTime(view)

		require.NoError(t, err)
		require.Len(t, counts, 2)
		assert.Equal(t, 1, counts[0].Count)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), counts[0].Date)
		assert.Equal(t, 2, counts[1].Count)
	})

	t.Run("nothing groupable reports no data", func(t *testing.T) {
		view := viewOf(exposureRow("", "garbage"))

		_, err := ExposuresOverTime(view)

		assert.ErrorIs(t, err, domain.ErrNoData)
	})
}
