package services

import (
	"math"
	"sort"

	"github.com/clinphys/rdsr-cli/internal/core/domain"
	"github.com/clinphys/rdsr-cli/internal/logger"
)

// SummaryStats computes count, mean, median, min, max and sample
// standard deviation for every numeric column of the view.
//
// A column is numeric when at least one cell parses as a number;
// non-parseable cells are treated as missing, not as zero. The fixed
// exclusion list (irradiation timestamps, content time and date,
// series number, birth date) is always removed first, even when those
// columns look numeric.
func SummaryStats(view domain.RecordCollection) ([]domain.ColumnStats, error) {
	if view.Empty() {
		return nil, domain.ErrNoData
	}

	var out []domain.ColumnStats
	for _, col := range view.Columns {
		if domain.IsStatsExcluded(col) {
			continue
		}
		values := columnValues(view, col)
		if len(values) == 0 {
			continue
		}
		out = append(out, columnStats(col, values))
	}

	if len(out) == 0 {
		return nil, domain.ErrNoNumericData
	}
	logger.Debug("summary statistics over %d columns", len(out))
	return out, nil
}

// NumericColumns lists the view columns holding at least one
// numeric-parseable value, in schema order.
func NumericColumns(view domain.RecordCollection) []string {
	var out []string
	for _, col := range view.Columns {
		if len(columnValues(view, col)) > 0 {
			out = append(out, col)
		}
	}
	return out
}

// Histogram bins one column of the view into bins equal-width bins
// over [min, max]. Unparseable cells are excluded, not zero. A
// non-positive bin count defaults to 20; a constant column collapses
// to a single bin.
func Histogram(view domain.RecordCollection, column string, bins int) ([]domain.HistogramBin, error) {
	if view.Empty() {
		return nil, domain.ErrNoData
	}
	if !containsColumn(view.Columns, column) {
		return nil, domain.ErrColumnMissing
	}

	values := columnValues(view, column)
	if len(values) == 0 {
		return nil, domain.ErrNoNumericData
	}
	if bins <= 0 {
		bins = 20
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if min == max {
		return []domain.HistogramBin{{Low: min, High: max, Count: len(values)}}, nil
	}

	width := (max - min) / float64(bins)
	out := make([]domain.HistogramBin, bins)
	for i := range out {
		out[i].Low = min + float64(i)*width
		out[i].High = min + float64(i+1)*width
	}
	out[bins-1].High = max

	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out, nil
}

// columnValues collects the numeric-parseable cells of one column.
func columnValues(view domain.RecordCollection, column string) []float64 {
	var values []float64
	for _, row := range view.Rows {
		if v, ok := row.Cell(column).Float(); ok {
			values = append(values, v)
		}
	}
	return values
}

// columnStats computes the statistics of one non-empty value slice.
func columnStats(column string, values []float64) domain.ColumnStats {
	stats := domain.ColumnStats{
		Column: column,
		Count:  len(values),
		Min:    values[0],
		Max:    values[0],
	}

	sum := 0.0
	for _, v := range values {
		sum += v
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
	}
	stats.Mean = sum / float64(len(values))
	stats.Median = median(values)

	// Sample standard deviation; undefined for a single value.
	if len(values) > 1 {
		ss := 0.0
		for _, v := range values {
			d := v - stats.Mean
			ss += d * d
		}
		stats.Std = math.Sqrt(ss / float64(len(values)-1))
		stats.HasStd = true
	}
	return stats
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
