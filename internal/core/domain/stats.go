package domain

// ColumnStats holds the summary statistics of one numeric column of
// the filtered view.
type ColumnStats struct {
	// Column is the concept name.
	Column string

	// Count is the number of numeric-parseable cells.
	Count int

	// Mean, Median, Min and Max are over the parseable cells.
	Mean   float64
	Median float64
	Min    float64
	Max    float64

	// Std is the sample standard deviation. HasStd is false when
	// fewer than two values exist and Std is undefined.
	Std    float64
	HasStd bool
}

// HistogramBin is one bin of a column histogram. The last bin's
// upper edge is inclusive.
type HistogramBin struct {
	Low   float64
	High  float64
	Count int
}
