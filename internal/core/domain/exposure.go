package domain

import "time"

// MultipleExposureThreshold is the minimum number of same-day
// exposures for a (patient, day) group to appear in the report.
const MultipleExposureThreshold = 3

// GroupKey identifies a cluster of exposures: one patient on one
// calendar day.
type GroupKey struct {
	// PatientID is the trimmed patient identifier.
	PatientID string

	// Date is the exposure date normalised to the calendar day.
	Date time.Time
}

// ExposureGroup is one retained cluster with its member rows in
// collection order.
type ExposureGroup struct {
	// Key is the (patient, day) pair.
	Key GroupKey

	// Rows are the member records.
	Rows []Record
}

// Count returns the group cardinality.
func (g ExposureGroup) Count() int {
	return len(g.Rows)
}

// ExposureReport is the multiple-exposure summary: every group whose
// cardinality meets the threshold, ordered by date then patient.
type ExposureReport struct {
	// Columns is the schema of the member rows.
	Columns []string

	// Groups are the retained clusters.
	Groups []ExposureGroup
}

// Empty reports whether no group met the threshold.
func (r ExposureReport) Empty() bool {
	return len(r.Groups) == 0
}

// TotalRows returns the number of rows across all groups.
func (r ExposureReport) TotalRows() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Rows)
	}
	return n
}

// TimeCount is the number of exposures recorded on one calendar day.
type TimeCount struct {
	Date  time.Time
	Count int
}
