package domain

// Concept names with a designated role in the pipeline.
const (
	// ColumnIdentifier is the per-document unique identifier column.
	ColumnIdentifier = "SOPInstanceUID"

	// ColumnDate is the designated date column used by date-range
	// filters and by exposure grouping.
	ColumnDate = "ContentDate"

	// ColumnPatient is the patient identifier column used by
	// exposure grouping.
	ColumnPatient = "PatientID"
)

// ColumnOrder is the canonical output column order. Every record is
// reindexed against this order; downstream code relies on the schema
// being identical for every record.
var ColumnOrder = []string{
	"SOPInstanceUID",
	"ContentDate",
	"ContentTime",
	"StationName",
	"PatientName",
	"PatientID",
	"PatientBirthDate",
	"PatientSex",
	"SoftwareVersions",
	"StudyInstanceUID",
	"SeriesInstanceUID",
	"SeriesNumber",
	"Person Observer Name",
	"Start of X-Ray Irradiation",
	"End of X-Ray Irradiation",
	"Total Number of Irradiation Events",
	"CT Dose Length Product Total",
	"Acquisition Protocol",
	"Irradiation Event UID",
	"Exposure Time",
	"Scanning Length",
	"Nominal Single Collimation Width",
	"Nominal Total Collimation Width",
	"Identification of the X-Ray Source",
	"KVP",
	"Maximum X-Ray Tube Current",
	"X-Ray Tube Current",
	"Exposure Time per Rotation",
	"Mean CTDIvol",
	"DLP",
}

// targetConcepts is the fixed set of concept names recognised by the
// extractor. Derived from ColumnOrder; the dictionary and the schema
// are the same set by construction.
var targetConcepts = func() map[string]struct{} {
	m := make(map[string]struct{}, len(ColumnOrder))
	for _, name := range ColumnOrder {
		m[name] = struct{}{}
	}
	return m
}()

// IsTargetConcept reports whether name is in the concept dictionary.
func IsTargetConcept(name string) bool {
	_, ok := targetConcepts[name]
	return ok
}

// statsExcluded lists columns removed from summary statistics
// regardless of numeric content. These are administrative or temporal
// identifiers, not dose metrics.
var statsExcluded = map[string]struct{}{
	"Start of X-Ray Irradiation": {},
	"End of X-Ray Irradiation":   {},
	"ContentTime":                {},
	"SeriesNumber":               {},
	"ContentDate":                {},
	"PatientBirthDate":           {},
}

// IsStatsExcluded reports whether a column is barred from summary
// statistics.
func IsStatsExcluded(column string) bool {
	_, ok := statsExcluded[column]
	return ok
}
