package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/clinphys/rdsr-cli/internal/core/domain"
	"github.com/clinphys/rdsr-cli/internal/logger"
)

// MultipleExposures groups the view by (patient identifier, calendar
// day) and retains the groups whose cardinality meets the threshold.
//
// Rows with a missing or unparseable patient identifier or date are
// excluded before grouping; they never form a group of their own.
// Groups are ordered by date, then patient within the date; member
// rows keep collection order. The patient and date columns are a hard
// precondition: their absence aborts this operation only.
func MultipleExposures(view domain.RecordCollection) (domain.ExposureReport, error) {
	report := domain.ExposureReport{Columns: view.Columns}

	if !containsColumn(view.Columns, domain.ColumnPatient) ||
		!containsColumn(view.Columns, domain.ColumnDate) {
		return report, fmt.Errorf("grouping needs %s and %s: %w",
			domain.ColumnPatient, domain.ColumnDate, domain.ErrColumnMissing)
	}
	if view.Empty() {
		return report, domain.ErrNoData
	}

	groups := make(map[domain.GroupKey][]domain.Record)
	for _, row := range view.Rows {
		key, ok := groupKey(row)
		if !ok {
			continue
		}
		groups[key] = append(groups[key], row)
	}

	for key, rows := range groups {
		if len(rows) < domain.MultipleExposureThreshold {
			continue
		}
		report.Groups = append(report.Groups, domain.ExposureGroup{Key: key, Rows: rows})
	}

	sort.Slice(report.Groups, func(i, j int) bool {
		a, b := report.Groups[i].Key, report.Groups[j].Key
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.PatientID < b.PatientID
	})

	logger.Debug("multiple exposures: %d groups, %d rows",
		len(report.Groups), report.TotalRows())
	return report, nil
}

// ExposuresOverTime counts the view's exposures per calendar day.
// Rows whose patient or date cannot be read are excluded, not
// counted as zero.
func ExposuresOverTime(view domain.RecordCollection) ([]domain.TimeCount, error) {
	if !containsColumn(view.Columns, domain.ColumnPatient) ||
		!containsColumn(view.Columns, domain.ColumnDate) {
		return nil, fmt.Errorf("exposure counting needs %s and %s: %w",
			domain.ColumnPatient, domain.ColumnDate, domain.ErrColumnMissing)
	}
	if view.Empty() {
		return nil, domain.ErrNoData
	}

	perDay := make(map[string]domain.TimeCount)
	for _, row := range view.Rows {
		key, ok := groupKey(row)
		if !ok {
			continue
		}
		day := key.Date.Format("2006-01-02")
		tc := perDay[day]
		tc.Date = key.Date
		tc.Count++
		perDay[day] = tc
	}

	out := make([]domain.TimeCount, 0, len(perDay))
	for _, tc := range perDay {
		out = append(out, tc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	if len(out) == 0 {
		return nil, domain.ErrNoData
	}
	return out, nil
}

// groupKey derives the (patient, day) key of one row. Blank patient
// identifiers and unparseable dates disqualify the row.
func groupKey(row domain.Record) (domain.GroupKey, bool) {
	pid := strings.TrimSpace(row.Cell(domain.ColumnPatient).String())
	if pid == "" {
		return domain.GroupKey{}, false
	}
	date, ok := domain.ParseDate(row.Cell(domain.ColumnDate).String())
	if !ok {
		return domain.GroupKey{}, false
	}
	return domain.GroupKey{PatientID: pid, Date: date}, true
}
