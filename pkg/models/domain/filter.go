package domain

import "time"

// ReportFilter is a validated, typed filter set as produced by a successful
// commit. It is constructed fresh per query and never persisted.
type ReportFilter struct {
	Devices []string

	// Date is set for single-date reports; From/To for range reports.
	Date time.Time
	From time.Time
	To   time.Time

	// Optional dimensions; zero values mean "all".
	Shift    Shift
	MilkType MilkType

	MemberCode string
	MemberFrom string
	MemberTo   string
}

// Device returns the single device of the filter, or "" when the filter
// spans several devices.
func (f ReportFilter) Device() string {
	if len(f.Devices) == 1 {
		return f.Devices[0]
	}
	return ""
}

// Ranged reports whether the filter uses a from/to range rather than a
// single date.
func (f ReportFilter) Ranged() bool {
	return !f.From.IsZero() || !f.To.IsZero()
}
