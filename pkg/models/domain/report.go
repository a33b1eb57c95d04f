package domain

import "time"

type ReportType string

const (
	ReportDaywise          ReportType = "Daywise"
	ReportDashboard        ReportType = "Dashboard"
	ReportCodewise         ReportType = "Codewise"
	ReportDatewiseSummary  ReportType = "DatewiseSummary"
	ReportDatewiseDetailed ReportType = "DatewiseDetailed"
	ReportCumulative       ReportType = "Cumulative"
	ReportAbsent           ReportType = "AbsentMembers"
)

func (t ReportType) Valid() bool {
	switch t {
	case ReportDaywise, ReportDashboard, ReportCodewise, ReportDatewiseSummary,
		ReportDatewiseDetailed, ReportCumulative, ReportAbsent:
		return true
	}
	return false
}

// DatewiseSummaryRow is one per-date, per-milk-type aggregate.
type DatewiseSummaryRow struct {
	Date          time.Time
	MilkType      MilkType
	RecordCount   int
	AvgFat        float64
	AvgSNF        float64
	AvgCLR        float64
	TotalQuantity float64
	AvgRate       float64
	TotalAmount   float64
}

// CumulativeRow is one member's totals over the queried range, used by the
// payment register.
type CumulativeRow struct {
	MemberCode     string
	MemberName     string
	MilkType       MilkType
	RecordCount    int
	TotalQuantity  float64
	TotalAmount    float64
	TotalIncentive float64
	GrandTotal     float64
}

// AbsentMemberRow identifies a member with no delivery for the queried
// date and shift.
type AbsentMemberRow struct {
	MemberCode string
	MemberName string
	MilkType   MilkType
}

// ReportResult is the tagged union returned by the report gateway. Which
// slices are populated depends on Type; the rest stay nil.
type ReportResult struct {
	Type       ReportType
	Records    []IntakeRecord
	Totals     []AggregateTotal
	Summaries  []DatewiseSummaryRow
	Cumulative []CumulativeRow
	Absent     []AbsentMemberRow
}

// Empty reports whether the result carries no rows of any shape.
func (r ReportResult) Empty() bool {
	return len(r.Records) == 0 && len(r.Totals) == 0 &&
		len(r.Summaries) == 0 && len(r.Cumulative) == 0 && len(r.Absent) == 0
}
