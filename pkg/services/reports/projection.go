package reports

import (
	"sort"

	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
)

// Project applies the local milk-type sub-filter and the stable date sort
// to an already-fetched result. It is pure: the input is never mutated, no
// I/O happens, and projecting twice yields the same output.
//
// Every row shape uses the same predicate: rows carrying a milk type must
// match it, rows without one always pass.
func Project(result domain.ReportResult, milk domain.MilkType) domain.ReportResult {
	out := domain.ReportResult{Type: result.Type}

	keep := func(m domain.MilkType) bool {
		if milk == "" || milk == domain.MilkTypeAll {
			return true
		}
		if m == "" {
			return true
		}
		return m == milk
	}

	for _, rec := range result.Records {
		if keep(rec.MilkType) {
			out.Records = append(out.Records, rec)
		}
	}
	for _, t := range result.Totals {
		if keep(t.MilkType) {
			out.Totals = append(out.Totals, t)
		}
	}
	for _, s := range result.Summaries {
		if keep(s.MilkType) {
			out.Summaries = append(out.Summaries, s)
		}
	}
	for _, c := range result.Cumulative {
		if keep(c.MilkType) {
			out.Cumulative = append(out.Cumulative, c)
		}
	}
	for _, a := range result.Absent {
		if keep(a.MilkType) {
			out.Absent = append(out.Absent, a)
		}
	}

	// Stable: ties keep their fetched order. Shapes without a date of
	// record are left in input order.
	sort.SliceStable(out.Records, func(i, j int) bool {
		return out.Records[i].SampleDate.Before(out.Records[j].SampleDate)
	})
	sort.SliceStable(out.Summaries, func(i, j int) bool {
		return out.Summaries[i].Date.Before(out.Summaries[j].Date)
	})

	return out
}
