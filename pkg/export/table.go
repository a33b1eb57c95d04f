package export

import "github.com/dairy-tools/milk-atlas/pkg/models/domain"

// Section is one logical table of an export: records, report-specific rows
// or totals. The serializers and the terminal reporter all flatten the
// heterogeneous report shapes through it.
type Section struct {
	Title  string
	Header []string
	Rows   [][]string
}

func Sections(result domain.ReportResult) []Section {
	var sections []Section

	if len(result.Records) > 0 {
		s := Section{
			Title: "Records",
			Header: []string{
				"Code", "Milk Type", "Date", "Shift", "Fat", "SNF", "CLR",
				"Qty (L)", "Rate", "Amount", "Incentive", "Total",
			},
		}
		for _, r := range result.Records {
			s.Rows = append(s.Rows, []string{
				paddedCode(r.MemberCode),
				string(r.MilkType),
				domain.FormatDate(r.SampleDate),
				string(r.Shift),
				quality(r.Fat),
				quality(r.SNF),
				quality(r.CLR),
				amount(r.QuantityLiters),
				amount(r.Rate),
				amount(r.Amount),
				amount(r.IncentiveAmount),
				amount(r.Total),
			})
		}
		sections = append(sections, s)
	}

	if len(result.Summaries) > 0 {
		s := Section{
			Title: "Datewise Summary",
			Header: []string{
				"Date", "Milk Type", "Records", "Avg Fat", "Avg SNF", "Avg CLR",
				"Total Qty (L)", "Avg Rate", "Total Amount",
			},
		}
		for _, r := range result.Summaries {
			s.Rows = append(s.Rows, []string{
				domain.FormatDate(r.Date),
				string(r.MilkType),
				count(r.RecordCount),
				quality(r.AvgFat),
				quality(r.AvgSNF),
				quality(r.AvgCLR),
				amount(r.TotalQuantity),
				amount(r.AvgRate),
				amount(r.TotalAmount),
			})
		}
		sections = append(sections, s)
	}

	if len(result.Cumulative) > 0 {
		s := Section{
			Title: "Payment Register",
			Header: []string{
				"Code", "Name", "Milk Type", "Records", "Total Qty (L)",
				"Total Amount", "Incentive", "Grand Total",
			},
		}
		for _, r := range result.Cumulative {
			s.Rows = append(s.Rows, []string{
				paddedCode(r.MemberCode),
				r.MemberName,
				string(r.MilkType),
				count(r.RecordCount),
				amount(r.TotalQuantity),
				amount(r.TotalAmount),
				amount(r.TotalIncentive),
				amount(r.GrandTotal),
			})
		}
		sections = append(sections, s)
	}

	if len(result.Absent) > 0 {
		s := Section{
			Title:  "Absent Members",
			Header: []string{"Code", "Name", "Milk Type"},
		}
		for _, r := range result.Absent {
			s.Rows = append(s.Rows, []string{
				paddedCode(r.MemberCode),
				r.MemberName,
				string(r.MilkType),
			})
		}
		sections = append(sections, s)
	}

	if len(result.Totals) > 0 {
		s := Section{
			Title: "Totals",
			Header: []string{
				"Milk Type", "Records", "Avg Fat", "Avg SNF", "Avg CLR",
				"Total Qty (L)", "Avg Rate", "Total Amount", "Total Incentive",
			},
		}
		for _, t := range result.Totals {
			s.Rows = append(s.Rows, []string{
				string(t.MilkType),
				count(t.RecordCount),
				quality(t.AvgFat),
				quality(t.AvgSNF),
				quality(t.AvgCLR),
				amount(t.TotalQuantity),
				amount(t.AvgRate),
				amount(t.TotalAmount),
				amount(t.TotalIncentive),
			})
		}
		sections = append(sections, s)
	}

	return sections
}

// metadata is the leading block describing what was queried.
func Metadata(result domain.ReportResult, filter domain.ReportFilter) [][]string {
	rows := [][]string{{"Report", string(result.Type)}}

	if device := filter.Device(); device != "" {
		rows = append(rows, []string{"Device", device})
	} else if len(filter.Devices) > 1 {
		rows = append(rows, append([]string{"Devices"}, filter.Devices...))
	}

	if !filter.Date.IsZero() {
		rows = append(rows, []string{"Date", domain.FormatDate(filter.Date)})
	} else if filter.Ranged() {
		rows = append(rows, []string{"From", domain.FormatDate(filter.From)})
		rows = append(rows, []string{"To", domain.FormatDate(filter.To)})
	}

	if filter.MemberCode != "" {
		rows = append(rows, []string{"Member", paddedCode(filter.MemberCode)})
	} else if filter.MemberFrom != "" && filter.MemberTo != "" {
		rows = append(rows, []string{"Members", paddedCode(filter.MemberFrom) + " - " + paddedCode(filter.MemberTo)})
	}

	if filter.Shift != "" {
		rows = append(rows, []string{"Shift", string(filter.Shift)})
	}

	return rows
}
