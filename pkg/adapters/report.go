package adapters

import (
	"github.com/dairy-tools/milk-atlas/pkg/models/api"
	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
)

func MapDomainDeviceToAPI(d domain.Device) api.Device {
	members := make([]api.Member, 0, len(d.Members))
	for _, m := range d.Members {
		members = append(members, api.Member{
			Code:     m.Code,
			Name:     m.Name,
			MilkType: string(m.MilkType),
		})
	}
	return api.Device{ID: d.ID, DairyCode: d.DairyCode, Members: members}
}

func MapDomainResultToAPI(r domain.ReportResult) api.ReportResponse {
	resp := api.ReportResponse{Type: string(r.Type)}

	for _, rec := range r.Records {
		resp.Records = append(resp.Records, api.IntakeRecord{
			Code:      rec.MemberCode,
			DeviceID:  rec.DeviceID,
			MilkType:  string(rec.MilkType),
			Date:      domain.FormatDate(rec.SampleDate),
			Shift:     string(rec.Shift),
			Fat:       rec.Fat,
			SNF:       rec.SNF,
			CLR:       rec.CLR,
			Quantity:  rec.QuantityLiters,
			Rate:      rec.Rate,
			Amount:    rec.Amount,
			Incentive: rec.IncentiveAmount,
			Total:     rec.Total,
		})
	}
	for _, t := range r.Totals {
		resp.Totals = append(resp.Totals, api.AggregateTotal{
			MilkType:       string(t.MilkType),
			RecordCount:    t.RecordCount,
			AvgFat:         t.AvgFat,
			AvgSNF:         t.AvgSNF,
			AvgCLR:         t.AvgCLR,
			TotalQuantity:  t.TotalQuantity,
			AvgRate:        t.AvgRate,
			TotalAmount:    t.TotalAmount,
			TotalIncentive: t.TotalIncentive,
		})
	}
	for _, s := range r.Summaries {
		resp.Summaries = append(resp.Summaries, api.SummaryRow{
			Date:          domain.FormatDate(s.Date),
			MilkType:      string(s.MilkType),
			RecordCount:   s.RecordCount,
			AvgFat:        s.AvgFat,
			AvgSNF:        s.AvgSNF,
			AvgCLR:        s.AvgCLR,
			TotalQuantity: s.TotalQuantity,
			AvgRate:       s.AvgRate,
			TotalAmount:   s.TotalAmount,
		})
	}
	for _, c := range r.Cumulative {
		resp.Cumulative = append(resp.Cumulative, api.CumulativeRow{
			Code:           c.MemberCode,
			Name:           c.MemberName,
			MilkType:       string(c.MilkType),
			RecordCount:    c.RecordCount,
			TotalQuantity:  c.TotalQuantity,
			TotalAmount:    c.TotalAmount,
			TotalIncentive: c.TotalIncentive,
			GrandTotal:     c.GrandTotal,
		})
	}
	for _, a := range r.Absent {
		resp.Absent = append(resp.Absent, api.AbsentMember{
			Code:     a.MemberCode,
			Name:     a.MemberName,
			MilkType: string(a.MilkType),
		})
	}

	return resp
}
