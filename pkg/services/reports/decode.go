package reports

import (
	"encoding/json"
	"fmt"

	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
)

// Wire shapes as emitted by the upstream reporting service. Field names
// follow the service's uppercase convention.

type wireRecord struct {
	Code       string  `json:"CODE"`
	DeviceID   string  `json:"DEVICEID"`
	MilkType   string  `json:"MILKTYPE"`
	SampleDate string  `json:"SAMPLEDATE"`
	Shift      string  `json:"SHIFT"`
	Fat        float64 `json:"FAT"`
	SNF        float64 `json:"SNF"`
	CLR        float64 `json:"CLR"`
	Qty        float64 `json:"QTY"`
	Rate       float64 `json:"RATE"`
	Amount     float64 `json:"AMOUNT"`
	Incentive  float64 `json:"INCENTIVE"`
	Total      float64 `json:"TOTAL"`
}

type wireTotal struct {
	MilkType       string  `json:"MILKTYPE"`
	RecordCount    int     `json:"COUNT"`
	AvgFat         float64 `json:"AVGFAT"`
	AvgSNF         float64 `json:"AVGSNF"`
	AvgCLR         float64 `json:"AVGCLR"`
	TotalQty       float64 `json:"TOTALQTY"`
	AvgRate        float64 `json:"AVGRATE"`
	TotalAmount    float64 `json:"TOTALAMOUNT"`
	TotalIncentive float64 `json:"TOTALINCENTIVE"`
}

type wireSummaryRow struct {
	Date        string  `json:"DATE"`
	MilkType    string  `json:"MILKTYPE"`
	RecordCount int     `json:"COUNT"`
	AvgFat      float64 `json:"AVGFAT"`
	AvgSNF      float64 `json:"AVGSNF"`
	AvgCLR      float64 `json:"AVGCLR"`
	TotalQty    float64 `json:"TOTALQTY"`
	AvgRate     float64 `json:"AVGRATE"`
	TotalAmount float64 `json:"TOTALAMOUNT"`
}

type wireCumulativeRow struct {
	Code           string  `json:"CODE"`
	Name           string  `json:"NAME"`
	MilkType       string  `json:"MILKTYPE"`
	RecordCount    int     `json:"COUNT"`
	TotalQty       float64 `json:"TOTALQTY"`
	TotalAmount    float64 `json:"TOTALAMOUNT"`
	TotalIncentive float64 `json:"TOTALINCENTIVE"`
	GrandTotal     float64 `json:"GRANDTOTAL"`
}

type wireAbsentRow struct {
	Code     string `json:"CODE"`
	Name     string `json:"NAME"`
	MilkType string `json:"MILKTYPE"`
}

type recordsEnvelope struct {
	Records []wireRecord `json:"records"`
	Totals  []wireTotal  `json:"totals"`
}

func decodeResult(report domain.ReportType, raw json.RawMessage) (domain.ReportResult, error) {
	result := domain.ReportResult{Type: report}

	switch report {
	case domain.ReportDaywise, domain.ReportDashboard, domain.ReportCodewise, domain.ReportDatewiseDetailed:
		var env recordsEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return result, err
		}
		for i, wr := range env.Records {
			rec, err := mapWireRecord(wr)
			if err != nil {
				return result, fmt.Errorf("record %d: %w", i, err)
			}
			result.Records = append(result.Records, rec)
		}
		for i, wt := range env.Totals {
			total, err := mapWireTotal(wt)
			if err != nil {
				return result, fmt.Errorf("total %d: %w", i, err)
			}
			result.Totals = append(result.Totals, total)
		}

	case domain.ReportDatewiseSummary:
		var env struct {
			Data []wireSummaryRow `json:"data"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return result, err
		}
		for i, row := range env.Data {
			date, err := domain.ParseDate(row.Date)
			if err != nil {
				return result, fmt.Errorf("summary row %d: bad date %q", i, row.Date)
			}
			milk, err := parseMilkType(row.MilkType)
			if err != nil {
				return result, fmt.Errorf("summary row %d: %w", i, err)
			}
			result.Summaries = append(result.Summaries, domain.DatewiseSummaryRow{
				Date:          date,
				MilkType:      milk,
				RecordCount:   row.RecordCount,
				AvgFat:        row.AvgFat,
				AvgSNF:        row.AvgSNF,
				AvgCLR:        row.AvgCLR,
				TotalQuantity: row.TotalQty,
				AvgRate:       row.AvgRate,
				TotalAmount:   row.TotalAmount,
			})
		}

	case domain.ReportCumulative:
		var env struct {
			Data   []wireCumulativeRow `json:"data"`
			Totals []wireTotal         `json:"totals"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return result, err
		}
		for i, row := range env.Data {
			milk, err := parseMilkType(row.MilkType)
			if err != nil {
				return result, fmt.Errorf("cumulative row %d: %w", i, err)
			}
			result.Cumulative = append(result.Cumulative, domain.CumulativeRow{
				MemberCode:     row.Code,
				MemberName:     row.Name,
				MilkType:       milk,
				RecordCount:    row.RecordCount,
				TotalQuantity:  row.TotalQty,
				TotalAmount:    row.TotalAmount,
				TotalIncentive: row.TotalIncentive,
				GrandTotal:     row.GrandTotal,
			})
		}
		for i, wt := range env.Totals {
			total, err := mapWireTotal(wt)
			if err != nil {
				return result, fmt.Errorf("total %d: %w", i, err)
			}
			result.Totals = append(result.Totals, total)
		}

	case domain.ReportAbsent:
		var env struct {
			Data []wireAbsentRow `json:"data"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return result, err
		}
		for i, row := range env.Data {
			milk, err := parseMilkType(row.MilkType)
			if err != nil {
				return result, fmt.Errorf("absent row %d: %w", i, err)
			}
			result.Absent = append(result.Absent, domain.AbsentMemberRow{
				MemberCode: row.Code,
				MemberName: row.Name,
				MilkType:   milk,
			})
		}

	default:
		return result, fmt.Errorf("no decoder for report type %s", report)
	}

	return result, nil
}

func mapWireRecord(wr wireRecord) (domain.IntakeRecord, error) {
	date, err := domain.ParseDate(wr.SampleDate)
	if err != nil {
		return domain.IntakeRecord{}, fmt.Errorf("bad sample date %q", wr.SampleDate)
	}
	milk, err := parseMilkType(wr.MilkType)
	if err != nil {
		return domain.IntakeRecord{}, err
	}
	shift := domain.Shift(wr.Shift)
	if !shift.Valid() {
		return domain.IntakeRecord{}, fmt.Errorf("bad shift %q", wr.Shift)
	}
	return domain.IntakeRecord{
		MemberCode:      wr.Code,
		DeviceID:        wr.DeviceID,
		MilkType:        milk,
		SampleDate:      date,
		Shift:           shift,
		Fat:             wr.Fat,
		SNF:             wr.SNF,
		CLR:             wr.CLR,
		QuantityLiters:  wr.Qty,
		Rate:            wr.Rate,
		Amount:          wr.Amount,
		IncentiveAmount: wr.Incentive,
		Total:           wr.Total,
	}, nil
}

func mapWireTotal(wt wireTotal) (domain.AggregateTotal, error) {
	milk, err := parseMilkType(wt.MilkType)
	if err != nil {
		return domain.AggregateTotal{}, err
	}
	return domain.AggregateTotal{
		MilkType:       milk,
		RecordCount:    wt.RecordCount,
		AvgFat:         wt.AvgFat,
		AvgSNF:         wt.AvgSNF,
		AvgCLR:         wt.AvgCLR,
		TotalQuantity:  wt.TotalQty,
		AvgRate:        wt.AvgRate,
		TotalAmount:    wt.TotalAmount,
		TotalIncentive: wt.TotalIncentive,
	}, nil
}

func parseMilkType(s string) (domain.MilkType, error) {
	m := domain.MilkType(s)
	if !m.Valid() {
		return "", fmt.Errorf("bad milk type %q", s)
	}
	return m, nil
}
