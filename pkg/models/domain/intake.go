package domain

import "time"

// IntakeRecord is one weighed delivery as produced by the collection
// hardware. Records are immutable historical facts; the pipeline never
// writes them back.
type IntakeRecord struct {
	MemberCode      string
	DeviceID        string
	MilkType        MilkType
	SampleDate      time.Time
	Shift           Shift
	Fat             float64
	SNF             float64
	CLR             float64
	QuantityLiters  float64
	Rate            float64
	Amount          float64
	IncentiveAmount float64
	Total           float64
}

// AggregateTotal is a server-side aggregate over one milk type. The
// pipeline only formats it for display and export.
type AggregateTotal struct {
	MilkType       MilkType
	RecordCount    int
	AvgFat         float64
	AvgSNF         float64
	AvgCLR         float64
	TotalQuantity  float64
	AvgRate        float64
	TotalAmount    float64
	TotalIncentive float64
}
