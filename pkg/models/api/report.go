package api

type Member struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	MilkType string `json:"milk_type"`
}

type Device struct {
	ID        string   `json:"id"`
	DairyCode string   `json:"dairy_code"`
	Members   []Member `json:"members,omitempty"`
}

type IntakeRecord struct {
	Code      string  `json:"code"`
	DeviceID  string  `json:"device_id,omitempty"`
	MilkType  string  `json:"milk_type"`
	Date      string  `json:"date"`
	Shift     string  `json:"shift"`
	Fat       float64 `json:"fat"`
	SNF       float64 `json:"snf"`
	CLR       float64 `json:"clr"`
	Quantity  float64 `json:"quantity"`
	Rate      float64 `json:"rate"`
	Amount    float64 `json:"amount"`
	Incentive float64 `json:"incentive"`
	Total     float64 `json:"total"`
}

type AggregateTotal struct {
	MilkType       string  `json:"milk_type"`
	RecordCount    int     `json:"record_count"`
	AvgFat         float64 `json:"avg_fat"`
	AvgSNF         float64 `json:"avg_snf"`
	AvgCLR         float64 `json:"avg_clr"`
	TotalQuantity  float64 `json:"total_quantity"`
	AvgRate        float64 `json:"avg_rate"`
	TotalAmount    float64 `json:"total_amount"`
	TotalIncentive float64 `json:"total_incentive"`
}

type SummaryRow struct {
	Date          string  `json:"date"`
	MilkType      string  `json:"milk_type"`
	RecordCount   int     `json:"record_count"`
	AvgFat        float64 `json:"avg_fat"`
	AvgSNF        float64 `json:"avg_snf"`
	AvgCLR        float64 `json:"avg_clr"`
	TotalQuantity float64 `json:"total_quantity"`
	AvgRate       float64 `json:"avg_rate"`
	TotalAmount   float64 `json:"total_amount"`
}

type CumulativeRow struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	MilkType       string  `json:"milk_type"`
	RecordCount    int     `json:"record_count"`
	TotalQuantity  float64 `json:"total_quantity"`
	TotalAmount    float64 `json:"total_amount"`
	TotalIncentive float64 `json:"total_incentive"`
	GrandTotal     float64 `json:"grand_total"`
}

type AbsentMember struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	MilkType string `json:"milk_type"`
}

type ReportResponse struct {
	Type       string           `json:"type"`
	Records    []IntakeRecord   `json:"records,omitempty"`
	Totals     []AggregateTotal `json:"totals,omitempty"`
	Summaries  []SummaryRow     `json:"summaries,omitempty"`
	Cumulative []CumulativeRow  `json:"cumulative,omitempty"`
	Absent     []AbsentMember   `json:"absent,omitempty"`
}

type ExportResponse struct {
	File string `json:"file"`
	Path string `json:"path"`
}

type Error struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
