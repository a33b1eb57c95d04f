package export

import (
	"strings"
	"testing"
	"time"

	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayDate(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func daywiseFixture() (domain.ReportResult, domain.ReportFilter) {
	result := domain.ReportResult{
		Type: domain.ReportDaywise,
		Records: []domain.IntakeRecord{
			{
				MemberCode:      "1",
				DeviceID:        "SCT0001",
				MilkType:        domain.MilkTypeCow,
				SampleDate:      dayDate(15),
				Shift:           domain.ShiftMorning,
				Fat:             3.5,
				SNF:             8.5,
				CLR:             27.0,
				QuantityLiters:  12.5,
				Rate:            38.0,
				Amount:          475.0,
				IncentiveAmount: 6.25,
				Total:           481.25,
			},
		},
		Totals: []domain.AggregateTotal{
			{
				MilkType:       domain.MilkTypeCow,
				RecordCount:    1,
				AvgFat:         3.5,
				AvgSNF:         8.5,
				AvgCLR:         27.0,
				TotalQuantity:  12.5,
				AvgRate:        38.0,
				TotalAmount:    475.0,
				TotalIncentive: 6.25,
			},
		},
	}
	filter := domain.ReportFilter{
		Devices: []string{"SCT0001"},
		Date:    dayDate(15),
	}
	return result, filter
}

func TestBuildCSV_Daywise(t *testing.T) {
	result, filter := daywiseFixture()

	artifact, err := BuildCSV(result, filter)
	require.NoError(t, err)

	assert.Equal(t, "Daywise_Report_SCT0001_15-01-2025.csv", artifact.Name)
	assert.Equal(t, MIMECSV, artifact.MIME)

	content := string(artifact.Content)
	assert.Contains(t, content, "Report,Daywise")
	assert.Contains(t, content, "Device,SCT0001")
	assert.Contains(t, content, "Date,15/01/2025")
	assert.Contains(t, content, "Code,Milk Type,Date,Shift,Fat,SNF,CLR,Qty (L),Rate,Amount,Incentive,Total")
	assert.Contains(t, content, "0001,COW,15/01/2025,MORNING,3.5,8.5,27.0,12.50,38.00,475.00,6.25,481.25")
	assert.Contains(t, content, "Totals")
	assert.Contains(t, content, "COW,1,3.5,8.5,27.0,12.50,38.00,475.00,6.25")
}

func TestBuildCSV_EmptyResultRefused(t *testing.T) {
	_, err := BuildCSV(domain.ReportResult{Type: domain.ReportDaywise}, domain.ReportFilter{})
	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestBuildCSV_RangeMetadata(t *testing.T) {
	result := domain.ReportResult{
		Type: domain.ReportCumulative,
		Cumulative: []domain.CumulativeRow{
			{MemberCode: "17", MemberName: "Middle", MilkType: domain.MilkTypeBuffalo,
				RecordCount: 20, TotalQuantity: 240, TotalAmount: 9120, TotalIncentive: 120, GrandTotal: 9240},
		},
	}
	filter := domain.ReportFilter{
		Devices:    []string{"SCT0001"},
		From:       dayDate(1),
		To:         dayDate(31),
		MemberFrom: "1",
		MemberTo:   "250",
	}

	artifact, err := BuildCSV(result, filter)
	require.NoError(t, err)

	assert.Equal(t, "Cumulative_Report_SCT0001_01-01-2025_to_31-01-2025.csv", artifact.Name)

	content := string(artifact.Content)
	assert.Contains(t, content, "From,01/01/2025")
	assert.Contains(t, content, "To,31/01/2025")
	assert.Contains(t, content, "Members,0001 - 0250")
	assert.Contains(t, content, "0017,Middle,BUF,20,240.00,9120.00,120.00,9240.00")
}

func TestBuildCSV_MetadataComesFirst(t *testing.T) {
	result, filter := daywiseFixture()

	artifact, err := BuildCSV(result, filter)
	require.NoError(t, err)

	lines := strings.Split(string(artifact.Content), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "Report,Daywise", lines[0])
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name   string
		report domain.ReportType
		filter domain.ReportFilter
		ext    string
		want   string
	}{
		{
			name:   "single device and date",
			report: domain.ReportDaywise,
			filter: domain.ReportFilter{Devices: []string{"SCT0001"}, Date: dayDate(15)},
			ext:    "csv",
			want:   "Daywise_Report_SCT0001_15-01-2025.csv",
		},
		{
			name:   "range",
			report: domain.ReportDatewiseSummary,
			filter: domain.ReportFilter{Devices: []string{"SCT0001"}, From: dayDate(1), To: dayDate(31)},
			ext:    "pdf",
			want:   "DatewiseSummary_Report_SCT0001_01-01-2025_to_31-01-2025.pdf",
		},
		{
			name:   "several devices omit the device part",
			report: domain.ReportDashboard,
			filter: domain.ReportFilter{Devices: []string{"SCT0001", "SCT0002"}, Date: dayDate(15)},
			ext:    "csv",
			want:   "Dashboard_Report_15-01-2025.csv",
		},
		{
			name:   "no dates at all",
			report: domain.ReportAbsent,
			filter: domain.ReportFilter{Devices: []string{"SCT0001"}},
			ext:    "csv",
			want:   "AbsentMembers_Report_SCT0001.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.report, tt.filter, tt.ext))
		})
	}
}

func TestPaddedCode(t *testing.T) {
	assert.Equal(t, "0001", paddedCode("1"))
	assert.Equal(t, "0250", paddedCode("250"))
	assert.Equal(t, "1234", paddedCode("1234"))
	assert.Equal(t, "A17", paddedCode("A17"))
}
