package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
)

// Upstream is the remote reporting service. Parameters are query-string
// encoded; responses are JSON documents whose shape depends on the
// endpoint.
type Upstream interface {
	Get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error)
}

type Gateway interface {
	// Query maps a validated filter onto one report endpoint, performs a
	// single round trip and decodes the response. Malformed responses fail
	// fast as a FetchError rather than rendering blank fields downstream.
	Query(ctx context.Context, report domain.ReportType, filter domain.ReportFilter) (domain.ReportResult, error)
}

// The upstream returns the complete filtered set in one page.
const pageSize = "1000"

var endpoints = map[domain.ReportType]string{
	domain.ReportDaywise:          "/reports/daywise",
	domain.ReportDashboard:        "/reports/daywise/devices",
	domain.ReportCodewise:         "/reports/codewise",
	domain.ReportDatewiseSummary:  "/reports/datewise/summary",
	domain.ReportDatewiseDetailed: "/reports/datewise/detailed",
	domain.ReportCumulative:       "/reports/cumulative",
	domain.ReportAbsent:           "/reports/absent",
}

type gateway struct {
	upstream Upstream
}

func NewGateway(upstream Upstream) Gateway {
	return &gateway{upstream: upstream}
}

func (g *gateway) Query(
	ctx context.Context,
	report domain.ReportType,
	filter domain.ReportFilter,
) (domain.ReportResult, error) {
	endpoint, ok := endpoints[report]
	if !ok {
		return domain.ReportResult{}, fmt.Errorf("unsupported report type: %s", report)
	}

	raw, err := g.upstream.Get(ctx, endpoint, queryParams(filter))
	if err != nil {
		return domain.ReportResult{}, err
	}

	result, err := decodeResult(report, raw)
	if err != nil {
		return domain.ReportResult{}, &domain.FetchError{
			Message: fmt.Sprintf("malformed %s response", report),
			Err:     err,
		}
	}
	return result, nil
}

func queryParams(filter domain.ReportFilter) url.Values {
	params := url.Values{}
	for _, id := range filter.Devices {
		params.Add("device_id", id)
	}
	if !filter.Date.IsZero() {
		params.Set("date", domain.FormatDate(filter.Date))
	}
	if !filter.From.IsZero() {
		params.Set("from", domain.FormatDate(filter.From))
	}
	if !filter.To.IsZero() {
		params.Set("to", domain.FormatDate(filter.To))
	}
	if filter.Shift != "" {
		params.Set("shift", string(filter.Shift))
	}
	if filter.MilkType != "" && filter.MilkType != domain.MilkTypeAll {
		params.Set("milk_type", string(filter.MilkType))
	}
	if filter.MemberCode != "" {
		params.Set("member_code", filter.MemberCode)
	}
	if filter.MemberFrom != "" {
		params.Set("member_from", filter.MemberFrom)
	}
	if filter.MemberTo != "" {
		params.Set("member_to", filter.MemberTo)
	}
	params.Set("page_size", pageSize)
	return params
}
