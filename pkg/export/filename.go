package export

import (
	"strings"

	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
)

// Filename builds the deterministic export name:
// {ReportType}_Report[_{deviceID}][_{date-or-range}].{ext}
// with dates as DD-MM-YYYY and ranges as DD-MM-YYYY_to_DD-MM-YYYY.
func Filename(report domain.ReportType, filter domain.ReportFilter, ext string) string {
	parts := []string{string(report) + "_Report"}

	if device := filter.Device(); device != "" {
		parts = append(parts, device)
	}

	switch {
	case !filter.Date.IsZero():
		parts = append(parts, domain.FormatFileDate(filter.Date))
	case filter.Ranged():
		parts = append(parts, domain.FormatFileDate(filter.From)+"_to_"+domain.FormatFileDate(filter.To))
	}

	return strings.Join(parts, "_") + "." + ext
}
