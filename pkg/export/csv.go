package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
)

// BuildCSV renders the projected result as a delimited-text artifact: a
// metadata block, then one header+rows table per section. It refuses with
// ErrNoData before producing anything when the result is empty.
func BuildCSV(result domain.ReportResult, filter domain.ReportFilter) (Artifact, error) {
	if result.Empty() {
		return Artifact{}, domain.ErrNoData
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	for _, row := range Metadata(result, filter) {
		if err := w.Write(row); err != nil {
			return Artifact{}, fmt.Errorf("write metadata: %w", err)
		}
	}

	for _, s := range Sections(result) {
		if err := w.Write([]string{}); err != nil {
			return Artifact{}, fmt.Errorf("write separator: %w", err)
		}
		if err := w.Write([]string{s.Title}); err != nil {
			return Artifact{}, fmt.Errorf("write section title: %w", err)
		}
		if err := w.Write(s.Header); err != nil {
			return Artifact{}, fmt.Errorf("write header: %w", err)
		}
		if err := w.WriteAll(s.Rows); err != nil {
			return Artifact{}, fmt.Errorf("write rows: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return Artifact{}, fmt.Errorf("flush csv: %w", err)
	}

	return Artifact{
		Name:    Filename(result.Type, filter, "csv"),
		MIME:    MIMECSV,
		Content: buf.Bytes(),
	}, nil
}
