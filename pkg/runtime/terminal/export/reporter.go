package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	tables "github.com/dairy-tools/milk-atlas/pkg/export"
	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
)

type TableConfig struct {
	ColumnWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{ColumnWidth: 14}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

type reportView struct {
	Title    string
	Meta     []string
	Sections []tables.Section
}

// Handle prints the projected result as fixed-width tables, one per
// section, preceded by the same metadata block the file exports carry.
func (r *Reporter) Handle(result domain.ReportResult, filter domain.ReportFilter) error {
	funcMap := template.FuncMap{
		"formatRow": func(cells []string) string {
			parts := make([]string, 0, len(cells))
			for _, cell := range cells {
				parts = append(parts, fmt.Sprintf(" %-*s ", r.config.ColumnWidth, cell))
			}
			return "|" + strings.Join(parts, "|") + "|"
		},
		"separator": func(columns int) string {
			cell := strings.Repeat("-", r.config.ColumnWidth+2)
			parts := make([]string, 0, columns)
			for i := 0; i < columns; i++ {
				parts = append(parts, cell)
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
		"columns": func(s tables.Section) int {
			return len(s.Header)
		},
	}

	tmpl := `
{{.Title}}

{{range .Meta}}{{.}}
{{end}}
{{range .Sections}}
=== {{.Title}} ===
{{separator (columns .)}}
{{formatRow .Header}}
{{separator (columns .)}}
{{range .Rows}}{{formatRow .}}
{{end}}{{separator (columns .)}}
{{end}}
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var meta []string
	for _, row := range tables.Metadata(result, filter) {
		meta = append(meta, row[0]+": "+strings.Join(row[1:], ", "))
	}

	return t.Execute(r.writer, reportView{
		Title:    fmt.Sprintf("%s Report", result.Type),
		Meta:     meta,
		Sections: tables.Sections(result),
	})
}
