package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dairy-tools/milk-atlas/pkg/export"
	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
	termexport "github.com/dairy-tools/milk-atlas/pkg/runtime/terminal/export"
	"github.com/dairy-tools/milk-atlas/pkg/services/config"
	"github.com/dairy-tools/milk-atlas/pkg/services/filters"
	"github.com/dairy-tools/milk-atlas/pkg/services/reports"
	"github.com/dairy-tools/milk-atlas/pkg/store/httpclient"
	"github.com/spf13/cobra"
)

var reportTypes = map[string]domain.ReportType{
	"daywise":           domain.ReportDaywise,
	"dashboard":         domain.ReportDashboard,
	"codewise":          domain.ReportCodewise,
	"datewise-summary":  domain.ReportDatewiseSummary,
	"datewise-detailed": domain.ReportDatewiseDetailed,
	"cumulative":        domain.ReportCumulative,
	"absent":            domain.ReportAbsent,
}

type ReportCmd struct {
	profilesPath string
	profile      string
	reportType   string
	devices      []string
	date         string
	from         string
	to           string
	shift        string
	milkType     string
	memberCode   string
	memberFrom   string
	memberTo     string
	format       string
	outDir       string

	reporter *termexport.Reporter
}

func NewReportCmd(reporter *termexport.Reporter) *cobra.Command {
	rc := &ReportCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run a report query and print or export it",
		RunE:  rc.run,
	}

	// Define flags
	cmd.Flags().StringVar(&rc.profilesPath, "profiles", "", "Path to the reporting-service profiles file")
	cmd.Flags().StringVar(&rc.profile, "profile", "default", "Profile to connect with")
	cmd.Flags().StringVar(&rc.reportType, "type", "", "Report type (e.g. daywise, cumulative)")
	cmd.Flags().StringSliceVar(&rc.devices, "device", nil, "Device ID (repeatable)")
	cmd.Flags().StringVar(&rc.date, "date", "", "Sample date, DD/MM/YYYY")
	cmd.Flags().StringVar(&rc.from, "from", "", "Range start, DD/MM/YYYY")
	cmd.Flags().StringVar(&rc.to, "to", "", "Range end, DD/MM/YYYY")
	cmd.Flags().StringVar(&rc.shift, "shift", "", "Shift (MORNING or EVENING)")
	cmd.Flags().StringVar(&rc.milkType, "milk-type", "", "Milk type (COW, BUF or ALL)")
	cmd.Flags().StringVar(&rc.memberCode, "member", "", "Member code")
	cmd.Flags().StringVar(&rc.memberFrom, "member-from", "", "Member code range start")
	cmd.Flags().StringVar(&rc.memberTo, "member-to", "", "Member code range end")
	cmd.Flags().StringVar(&rc.format, "export", "", "Export instead of print: csv or pdf")
	cmd.Flags().StringVar(&rc.outDir, "out", "exports", "Export directory")

	// Mark required flags
	_ = cmd.MarkFlagRequired("profiles")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	report, ok := reportTypes[rc.reportType]
	if !ok {
		return fmt.Errorf("unsupported report type %q. Supported types: %v", rc.reportType, supportedTypes())
	}

	registry, err := config.NewRegistry(rc.profilesPath)
	if err != nil {
		return fmt.Errorf("failed to load profiles from %s: %w", rc.profilesPath, err)
	}
	profile, err := registry.GetProfile(ctx, rc.profile)
	if err != nil {
		return err
	}

	client, err := httpclient.NewReportingClient(profile.Host, profile.Token)
	if err != nil {
		return err
	}
	gateway := reports.NewGateway(client)

	// The operator picks devices directly; synthesize a matching scope.
	scope := make([]domain.Device, 0, len(rc.devices))
	for _, id := range rc.devices {
		d := domain.Device{ID: id}
		d.DairyCode = d.OwnerCode()
		scope = append(scope, d)
	}

	controller := filters.NewController(report, domain.Session{Role: domain.RoleAdmin}, scope)
	rc.seedDraft(controller)

	session := reports.NewSession(controller, gateway)
	if rc.milkType != "" {
		session.SetMilkFilter(domain.MilkType(rc.milkType))
	}

	if _, err := session.Commit(ctx); err != nil {
		return fmt.Errorf("report query failed: %w", err)
	}

	if rc.format == "" {
		applied, _ := controller.Applied()
		return rc.reporter.Handle(session.Projected(), applied)
	}

	sink := export.NewLocalSink(rc.outDir, nil)
	var path string
	switch rc.format {
	case "csv":
		path, err = session.ExportCSV(ctx, sink)
	case "pdf":
		path, err = session.ExportPDF(ctx, sink)
	default:
		return fmt.Errorf("unsupported export format %q: use csv or pdf", rc.format)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", path)
	return nil
}

func (rc *ReportCmd) seedDraft(controller *filters.Controller) {
	if len(rc.devices) == 1 {
		controller.Set(filters.FieldDevice, rc.devices[0])
	}
	if len(rc.devices) > 1 {
		controller.Set(filters.FieldDevices, strings.Join(rc.devices, ","))
	}
	controller.Set(filters.FieldDate, rc.date)
	controller.Set(filters.FieldFrom, rc.from)
	controller.Set(filters.FieldTo, rc.to)
	controller.Set(filters.FieldShift, rc.shift)
	controller.Set(filters.FieldMilkType, rc.milkType)
	controller.Set(filters.FieldMemberCode, rc.memberCode)
	if rc.memberFrom != "" {
		controller.Set(filters.FieldMemberFrom, rc.memberFrom)
	}
	if rc.memberTo != "" {
		controller.Set(filters.FieldMemberTo, rc.memberTo)
	}
}

func supportedTypes() []string {
	types := make([]string, 0, len(reportTypes))
	for slug := range reportTypes {
		types = append(types, slug)
	}
	return types
}
