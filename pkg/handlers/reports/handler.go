package reports

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/dairy-tools/milk-atlas/pkg/adapters"
	"github.com/dairy-tools/milk-atlas/pkg/export"
	"github.com/dairy-tools/milk-atlas/pkg/models/api"
	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
	"github.com/dairy-tools/milk-atlas/pkg/server/middleware"
	"github.com/dairy-tools/milk-atlas/pkg/services/filters"
	"github.com/dairy-tools/milk-atlas/pkg/services/reports"
	"github.com/dairy-tools/milk-atlas/pkg/services/scope"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// reportSlugs maps URL path segments onto report types.
var reportSlugs = map[string]domain.ReportType{
	"daywise":           domain.ReportDaywise,
	"dashboard":         domain.ReportDashboard,
	"codewise":          domain.ReportCodewise,
	"datewise-summary":  domain.ReportDatewiseSummary,
	"datewise-detailed": domain.ReportDatewiseDetailed,
	"cumulative":        domain.ReportCumulative,
	"absent":            domain.ReportAbsent,
}

// queryFields maps query-string keys onto draft filter fields.
var queryFields = map[string]filters.Field{
	"device":      filters.FieldDevice,
	"devices":     filters.FieldDevices,
	"date":        filters.FieldDate,
	"from":        filters.FieldFrom,
	"to":          filters.FieldTo,
	"shift":       filters.FieldShift,
	"milk_type":   filters.FieldMilkType,
	"member_code": filters.FieldMemberCode,
	"member_from": filters.FieldMemberFrom,
	"member_to":   filters.FieldMemberTo,
}

type Handler struct {
	resolver scope.Resolver
	gateway  reports.Gateway
	sink     export.Sink
}

func NewHandler(resolver scope.Resolver, gateway reports.Gateway, sink export.Sink) *Handler {
	return &Handler{
		resolver: resolver,
		gateway:  gateway,
		sink:     sink,
	}
}

func (h *Handler) ListDevices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, ok := middleware.SessionFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, api.Error{Error: "no session"})
		return
	}

	devices, err := h.resolver.ResolveScope(ctx, session, r.URL.Query().Get("dairy"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, api.Error{Error: err.Error()})
		return
	}

	response := make([]api.Device, 0, len(devices))
	for _, d := range devices {
		response = append(response, adapters.MapDomainDeviceToAPI(d))
	}
	writeJSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rs, ok := h.newReportSession(w, r)
	if !ok {
		return
	}

	if _, err := rs.Commit(ctx); err != nil {
		writeReportError(w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, adapters.MapDomainResultToAPI(rs.Projected()))
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rs, ok := h.newReportSession(w, r)
	if !ok {
		return
	}

	if _, err := rs.Commit(ctx); err != nil {
		writeReportError(w, err)
		return
	}

	var (
		path string
		err  error
	)
	switch format := r.URL.Query().Get("format"); format {
	case "", "csv":
		path, err = rs.ExportCSV(ctx, h.sink)
	case "pdf":
		path, err = rs.ExportPDF(ctx, h.sink)
	default:
		writeError(w, http.StatusBadRequest, api.Error{Error: "unsupported format: " + format})
		return
	}
	if err != nil {
		writeReportError(w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, api.ExportResponse{
		File: filepath.Base(path),
		Path: path,
	})
}

// newReportSession assembles the per-request pipeline: session → resolved
// scope → filter controller seeded from query params → report session.
func (h *Handler) newReportSession(w http.ResponseWriter, r *http.Request) (*reports.Session, bool) {
	ctx := r.Context()

	session, ok := middleware.SessionFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, api.Error{Error: "no session"})
		return nil, false
	}

	slug := chi.URLParam(r, "report")
	report, ok := reportSlugs[slug]
	if !ok {
		writeError(w, http.StatusNotFound, api.Error{Error: "unknown report type: " + slug})
		return nil, false
	}

	devices, err := h.resolver.ResolveScope(ctx, session, r.URL.Query().Get("dairy"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, api.Error{Error: err.Error()})
		return nil, false
	}

	controller := filters.NewController(report, session, devices)
	for key, field := range queryFields {
		if v := r.URL.Query().Get(key); v != "" {
			controller.Set(field, v)
		}
	}

	rs := reports.NewSession(controller, h.gateway)
	if v := r.URL.Query().Get("milk_type"); v != "" {
		rs.SetMilkFilter(domain.MilkType(v))
	}
	return rs, true
}

func writeReportError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, api.Error{Error: verr.Rule, Field: verr.Field})
		return
	}
	var ferr *domain.FetchError
	if errors.As(err, &ferr) {
		writeError(w, http.StatusBadGateway, api.Error{Error: ferr.Error()})
		return
	}
	if errors.Is(err, domain.ErrNoData) {
		writeError(w, http.StatusNotFound, api.Error{Error: domain.ErrNoData.Error()})
		return
	}
	var werr *domain.WriteError
	if errors.As(err, &werr) {
		writeError(w, http.StatusInternalServerError, api.Error{Error: werr.Error()})
		return
	}
	writeError(w, http.StatusInternalServerError, api.Error{Error: err.Error()})
}

func writeError(w http.ResponseWriter, status int, body api.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}
