package reports

import (
	"context"
	"sync"
	"time"

	"github.com/dairy-tools/milk-atlas/pkg/export"
	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
	"github.com/dairy-tools/milk-atlas/pkg/services/filters"
)

// commitGate is the minimum spacing between accepted commits. Together
// with the in-flight flag it replaces timer-based debouncing: a trigger
// during flight or inside the gate is dropped, never queued.
const commitGate = 600 * time.Millisecond

// Session is the per-screen report contract: draft filter editing, commit,
// the held result, local projection and export. One Session serves one
// report type for one login session; it holds the only mutable state in
// the pipeline.
type Session struct {
	controller *filters.Controller
	gateway    Gateway

	mu           sync.Mutex
	milk         domain.MilkType
	result       *domain.ReportResult
	inFlight     bool
	lastAccepted time.Time
	searched     bool

	now func() time.Time
}

func NewSession(controller *filters.Controller, gateway Gateway) *Session {
	return &Session{
		controller: controller,
		gateway:    gateway,
		now:        time.Now,
	}
}

// Set forwards a raw draft edit to the filter controller.
func (s *Session) Set(field filters.Field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.Set(field, value)
}

// Draft exposes the raw draft values.
func (s *Session) Draft() map[filters.Field]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Draft()
}

// SetMilkFilter sets the local milk-type sub-filter. It only affects
// projection, never the committed query.
func (s *Session) SetMilkFilter(milk domain.MilkType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.milk = milk
}

// Commit validates the draft and, when accepted, issues the query. The
// returned bool is false when the trigger was dropped by the single-flight
// guard or the commit gate. A validation failure leaves the applied filter
// and the held result untouched; a fetch failure clears the held result.
func (s *Session) Commit(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return false, nil
	}
	if !s.lastAccepted.IsZero() && s.now().Sub(s.lastAccepted) < commitGate {
		s.mu.Unlock()
		return false, nil
	}

	filter, err := s.controller.Commit()
	if err != nil {
		s.mu.Unlock()
		return false, err
	}

	s.inFlight = true
	s.lastAccepted = s.now()
	report := s.controller.Report()
	s.mu.Unlock()

	result, qerr := s.gateway.Query(ctx, report, filter)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	s.searched = true
	if qerr != nil {
		// Never retain stale rows behind a failed query.
		s.result = nil
		return true, qerr
	}
	s.result = &result
	return true, nil
}

// Result returns the raw fetched result, if one is held.
func (s *Session) Result() (domain.ReportResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return domain.ReportResult{}, false
	}
	return *s.result, true
}

// Searched reports whether at least one query completed, successfully or
// not, so screens can distinguish "never searched" from "found nothing".
func (s *Session) Searched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searched
}

// Projected applies the milk-type sub-filter and the stable date sort to
// the held result. Re-running it never contacts the network.
func (s *Session) Projected() domain.ReportResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return domain.ReportResult{}
	}
	return Project(*s.result, s.milk)
}

// ExportCSV serializes the projected result as a delimited-text artifact
// and hands it to the sink. With no usable rows it fails with ErrNoData
// before any I/O.
func (s *Session) ExportCSV(ctx context.Context, sink export.Sink) (string, error) {
	return s.export(ctx, sink, export.BuildCSV)
}

// ExportPDF serializes the projected result as a paginated document.
func (s *Session) ExportPDF(ctx context.Context, sink export.Sink) (string, error) {
	return s.export(ctx, sink, export.BuildPDF)
}

func (s *Session) export(
	ctx context.Context,
	sink export.Sink,
	build func(domain.ReportResult, domain.ReportFilter) (export.Artifact, error),
) (string, error) {
	s.mu.Lock()
	applied, ok := s.controller.Applied()
	var result domain.ReportResult
	if s.result != nil {
		result = Project(*s.result, s.milk)
	}
	s.mu.Unlock()

	if !ok {
		return "", domain.ErrNoData
	}

	artifact, err := build(result, applied)
	if err != nil {
		return "", err
	}
	return sink.Store(ctx, artifact)
}
