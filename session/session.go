// Package session is the host-owned, non-singleton container for
// ingested activity contexts and the shared GeoJSON region store.
package session

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/trailmetrics/activity-analyzer/analyzer"
	"github.com/trailmetrics/activity-analyzer/export"
	"github.com/trailmetrics/activity-analyzer/geodata"
	"github.com/trailmetrics/activity-analyzer/parsers"
	"github.com/trailmetrics/activity-analyzer/report"
)

// adapter is the common shape of the three parser adapters.
type adapter interface {
	Parse(r io.Reader, ctx *analyzer.Context) error
}

// Session owns a growing context list and a GeoJSON region store,
// serializing every entry point behind one mutex.
type Session struct {
	mu sync.Mutex

	Geo geodata.Store

	contexts []*analyzer.Context
	byID     map[uuid.UUID]*analyzer.Context
}

// New returns an empty session ready for ingest calls.
func New() *Session {
	return &Session{byID: make(map[uuid.UUID]*analyzer.Context)}
}

// Greet is the trivial embedding-surface handshake call.
func (s *Session) Greet() string {
	return "activity-analyzer session ready"
}

func (s *Session) SetWorldData(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.Geo.SetWorldData(data)
}

func (s *Session) SetUSData(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.Geo.SetUSData(data)
}

// IngestGPX parses a GPX document and appends a new context to the
// session's list. On parse failure it returns a zero Report and a
// non-nil error; no partial context is retained.
func (s *Session) IngestGPX(data []byte, name string) (report.Report, error) {
	return s.ingest(parsers.GPX{}, data, name)
}

// IngestTCX parses a TCX document, same contract as IngestGPX.
func (s *Session) IngestTCX(data []byte, name string) (report.Report, error) {
	return s.ingest(parsers.TCX{}, data, name)
}

// IngestFIT decodes a FIT binary file, same contract as IngestGPX.
func (s *Session) IngestFIT(data []byte, name string) (report.Report, error) {
	return s.ingest(parsers.FIT{}, data, name)
}

func (s *Session) ingest(p adapter, data []byte, name string) (report.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := analyzer.NewContext(name, "Unknown")

	if err := p.Parse(bytes.NewReader(data), ctx); err != nil {
		return report.Report{}, fmt.Errorf("ingest %q: %w", name, err)
	}

	ctx.Finalize()

	s.contexts = append(s.contexts, ctx)
	s.byID[ctx.ID] = ctx

	return report.Build(ctx), nil
}

// Export reproduces a previously-ingested context's track. Returns an
// error if contextID does not name a known context.
func (s *Session) Export(contextID uuid.UUID, format string, splitStartMs, splitEndMs uint64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, ok := s.byID[contextID]
	if !ok {
		return "", fmt.Errorf("export: unknown context %s", contextID)
	}

	return export.Export(ctx, export.Options{Format: format, SplitStartOffsMs: splitStartMs, SplitEndOffsMs: splitEndMs})
}

// Merge fuses two previously-ingested contexts and exports the result
// in the requested format. Returns an error if fewer than two contexts
// are known or either ID is unrecognized.
func (s *Session) Merge(idA, idB uuid.UUID, format string) (string, []analyzer.MergeWarning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.contexts) < 2 {
		return "", nil, fmt.Errorf("merge: fewer than two contexts available")
	}

	a, okA := s.byID[idA]
	b, okB := s.byID[idB]

	if !okA || !okB {
		return "", nil, fmt.Errorf("merge: unknown context id")
	}

	merged, warnings := (analyzer.MergeTool{}).Merge(a, b)

	s.contexts = append(s.contexts, merged)
	s.byID[merged.ID] = merged

	out, err := export.Export(merged, export.Options{Format: format})

	return out, warnings, err
}

// Contexts returns the accumulated context list in ingest order.
func (s *Session) Contexts() []*analyzer.Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*analyzer.Context, len(s.contexts))
	copy(out, s.contexts)

	return out
}
