package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/vsinha/mrpanalysis/pkg/application/dto"
	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

// State is the lifecycle state of an analysis session
type State int

const (
	Idle State = iota
	Analyzed
)

// String method for State enum
func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Analyzed:
		return "ANALYZED"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Analyzer runs one analysis for a selection
type Analyzer interface {
	Analyze(ctx context.Context, selection entities.Selection) (*dto.AnalysisRun, error)
}

// Session holds one analyst's selection and the rows of the last run.
// Any change to the selection discards the rows and returns to Idle.
// Runs are serialized per session.
type Session struct {
	id       string
	analyzer Analyzer

	mu         sync.Mutex
	runMu      sync.Mutex
	sales      []string
	quotations []string
	mode       entities.SourceMode
	state      State
	run        *dto.AnalysisRun
	generation uint64
}

// New creates an idle session with an empty selection
func New(analyzer Analyzer) *Session {
	return &Session{
		id:       uuid.NewString(),
		analyzer: analyzer,
		state:    Idle,
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Selection returns a copy of the current selection
func (s *Session) Selection() entities.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectionLocked()
}

func (s *Session) selectionLocked() entities.Selection {
	return entities.Selection{
		SaleIDs:      append([]string(nil), s.sales...),
		QuotationIDs: append([]string(nil), s.quotations...),
		Mode:         s.mode,
	}
}

// ToggleSale adds or removes a sale from the selection
func (s *Session) ToggleSale(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var selected bool
	s.sales, selected = toggle(s.sales, id)
	s.invalidateLocked()
	return selected
}

// ToggleQuotation adds or removes a quotation from the selection
func (s *Session) ToggleQuotation(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var selected bool
	s.quotations, selected = toggle(s.quotations, id)
	s.invalidateLocked()
	return selected
}

// SetSelection replaces the whole selection
func (s *Session) SetSelection(selection entities.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sales = append([]string(nil), selection.SaleIDs...)
	s.quotations = append([]string(nil), selection.QuotationIDs...)
	s.mode = selection.Mode
	s.invalidateLocked()
}

// SetMode changes which source kinds take part
func (s *Session) SetMode(mode entities.SourceMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == mode {
		return
	}
	s.mode = mode
	s.invalidateLocked()
}

// Reset clears the selection and any result
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sales = nil
	s.quotations = nil
	s.mode = entities.ModeBoth
	s.invalidateLocked()
}

// Run analyzes the current selection and moves the session to Analyzed.
// An empty selection is refused and leaves the session Idle.
func (s *Session) Run(ctx context.Context) (*dto.AnalysisRun, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	s.mu.Lock()
	selection := s.selectionLocked()
	generation := s.generation
	s.mu.Unlock()

	if selection.IsEmpty() {
		return nil, entities.ErrEmptySelection
	}

	run, err := s.analyzer.Analyze(ctx, selection)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", s.id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		return nil, fmt.Errorf("session %s: selection changed during analysis", s.id)
	}
	s.run = run
	s.state = Analyzed
	return run, nil
}

// Result returns the last run while the session is Analyzed
func (s *Session) Result() (*dto.AnalysisRun, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Analyzed {
		return nil, false
	}
	return s.run, true
}

// Snapshot is a consistent view of a session taken under one lock
type Snapshot struct {
	State     State
	Selection entities.Selection
	Run       *dto.AnalysisRun
}

// Snapshot reads state, selection and result together. Run is nil unless
// the session is Analyzed.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{State: s.state, Selection: s.selectionLocked()}
	if s.state == Analyzed {
		snap.Run = s.run
	}
	return snap
}

func (s *Session) invalidateLocked() {
	s.generation++
	s.run = nil
	s.state = Idle
}

func toggle(ids []string, id string) ([]string, bool) {
	id = strings.TrimSpace(id)
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i:i], ids[i+1:]...), false
		}
	}
	return append(ids, id), true
}
