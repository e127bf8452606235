package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/mrpanalysis/pkg/application/dto"
	"github.com/vsinha/mrpanalysis/pkg/application/services/session"
	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

// SessionController keeps interactive analysis sessions keyed by id
type SessionController struct {
	analyzer session.Analyzer

	mu       sync.RWMutex
	sessions map[string]*session.Session
}

// NewSessionController creates a new controller
func NewSessionController(analyzer session.Analyzer) *SessionController {
	return &SessionController{
		analyzer: analyzer,
		sessions: make(map[string]*session.Session),
	}
}

type sessionView struct {
	ID        string             `json:"id"`
	State     session.State      `json:"state"`
	Selection entities.Selection `json:"selection"`
	Run       *dto.AnalysisRun   `json:"run,omitempty"`
}

func viewOf(s *session.Session) sessionView {
	snap := s.Snapshot()
	return sessionView{
		ID:        s.ID(),
		State:     snap.State,
		Selection: snap.Selection,
		Run:       snap.Run,
	}
}

func (c *SessionController) lookup(ctx *gin.Context) (*session.Session, bool) {
	c.mu.RLock()
	s, ok := c.sessions[ctx.Param("id")]
	c.mu.RUnlock()
	if !ok {
		respondError(ctx, http.StatusNotFound, "session not found", nil)
	}
	return s, ok
}

// Create opens an idle session
// POST /api/v1/sessions
func (c *SessionController) Create(ctx *gin.Context) {
	s := session.New(c.analyzer)

	c.mu.Lock()
	c.sessions[s.ID()] = s
	c.mu.Unlock()

	ctx.JSON(http.StatusCreated, viewOf(s))
}

// Get returns the session's selection and, once analyzed, its run
// GET /api/v1/sessions/:id
func (c *SessionController) Get(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, viewOf(s))
}

// SetSelection replaces the selection and discards any previous run
// PUT /api/v1/sessions/:id/selection
func (c *SessionController) SetSelection(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}

	var selection entities.Selection
	if err := ctx.ShouldBindJSON(&selection); err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid selection", err)
		return
	}
	s.SetSelection(selection)
	ctx.JSON(http.StatusOK, viewOf(s))
}

// ToggleSale flips one sale in or out of the selection
// POST /api/v1/sessions/:id/sales/:saleId/toggle
func (c *SessionController) ToggleSale(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	selected := s.ToggleSale(ctx.Param("saleId"))
	ctx.JSON(http.StatusOK, gin.H{"selected": selected, "session": viewOf(s)})
}

// ToggleQuotation flips one quotation in or out of the selection
// POST /api/v1/sessions/:id/quotations/:quotationId/toggle
func (c *SessionController) ToggleQuotation(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	selected := s.ToggleQuotation(ctx.Param("quotationId"))
	ctx.JSON(http.StatusOK, gin.H{"selected": selected, "session": viewOf(s)})
}

// Run analyzes the session's selection
// POST /api/v1/sessions/:id/run
func (c *SessionController) Run(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}

	if _, err := s.Run(ctx.Request.Context()); err != nil {
		respondAnalysisError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, viewOf(s))
}

// Reset clears the selection and returns the session to Idle
// DELETE /api/v1/sessions/:id/selection
func (c *SessionController) Reset(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	s.Reset()
	ctx.JSON(http.StatusOK, viewOf(s))
}

// Delete drops a session
// DELETE /api/v1/sessions/:id
func (c *SessionController) Delete(ctx *gin.Context) {
	c.mu.Lock()
	_, ok := c.sessions[ctx.Param("id")]
	delete(c.sessions, ctx.Param("id"))
	c.mu.Unlock()

	if !ok {
		respondError(ctx, http.StatusNotFound, "session not found", nil)
		return
	}
	ctx.Status(http.StatusNoContent)
}
