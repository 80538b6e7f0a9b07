package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
)

// Session keys for the shell state of one browser.
const (
	sessionGoalKey     = "goal"
	sessionRoleKey     = "role"
	sessionRegionKey   = "region"
	sessionWorkflowKey = "workflow"
	sessionSummaryKey  = "summary"
	sessionFlashType   = "flash_type"
	sessionFlashMsg    = "flash_message"
)

// NewSessionManager creates an in-memory SCS session manager. Results are
// kept only for the lifetime of the process.
func NewSessionManager(lifetime time.Duration, secure bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = memstore.New()
	sm.Lifetime = lifetime
	sm.Cookie.Name = "workflows_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = secure
	sm.Cookie.SameSite = http.SameSiteLaxMode
	return sm
}

// shellState is what the form remembers between requests.
type shellState struct {
	Goal     string
	Role     string
	Region   string
	Workflow string
	Summary  string
}

func (s shellState) hasResult() bool { return s.Workflow != "" }

func loadState(ctx context.Context, sm *scs.SessionManager) shellState {
	return shellState{
		Goal:     sm.GetString(ctx, sessionGoalKey),
		Role:     sm.GetString(ctx, sessionRoleKey),
		Region:   sm.GetString(ctx, sessionRegionKey),
		Workflow: sm.GetString(ctx, sessionWorkflowKey),
		Summary:  sm.GetString(ctx, sessionSummaryKey),
	}
}

func saveState(ctx context.Context, sm *scs.SessionManager, s shellState) {
	sm.Put(ctx, sessionGoalKey, s.Goal)
	sm.Put(ctx, sessionRoleKey, s.Role)
	sm.Put(ctx, sessionRegionKey, s.Region)
	if s.hasResult() {
		sm.Put(ctx, sessionWorkflowKey, s.Workflow)
		sm.Put(ctx, sessionSummaryKey, s.Summary)
		return
	}
	sm.Remove(ctx, sessionWorkflowKey)
	sm.Remove(ctx, sessionSummaryKey)
}

func putFlash(ctx context.Context, sm *scs.SessionManager, f Flash) {
	sm.Put(ctx, sessionFlashType, f.Type)
	sm.Put(ctx, sessionFlashMsg, f.Message)
}

// popFlash returns and clears the pending flash, or nil.
func popFlash(ctx context.Context, sm *scs.SessionManager) *Flash {
	typ := sm.PopString(ctx, sessionFlashType)
	msg := sm.PopString(ctx, sessionFlashMsg)
	if msg == "" {
		return nil
	}
	return &Flash{Type: typ, Message: msg}
}
