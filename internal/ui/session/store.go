// Package session keeps a workspace (the pair of search panels) per browser session.
//
// The browser holds a signed cookie with the session id; the workspaces are kept in memory
// and expire when the session has not been used for the configured ttl.
package session

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/Bhavya700/CSE-412/internal/ui/shell"
)

const (
	sessionIDKey = "id"

	// maximum number of workspaces held in memory, the least valuable are evicted first
	maxWorkspaces = 10_000
)

// Store maps browser sessions to workspaces
type Store struct {
	cookieName   string
	cookies      *sessions.CookieStore
	workspaces   *ristretto.Cache[string, *shell.Workspace]
	ttl          time.Duration
	newWorkspace func() *shell.Workspace
	logger       *slog.Logger

	// serialises workspace creation so concurrent first requests from a session share a workspace
	mu sync.Mutex
}

// NewStore creates a store. If secret is empty a random key is generated (sessions will not survive a restart).
// Set secure when the ui is served over https.
func NewStore(cookieName string, secret string, secure bool, ttl time.Duration, newWorkspace func() *shell.Workspace, logger *slog.Logger) (*Store, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
		if key == nil {
			return nil, fmt.Errorf("could not generate session key")
		}
	}

	cookies := sessions.NewCookieStore(key)
	cookies.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	cookies.MaxAge(int(ttl.Seconds()))

	cache, err := ristretto.NewCache(&ristretto.Config[string, *shell.Workspace]{
		NumCounters: maxWorkspaces * 10,
		MaxCost:     maxWorkspaces,
		BufferItems: 64,
		// cost is a workspace count
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create workspace cache: %w", err)
	}

	return &Store{
		cookieName:   cookieName,
		cookies:      cookies,
		workspaces:   cache,
		ttl:          ttl,
		newWorkspace: newWorkspace,
		logger:       logger.With(slog.String("component", "session")),
	}, nil
}

// Workspace returns the workspace for the request's session, creating the session and/or workspace when needed.
// The session cookie is (re)written on w, so this must be called before anything is written to the response body.
func (s *Store) Workspace(w http.ResponseWriter, r *http.Request) (*shell.Workspace, error) {
	sess, err := s.cookies.Get(r, s.cookieName)
	if err != nil {
		// tampered or signed with an old key - a new session is returned alongside the error
		s.logger.Debug("discarding invalid session cookie", slog.String("error", err.Error()))
	}

	id, ok := sess.Values[sessionIDKey].(string)
	if !ok || id == "" {
		id = uuid.NewString()
		sess.Values[sessionIDKey] = id
	}

	// refresh the cookie expiry on every use
	if err := sess.Save(r, w); err != nil {
		return nil, fmt.Errorf("could not save session: %w", err)
	}

	return s.workspace(id), nil
}

// workspace gets or creates the workspace for a session id and extends its ttl
func (s *Store) workspace(id string) *shell.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, found := s.workspaces.Get(id)
	if !found {
		ws = s.newWorkspace()
		s.logger.Debug("created workspace", slog.String("session_id", id))
	}

	if !s.workspaces.SetWithTTL(id, ws, 1, s.ttl) {
		s.logger.Warn("workspace was not cached", slog.String("session_id", id))
	}
	s.workspaces.Wait()

	return ws
}

// Close releases the cache resources
func (s *Store) Close() {
	s.workspaces.Close()
}
