package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"triplog/internal/auth"
	"triplog/internal/shell"
)

type ctxKey string

const (
	sessionCtx  ctxKey = "session"
	shellCtx    ctxKey = "shell"
	identityCtx ctxKey = "identity"
)

const sessionCookie = "triplog_session"

// SessionMiddleware gives every browser a session cookie, resolves the
// session's shell, and tracks auth state: when the bearer token appears,
// changes, or disappears between requests, the session's watcher publishes
// the transition so the shell can update its current user.
func (app *application) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := app.sessionID(w, r)
		sh := app.shells.Get(r.Context(), sessionID)

		identity := app.bearerIdentity(r)
		previous := sh.CurrentUser()
		switch {
		case identity != nil && (previous == nil || previous.ID != identity.ID):
			sh.Watcher().Publish(auth.Event{Type: auth.SignedIn, Identity: identity})
		case identity == nil && previous != nil:
			sh.Watcher().Publish(auth.Event{Type: auth.SignedOut})
		}

		ctx := context.WithValue(r.Context(), sessionCtx, sessionID)
		ctx = context.WithValue(ctx, shellCtx, sh)
		if identity != nil {
			ctx = context.WithValue(ctx, identityCtx, identity)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// bearerIdentity resolves the optional Authorization header. Anonymous
// requests are legal everywhere, so a missing or invalid token just means
// no identity.
func (app *application) bearerIdentity(r *http.Request) *auth.Identity {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil
	}

	identity, err := app.authenticator.Authenticate(r.Context(), parts[1])
	if err != nil {
		app.logger.Warnw("invalid access token", "error", err)
		return nil
	}
	return identity
}

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			allow, retryAfter := app.rateLimiter.Allow(r.RemoteAddr)
			if !allow {
				app.rateLimitExceededResponse(w, r, retryAfter.String())
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func getShellFromContext(r *http.Request) *shell.Shell {
	sh, _ := r.Context().Value(shellCtx).(*shell.Shell)
	return sh
}

func getSessionFromContext(r *http.Request) string {
	id, _ := r.Context().Value(sessionCtx).(string)
	return id
}

func getIdentityFromContext(r *http.Request) *auth.Identity {
	identity, _ := r.Context().Value(identityCtx).(*auth.Identity)
	return identity
}
