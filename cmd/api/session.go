package main

import (
	"net/http"
	"strings"

	"triplog/internal/auth"
)

func (app *application) getSessionHandler(w http.ResponseWriter, r *http.Request) {
	identity := getIdentityFromContext(r)

	payload := map[string]any{
		"signed_in":    identity != nil,
		"display_name": identity.DisplayName(),
	}
	if identity != nil {
		payload["user_id"] = identity.ID
		payload["email"] = identity.Email
	}

	app.jsonResponse(w, http.StatusOK, payload)
}

// signOutHandler revokes the token with the auth backend (best effort),
// publishes the sign-out to the session's shell, and drops the shell.
func (app *application) signOutHandler(w http.ResponseWriter, r *http.Request) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if err := app.gotrue.SignOut(r.Context(), parts[1]); err != nil {
				app.logger.Warnw("sign out against auth backend failed", "error", err)
			}
		}
	}

	sh := getShellFromContext(r)
	sh.Watcher().Publish(auth.Event{Type: auth.SignedOut})
	app.shells.Remove(getSessionFromContext(r))

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	app.jsonResponse(w, http.StatusOK, map[string]string{"message": "signed out"})
}
