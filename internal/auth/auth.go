// Package auth resolves who is acting: it validates Supabase access tokens
// and turns them into an Identity, and it signs anonymous submissions with
// a tripcode. Session issuance itself belongs to GoTrue; this package only
// consumes its tokens.
package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"triplog/internal/supabase"
)

// Identity is the acting user as far as the application cares: enough to
// label their submissions.
type Identity struct {
	ID           string
	Email        string
	UserMetadata map[string]any
}

// DisplayName resolves the author label from session metadata: full name,
// else handle, else email, else "Anonymous".
func (id *Identity) DisplayName() string {
	if id == nil {
		return "Anonymous"
	}
	if v, ok := id.UserMetadata["full_name"].(string); ok && v != "" {
		return v
	}
	if v, ok := id.UserMetadata["name"].(string); ok && v != "" {
		return v
	}
	if id.Email != "" {
		return id.Email
	}
	return "Anonymous"
}

type Authenticator struct {
	jwtSecret string
	gotrue    *supabase.AuthClient
}

func NewAuthenticator(jwtSecret string, gotrue *supabase.AuthClient) *Authenticator {
	return &Authenticator{jwtSecret: jwtSecret, gotrue: gotrue}
}

// Authenticate validates an access token and returns the identity it
// belongs to. Local verification with the project JWT secret is preferred;
// without a secret (or when it fails) the token is checked against GoTrue.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*Identity, error) {
	if a.jwtSecret != "" {
		if id, err := a.validateLocal(token); err == nil {
			return id, nil
		}
	}
	return a.validateRemote(ctx, token)
}

func (a *Authenticator) validateLocal(token string) (*Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(a.jwtSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}

	id := &Identity{}
	if sub, ok := claims["sub"].(string); ok {
		id.ID = sub
	}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if meta, ok := claims["user_metadata"].(map[string]any); ok {
		id.UserMetadata = meta
	}
	if id.ID == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return id, nil
}

func (a *Authenticator) validateRemote(ctx context.Context, token string) (*Identity, error) {
	if a.gotrue == nil {
		return nil, fmt.Errorf("no auth backend configured")
	}
	user, err := a.gotrue.GetUser(ctx, token)
	if err != nil {
		return nil, err
	}
	return &Identity{
		ID:           user.ID,
		Email:        user.Email,
		UserMetadata: user.UserMetadata,
	}, nil
}
