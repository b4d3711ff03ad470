package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Auth returns the GoTrue client.
func (c *Client) Auth() *AuthClient {
	return &AuthClient{client: c}
}

// AuthClient talks to the GoTrue endpoints under /auth/v1.
type AuthClient struct {
	client *Client
}

// User is a GoTrue user record.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	Role         string         `json:"role"`
	UserMetadata map[string]any `json:"user_metadata"`
	CreatedAt    string         `json:"created_at"`
}

// GetUser fetches the user the access token belongs to.
func (a *AuthClient) GetUser(ctx context.Context, accessToken string) (*User, error) {
	reqURL := fmt.Sprintf("%s/auth/v1/user", a.client.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	a.client.setHeaders(req)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.client.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return nil, apiErr
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &user, nil
}

// SignOut revokes the access token.
func (a *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	reqURL := fmt.Sprintf("%s/auth/v1/logout", a.client.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	a.client.setHeaders(req)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.client.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}
	return nil
}
