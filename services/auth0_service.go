package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// IdentityProfile is the profile an identity provider reports for a token
type IdentityProfile struct {
	Subject    string `json:"sub"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// IdentityProvider resolves an access token to the caller's profile
type IdentityProvider interface {
	GetUserInfo(ctx context.Context, accessToken string) (*IdentityProfile, error)
}

// Auth0Service handles interactions with Auth0 API
type Auth0Service struct {
	domain     string
	httpClient *http.Client
}

// NewAuth0Service creates a new Auth0 service instance
func NewAuth0Service(domain string) *Auth0Service {
	return &Auth0Service{
		domain: domain,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetUserInfo fetches user information from Auth0's /userinfo endpoint
func (s *Auth0Service) GetUserInfo(ctx context.Context, accessToken string) (*IdentityProfile, error) {
	// If domain already includes a protocol (for testing), use it as-is
	var url string
	if strings.HasPrefix(s.domain, "http://") || strings.HasPrefix(s.domain, "https://") {
		url = fmt.Sprintf("%s/userinfo", strings.TrimRight(s.domain, "/"))
	} else {
		url = fmt.Sprintf("https://%s/userinfo", s.domain)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call userinfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("userinfo endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var profile IdentityProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}
	return &profile, nil
}
