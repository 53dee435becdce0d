// Package credentials loads the locally stored auth token consumed by the
// remote usage source. Token acquisition itself happens elsewhere; this
// package only reads what other tooling already saved.
package credentials

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sdpower/ccwatch-go/internal/types"
)

// Credentials is the opaque auth bundle for one fetch attempt. It is
// never mutated after loading.
type Credentials struct {
	ClaudeAiOauth struct {
		AccessToken      string `json:"accessToken"`
		RefreshToken     string `json:"refreshToken"`
		ExpiresAt        int64  `json:"expiresAt"`
		SubscriptionType string `json:"subscriptionType"`
	} `json:"claudeAiOauth"`

	// OrganizationID is present in web-auth era credential files. It is
	// parsed for diagnostics but the OAuth endpoint does not need it.
	OrganizationID string `json:"organization_id,omitempty"`

	tokenOnly string // raw token from env var or flat credential file
}

// Load tries, in order:
//  1. CLAUDE_CODE_OAUTH_TOKEN env var (raw access token)
//  2. ~/.claude/.credentials.json (OAuth bundle)
//  3. ~/.config/claude/credentials.json (flat {"access_token": ...} file)
//
// Absence everywhere returns types.ErrNoCredentials.
func Load() (*Credentials, error) {
	if token := os.Getenv("CLAUDE_CODE_OAUTH_TOKEN"); token != "" {
		return &Credentials{tokenOnly: token}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("home dir: %w", err)
	}

	if creds, err := readBundle(filepath.Join(home, ".claude", ".credentials.json")); err == nil {
		return creds, nil
	}
	if creds, err := readFlat(filepath.Join(home, ".config", "claude", "credentials.json")); err == nil {
		return creds, nil
	}

	return nil, types.ErrNoCredentials
}

func readBundle(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if creds.ClaudeAiOauth.AccessToken == "" {
		return nil, types.ErrNoCredentials
	}
	return &creds, nil
}

func readFlat(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var flat struct {
		AccessToken    string `json:"access_token"`
		OrganizationID string `json:"organization_id"`
	}
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if flat.AccessToken == "" {
		return nil, types.ErrNoCredentials
	}
	return &Credentials{tokenOnly: flat.AccessToken, OrganizationID: flat.OrganizationID}, nil
}

// AccessToken returns the bearer token regardless of which store
// supplied it.
func (c *Credentials) AccessToken() string {
	if c.tokenOnly != "" {
		return c.tokenOnly
	}
	return c.ClaudeAiOauth.AccessToken
}

// IsExpired reports whether the token's recorded expiry has passed.
// Raw tokens carry no expiry metadata and are assumed valid.
func (c *Credentials) IsExpired() bool {
	if c.tokenOnly != "" || c.ClaudeAiOauth.ExpiresAt == 0 {
		return false
	}
	return time.Now().UnixMilli() >= c.ClaudeAiOauth.ExpiresAt
}
