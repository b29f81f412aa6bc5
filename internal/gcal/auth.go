package gcal

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"
)

// OAuthScopes covers calendar writes and reads plus the Gmail scopes the
// gmail package needs, since both share the same token.
var OAuthScopes = []string{
	calendar.CalendarEventsScope,
	calendar.CalendarReadonlyScope,
	gmail.GmailSendScope,
	gmail.GmailReadonlyScope,
}

// loadOAuthConfig loads OAuth2 configuration from credentials file or environment variable
func loadOAuthConfig(credentialsFile string, scopes []string) (*oauth2.Config, error) {
	// Try environment variable first (useful for container deployments)
	if credJSON := os.Getenv("GOOGLE_CREDENTIALS_JSON"); credJSON != "" {
		if config, err := google.ConfigFromJSON([]byte(credJSON), scopes...); err == nil {
			return config, nil
		}
	}

	if credentialsFile != "" {
		if config, err := loadConfigFromFile(credentialsFile, scopes); err == nil {
			return config, nil
		}
	}

	if config, err := loadConfigFromFile("./credentials.json", scopes); err == nil {
		return config, nil
	}

	return nil, fmt.Errorf("no credentials file found - please provide credentials.json or set GOOGLE_CREDENTIALS_JSON env var")
}

func loadConfigFromFile(path string, scopes []string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return google.ConfigFromJSON(data, scopes...)
}

// loadToken reads a previously saved OAuth token from disk.
func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	token := &oauth2.Token{}
	if err := json.Unmarshal(data, token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return token, nil
}

// saveToken persists a refreshed OAuth token back to disk.
func saveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// GetOAuthConfig returns the OAuth config for use by other packages (e.g., Gmail)
func (c *Client) GetOAuthConfig() *oauth2.Config {
	return c.config
}

// GetToken returns the current OAuth token for use by other packages (e.g., Gmail)
func (c *Client) GetToken() *oauth2.Token {
	return c.token
}
