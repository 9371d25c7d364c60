// Package auth loads the Google service-account credentials the Drive client uses.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

// DriveScope grants full Drive access, matching what the bot has always requested.
const DriveScope = "https://www.googleapis.com/auth/drive"

var ErrNoCredentials = errors.New("no service account credentials configured")

// ServiceAccount describes where the service-account key comes from.
// JSON wins over File when both are set.
type ServiceAccount struct {
	File string
	JSON string
	// Subject impersonates a Workspace user through domain-wide delegation.
	Subject string
	Scopes  []string
}

// Config parses the key into a JWT config without contacting Google.
func (sa ServiceAccount) Config() (*jwt.Config, error) {
	data, err := sa.keyBytes()
	if err != nil {
		return nil, err
	}

	scopes := sa.Scopes
	if len(scopes) == 0 {
		scopes = []string{DriveScope}
	}

	cfg, err := google.JWTConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse service account: %w", err)
	}
	if sa.Subject != "" {
		cfg.Subject = sa.Subject
	}
	return cfg, nil
}

// HTTPClient returns a client that signs requests with tokens minted from the key.
func (sa ServiceAccount) HTTPClient(ctx context.Context) (*http.Client, error) {
	cfg, err := sa.Config()
	if err != nil {
		return nil, err
	}
	return cfg.Client(ctx), nil
}

func (sa ServiceAccount) keyBytes() ([]byte, error) {
	if raw := strings.TrimSpace(sa.JSON); raw != "" {
		return []byte(raw), nil
	}
	if sa.File == "" {
		return nil, ErrNoCredentials
	}
	data, err := os.ReadFile(sa.File)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	return data, nil
}
