package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/flazor/stride/internal/strava"
	"github.com/joho/godotenv"
)

// Environment variables carrying the Strava OAuth credential triple.
const (
	EnvClientID     = "STRAVA_CLIENT_ID"
	EnvClientSecret = "STRAVA_CLIENT_SECRET"
	EnvRefreshToken = "STRAVA_REFRESH_TOKEN"
)

// LoadStravaCredentials reads the credential triple from the environment,
// loading a .env file first when one exists. Missing variables are
// reported together so the user fixes them in one pass.
func LoadStravaCredentials() (strava.Credentials, error) {
	// A missing .env file is fine; the variables may be set directly.
	_ = godotenv.Load()

	creds := strava.Credentials{
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
		RefreshToken: os.Getenv(EnvRefreshToken),
	}

	var missing []string
	if creds.ClientID == "" {
		missing = append(missing, EnvClientID)
	}
	if creds.ClientSecret == "" {
		missing = append(missing, EnvClientSecret)
	}
	if creds.RefreshToken == "" {
		missing = append(missing, EnvRefreshToken)
	}
	if len(missing) > 0 {
		return strava.Credentials{}, fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
	}

	return creds, nil
}
