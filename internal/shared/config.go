package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/oauth2"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	Purge       PurgeConfig       `toml:"purge"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	YouTube YouTubeConfig `toml:"youtube"`
}

// YouTubeConfig contains Google API client credentials and the persisted OAuth2 tokens.
//
// Tokens are written back after every authorization and refresh so a restart
// does not force re-authorization while a refresh token is held.
type YouTubeConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
	AccessToken  string `toml:"access_token,omitempty"`
	RefreshToken string `toml:"refresh_token,omitempty"`
	TokenExpiry  string `toml:"token_expiry,omitempty"`
}

// Map converts the credentials to the map form consumed by services.
func (y *YouTubeConfig) Map() map[string]string {
	return map[string]string{
		"client_id":     y.ClientID,
		"client_secret": y.ClientSecret,
		"redirect_uri":  y.RedirectURI,
		"access_token":  y.AccessToken,
		"refresh_token": y.RefreshToken,
		"token_expiry":  y.TokenExpiry,
	}
}

// Token converts the persisted fields to an [oauth2.Token].
//
// Returns nil when no access token has been stored.
func (y *YouTubeConfig) Token() *oauth2.Token {
	if y.AccessToken == "" && y.RefreshToken == "" {
		return nil
	}

	token := &oauth2.Token{
		AccessToken:  y.AccessToken,
		RefreshToken: y.RefreshToken,
		TokenType:    "Bearer",
	}

	if y.TokenExpiry != "" {
		if expiry, err := time.Parse(time.RFC3339, y.TokenExpiry); err == nil {
			token.Expiry = expiry
		}
	}

	return token
}

// Update stores an [oauth2.Token] into the persisted credential fields.
//
// A token without a refresh token keeps the previously stored one, since
// Google only returns the refresh token on the first authorization.
func (y *YouTubeConfig) Update(token *oauth2.Token) error {
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("%w: empty token", ErrInvalidCredentials)
	}

	y.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		y.RefreshToken = token.RefreshToken
	}
	if !token.Expiry.IsZero() {
		y.TokenExpiry = token.Expiry.Format(time.RFC3339)
	}

	return nil
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains settings for the local OAuth callback server.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// PurgeConfig contains settings for bulk playlist item removal.
type PurgeConfig struct {
	RateLimit float64 `toml:"rate_limit"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// SaveConfig serializes the configuration to TOML and writes it to path.
//
// The file holds OAuth tokens, so it is written with owner-only permissions.
func SaveConfig(path string, config *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
