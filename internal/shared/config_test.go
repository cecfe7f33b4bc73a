package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./ytcull.db" {
			t.Errorf("expected database path ./ytcull.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.Credentials.YouTube.ClientID != "your_google_client_id" {
			t.Errorf("expected placeholder client_id, got %s", config.Credentials.YouTube.ClientID)
		}

		if config.Purge.RateLimit != 5.0 {
			t.Errorf("expected purge rate limit 5.0, got %f", config.Purge.RateLimit)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[server]
host = "0.0.0.0"
port = 8080

[credentials.youtube]
client_id = "test_client_id"
client_secret = "test_secret"
redirect_uri = "http://localhost:8080/callback"
access_token = "stored_access"
refresh_token = "stored_refresh"
token_expiry = "2026-09-01T00:00:00Z"

[purge]
rate_limit = 2.5
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}

		if config.Credentials.YouTube.ClientID != "test_client_id" {
			t.Errorf("expected client_id test_client_id, got %s", config.Credentials.YouTube.ClientID)
		}

		if config.Purge.RateLimit != 2.5 {
			t.Errorf("expected purge rate limit 2.5, got %f", config.Purge.RateLimit)
		}

		token := config.Credentials.YouTube.Token()
		if token == nil {
			t.Fatal("expected stored token")
		}
		if token.AccessToken != "stored_access" || token.RefreshToken != "stored_refresh" {
			t.Errorf("unexpected token fields: %+v", token)
		}
		if token.Expiry.IsZero() {
			t.Error("expected token expiry to be parsed")
		}
	})

	t.Run("SaveConfig Roundtrip", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		config := DefaultConfig()
		config.Credentials.YouTube.ClientID = "real_client_id"

		expiry := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		err := config.Credentials.YouTube.Update(&oauth2.Token{
			AccessToken:  "new_access",
			RefreshToken: "new_refresh",
			Expiry:       expiry,
		})
		if err != nil {
			t.Fatalf("failed to update credentials: %v", err)
		}

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		info, err := os.Stat(configPath)
		if err != nil {
			t.Fatalf("config file should exist: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("token-bearing config should be owner-only, got %v", info.Mode().Perm())
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to reload config: %v", err)
		}

		yt := loaded.Credentials.YouTube
		if yt.AccessToken != "new_access" || yt.RefreshToken != "new_refresh" {
			t.Errorf("tokens not persisted: %+v", yt)
		}
		if yt.TokenExpiry != expiry.Format(time.RFC3339) {
			t.Errorf("expiry not persisted: %s", yt.TokenExpiry)
		}
	})

	t.Run("Update Keeps Refresh Token", func(t *testing.T) {
		yt := YouTubeConfig{RefreshToken: "original_refresh"}

		err := yt.Update(&oauth2.Token{AccessToken: "rotated_access"})
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}

		if yt.RefreshToken != "original_refresh" {
			t.Errorf("refresh token should survive rotation, got %s", yt.RefreshToken)
		}

		if err := yt.Update(nil); err == nil {
			t.Error("nil token should be rejected")
		}
	})
}
