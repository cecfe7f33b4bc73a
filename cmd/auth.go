package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/desertthunder/ytcull/internal/server"
	"github.com/desertthunder/ytcull/internal/services"
	"github.com/desertthunder/ytcull/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// loadConfig resolves the runner's config, reading the --config file when one exists.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	configPath := cmd.String("config")
	if configPath == "" {
		configPath = "config.toml"
	}
	r.configPath = configPath

	if r.config != nil {
		return r.config
	}

	if _, err := os.Stat(configPath); err == nil {
		if config, err := shared.LoadConfig(configPath); err == nil {
			r.config = config
			return config
		}
		r.logger.Warnf("failed to load config at %v, using defaults", configPath)
	}

	r.config = shared.DefaultConfig()
	return r.config
}

// AuthLogin performs the OAuth2 authorization code flow for the YouTube Data API.
//
// Starts a local HTTP server, opens browser for user authorization, and exchanges auth code for tokens.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	if config.Credentials.YouTube.ClientID == "" || config.Credentials.YouTube.ClientSecret == "" {
		return fmt.Errorf("%w: YouTube client_id and client_secret must be set in config.toml", shared.ErrInvalidArgument)
	}

	youtubeService, err := services.NewYouTubeService(config.Credentials.YouTube.Map())
	if err != nil {
		return fmt.Errorf("failed to create YouTube service: %w", err)
	}

	token, err := r.doOAuth(config, youtubeService, "authorization")
	if err != nil {
		return err
	}

	if err := r.saveTokens(token); err != nil {
		return err
	}

	if err := youtubeService.OAuthenticate(ctx, token); err != nil {
		return fmt.Errorf("failed to authenticate with new tokens: %w", err)
	}
	r.youtube = youtubeService

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Tokens saved to %s\n\n", r.configPath)
	r.writePlain("You can now use: ytcull playlists list\n")

	return nil
}

// AuthStatus reports the stored token state without making an API call.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	yt := config.Credentials.YouTube

	if yt.ClientID == "" || yt.ClientSecret == "" {
		r.writePlain("✗ No client credentials configured\n")
		r.writePlain("Set credentials.youtube.client_id and client_secret in %s\n", r.configPath)
		return nil
	}

	token := yt.Token()
	if token == nil {
		r.writePlain("✗ Not authenticated\n")
		r.writePlain("Run 'ytcull auth login' to authorize\n")
		return nil
	}

	r.writePlain("✓ Credentials configured\n")
	if oauthSrv, ok := r.youtube.(services.OAuthService); ok {
		r.writePlain("Scopes: %s\n", strings.Join(oauthSrv.GetOAuthConfig().Scopes, " "))
	}
	if token.RefreshToken != "" {
		r.writePlain("Refresh token: ✓ stored\n")
	} else {
		r.writePlain("Refresh token: ✗ missing\n")
	}

	switch {
	case token.Expiry.IsZero():
		r.writePlain("Access token: stored (no expiry recorded)\n")
	case token.Expiry.Before(time.Now()):
		r.writePlain("Access token: expired %s\n", token.Expiry.Format(time.RFC3339))
	default:
		r.writePlain("Access token: valid until %s\n", token.Expiry.Format(time.RFC3339))
	}

	return nil
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(config *shared.Config, oauthSrv services.OAuthService, prefix string) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL := oauthSrv.GetAuthURL(state)
	oauthHandler := server.NewOAuthHandler(oauthSrv.GetOAuthConfig(), state)
	router := server.NewBasicRouter()
	router.Handler(oauthHandler)

	serverAddr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth server for %s at %v", prefix, serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Google %s...\n", prefix)
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}

	return result.Token, nil
}

// handleAuthError checks if an error is a token expiration error and triggers reauthorization if needed.
func (r *Runner) handleAuthError(ctx context.Context, err error, cmd *cli.Command) (bool, error) {
	if err == nil {
		return false, nil
	}

	if !errors.Is(err, shared.ErrTokenExpired) {
		return false, err
	}

	r.writePlainln("⚠ Authentication token expired. Starting reauthorization...\n")

	config := r.loadConfig(cmd)

	youtubeService, ok := r.youtube.(services.OAuthService)
	if !ok {
		return true, fmt.Errorf("youtube service does not support reauthorization")
	}

	token, reauthErr := r.doOAuth(config, youtubeService, "reauthorization")
	if reauthErr != nil {
		return true, fmt.Errorf("reauthorization failed: %w", reauthErr)
	}

	if err := r.saveTokens(token); err != nil {
		return true, err
	}

	if authErr := youtubeService.OAuthenticate(ctx, config.Credentials.YouTube.Token()); authErr != nil {
		return true, fmt.Errorf("failed to authenticate with new tokens: %w", authErr)
	}

	r.writePlainln("✓ Successfully reauthenticated. Retrying operation...\n")

	return true, nil
}
