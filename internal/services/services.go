// package services defines interface Service for interacting with the YouTube Data API
package services

import (
	"context"

	"github.com/desertthunder/ytcull/internal/models"
	"golang.org/x/oauth2"
)

// Service defines the playlist operations the rest of the application depends on.
//
// The narrow interface keeps enumeration and deletion testable against a fake
// API without a live network dependency.
type Service interface {
	// Authenticate performs OAuth authentication with the service.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// GetPlaylists retrieves the authenticated user's playlists.
	// Returns a single bounded page, up to the API's page-size cap.
	GetPlaylists(ctx context.Context) ([]models.Playlist, error)

	// GetPlaylist retrieves a specific playlist by ID.
	GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error)

	// GetPlaylistItems retrieves every item of a playlist, following the
	// API's continuation cursor until exhausted.
	GetPlaylistItems(ctx context.Context, playlistID string) ([]models.PlaylistItem, error)

	// DeletePlaylistItem removes a single item from a playlist by its
	// playlist-item id (not the video id).
	DeletePlaylistItem(ctx context.Context, itemID string) error

	// Name returns the name of the service (e.g., "YouTube")
	Name() string
}

// OAuthService extends Service for providers using the OAuth2 authorization code flow.
type OAuthService interface {
	Service

	// GetAuthURL returns the provider authorization URL carrying the given state token.
	GetAuthURL(state string) string

	// GetOAuthConfig exposes the underlying OAuth2 configuration for callback handling.
	GetOAuthConfig() *oauth2.Config

	// OAuthenticate installs an existing token, enabling automatic refresh.
	OAuthenticate(ctx context.Context, token *oauth2.Token) error

	// Token returns the current token, refreshed if necessary.
	Token() (*oauth2.Token, error)
}
