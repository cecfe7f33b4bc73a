// Package services defines the [Service] interface for playlist providers and implements it for the YouTube Data API v3.
//
// # Service Interface
//
// The interface is deliberately narrow: list playlists, enumerate items, and
// delete one item. Everything above it (the purge engine, the CLI, the TUI)
// depends only on this abstraction, so tests substitute a fake paginated API
// instead of the live service.
//
// # YouTube Implementation
//
// [YouTubeService] uses OAuth2 (authorization code flow, offline access) with
// automatic token refresh.
//
// The [oauth2] client refreshes expired access tokens using the refresh token;
// refreshed tokens are read back via [YouTubeService.Token] so the caller can
// persist them.
//
// Playlist enumeration returns a single bounded page (the API caps list calls
// at 50 results). Item enumeration follows the nextPageToken continuation
// cursor until a page without one, accumulating each item exactly once.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrNotAuthenticated] : Authenticate() not called
//   - [shared.ErrTokenExpired] : token expired without a refresh token, or the API returned 401; reauthorization needed
//   - [shared.ErrPlaylistNotFound] : playlist ID not found
//
// # API Mappings
//
// Responses are converted to DTOs: YouTube playlist resources map to
// [models.Playlist], playlistItem resources map to [models.PlaylistItem]. The
// playlist-item id (the deletion handle) and the video id are carried
// separately on purpose.
package services
