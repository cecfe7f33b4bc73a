package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/ytcull/internal/shared"
	tu "github.com/desertthunder/ytcull/internal/testing"
	"golang.org/x/oauth2"
)

// newAuthenticatedService creates a YouTubeService pointed at the given fake
// API with a valid token installed.
func newAuthenticatedService(t *testing.T, baseURL string) *YouTubeService {
	t.Helper()

	srv, err := NewYouTubeService(map[string]string{
		"client_id":     "test_client_id",
		"client_secret": "test_client_secret",
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	token := &oauth2.Token{
		AccessToken: "test_access_token",
		Expiry:      time.Now().Add(time.Hour),
	}
	if err := srv.OAuthenticate(context.Background(), token); err != nil {
		t.Fatalf("failed to authenticate: %v", err)
	}

	if baseURL != "" {
		srv.baseURL = baseURL
	}

	return srv
}

func TestYouTubeService(t *testing.T) {
	t.Run("NewYouTubeService", func(t *testing.T) {
		t.Run("With Valid Credentials", func(t *testing.T) {
			srv, err := NewYouTubeService(map[string]string{
				"client_id":     "test_client_id",
				"client_secret": "test_client_secret",
				"redirect_uri":  "http://localhost:9999/callback",
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if srv.Name() != "YouTube" {
				t.Errorf("expected service name 'YouTube', got %s", srv.Name())
			}

			if srv.config.RedirectURL != "http://localhost:9999/callback" {
				t.Errorf("unexpected redirect URI: %s", srv.config.RedirectURL)
			}
		})

		t.Run("Missing Client ID", func(t *testing.T) {
			_, err := NewYouTubeService(map[string]string{"client_secret": "s"})
			if err == nil {
				t.Error("expected error for missing client_id")
			}
		})

		t.Run("Missing Client Secret", func(t *testing.T) {
			_, err := NewYouTubeService(map[string]string{"client_id": "c"})
			if err == nil {
				t.Error("expected error for missing client_secret")
			}
		})

		t.Run("Default Redirect URI", func(t *testing.T) {
			srv, err := NewYouTubeService(map[string]string{
				"client_id":     "c",
				"client_secret": "s",
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if srv.config.RedirectURL != "http://localhost:3000/callback" {
				t.Errorf("expected default redirect URI, got %s", srv.config.RedirectURL)
			}
		})
	})

	t.Run("GetAuthURL", func(t *testing.T) {
		srv, err := NewYouTubeService(map[string]string{
			"client_id":     "test_client_id",
			"client_secret": "test_client_secret",
		})
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		authURL := srv.GetAuthURL("test_state")
		if !strings.Contains(authURL, "accounts.google.com") {
			t.Error("auth URL should contain Google domain")
		}
		if !strings.Contains(authURL, "test_client_id") {
			t.Error("auth URL should contain client_id")
		}
		if !strings.Contains(authURL, "test_state") {
			t.Error("auth URL should contain state")
		}
		if !strings.Contains(authURL, "access_type=offline") {
			t.Error("auth URL should request offline access")
		}
	})

	t.Run("Authenticate", func(t *testing.T) {
		srv, err := NewYouTubeService(map[string]string{
			"client_id":     "test_client_id",
			"client_secret": "test_client_secret",
		})
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		t.Run("With Access Token", func(t *testing.T) {
			err := srv.Authenticate(context.Background(), map[string]string{
				"access_token": "tok",
				"token_expiry": time.Now().Add(time.Hour).Format(time.RFC3339),
			})
			if err != nil {
				t.Errorf("expected no error with access token, got %v", err)
			}
		})

		t.Run("Expired Without Refresh Token", func(t *testing.T) {
			err := srv.Authenticate(context.Background(), map[string]string{
				"access_token": "tok",
				"token_expiry": time.Now().Add(-time.Hour).Format(time.RFC3339),
			})
			if !errors.Is(err, shared.ErrTokenExpired) {
				t.Errorf("expected ErrTokenExpired, got %v", err)
			}
		})

		t.Run("Expired With Refresh Token", func(t *testing.T) {
			err := srv.Authenticate(context.Background(), map[string]string{
				"access_token":  "tok",
				"refresh_token": "refresh",
				"token_expiry":  time.Now().Add(-time.Hour).Format(time.RFC3339),
			})
			if err != nil {
				t.Errorf("expected no error with refresh token present, got %v", err)
			}
		})

		t.Run("Missing Credentials", func(t *testing.T) {
			err := srv.Authenticate(context.Background(), map[string]string{})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})
	})

	t.Run("Unauthenticated Request", func(t *testing.T) {
		srv, err := NewYouTubeService(map[string]string{
			"client_id":     "c",
			"client_secret": "s",
		})
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		_, err = srv.GetPlaylists(context.Background())
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("Token Refresh", func(t *testing.T) {
		tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"access_token":"refreshed_token","token_type":"Bearer","expires_in":3600}`)
		}))
		defer tokenServer.Close()

		srv, err := NewYouTubeService(map[string]string{
			"client_id":     "c",
			"client_secret": "s",
		})
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}
		srv.config.Endpoint.TokenURL = tokenServer.URL

		expired := &oauth2.Token{
			AccessToken:  "stale",
			RefreshToken: "refresh",
			Expiry:       time.Now().Add(-time.Hour),
		}
		if err := srv.OAuthenticate(context.Background(), expired); err != nil {
			t.Fatalf("failed to authenticate: %v", err)
		}

		token, err := srv.Token()
		if err != nil {
			t.Fatalf("expected refresh to succeed, got %v", err)
		}
		if token.AccessToken != "refreshed_token" {
			t.Errorf("expected refreshed token, got %s", token.AccessToken)
		}
	})
}

func TestGetPlaylists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/playlists" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("mine") != "true" {
			t.Error("expected mine=true")
		}
		if r.URL.Query().Get("maxResults") != "50" {
			t.Errorf("expected maxResults=50, got %s", r.URL.Query().Get("maxResults"))
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"items": [
				{"id": "pl1", "snippet": {"title": "Watch Later Overflow"}, "contentDetails": {"itemCount": 12}, "status": {"privacyStatus": "private"}},
				{"id": "pl2", "snippet": {"title": "Cooking", "description": "recipes"}, "contentDetails": {"itemCount": 3}}
			],
			"pageInfo": {"totalResults": 2, "resultsPerPage": 50}
		}`)
	}))
	defer server.Close()

	srv := newAuthenticatedService(t, server.URL)

	playlists, err := srv.GetPlaylists(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(playlists) != 2 {
		t.Fatalf("expected 2 playlists, got %d", len(playlists))
	}
	if playlists[0].ID != "pl1" || playlists[0].Title != "Watch Later Overflow" {
		t.Errorf("unexpected first playlist: %+v", playlists[0])
	}
	if playlists[0].ItemCount != 12 {
		t.Errorf("expected item count 12, got %d", playlists[0].ItemCount)
	}
	if playlists[0].Privacy != "private" {
		t.Errorf("expected privacy 'private', got %s", playlists[0].Privacy)
	}
	if playlists[1].Description != "recipes" {
		t.Errorf("expected description 'recipes', got %s", playlists[1].Description)
	}
}

func TestGetPlaylist(t *testing.T) {
	t.Run("Not Found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"items": [], "pageInfo": {"totalResults": 0}}`)
		}))
		defer server.Close()

		srv := newAuthenticatedService(t, server.URL)

		_, err := srv.GetPlaylist(context.Background(), "missing")
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("Found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("id") != "pl1" {
				t.Errorf("expected id=pl1, got %s", r.URL.Query().Get("id"))
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"items": [{"id": "pl1", "snippet": {"title": "Mix"}}]}`)
		}))
		defer server.Close()

		srv := newAuthenticatedService(t, server.URL)

		playlist, err := srv.GetPlaylist(context.Background(), "pl1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if playlist.Title != "Mix" {
			t.Errorf("expected title 'Mix', got %s", playlist.Title)
		}
	})
}

func TestGetPlaylistItems(t *testing.T) {
	t.Run("Follows Continuation Cursor", func(t *testing.T) {
		// Three pages; the final one carries no nextPageToken.
		pages := map[string]string{
			"": `{
				"items": [
					{"id": "item1", "snippet": {"title": "Video One", "position": 0, "videoOwnerChannelTitle": "Chan A", "resourceId": {"kind": "youtube#video", "videoId": "vid1"}}},
					{"id": "item2", "snippet": {"title": "Video Two", "position": 1, "videoOwnerChannelTitle": "Chan B", "resourceId": {"kind": "youtube#video", "videoId": "vid2"}}}
				],
				"nextPageToken": "page2"
			}`,
			"page2": `{
				"items": [
					{"id": "item3", "snippet": {"title": "Video Three", "position": 2, "resourceId": {"videoId": "vid3"}}}
				],
				"nextPageToken": "page3"
			}`,
			"page3": `{
				"items": [
					{"id": "item4", "snippet": {"title": "Video Four", "position": 3, "resourceId": {"videoId": "vid4"}}}
				]
			}`,
		}

		var requested []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/playlistItems" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if r.URL.Query().Get("playlistId") != "pl1" {
				t.Errorf("expected playlistId=pl1, got %s", r.URL.Query().Get("playlistId"))
			}

			token := r.URL.Query().Get("pageToken")
			requested = append(requested, token)

			body, ok := pages[token]
			if !ok {
				t.Fatalf("unexpected page token: %q", token)
			}

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, body)
		}))
		defer server.Close()

		srv := newAuthenticatedService(t, server.URL)

		items, err := srv.GetPlaylistItems(context.Background(), "pl1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(requested) != 3 {
			t.Errorf("expected 3 page requests, got %d (%v)", len(requested), requested)
		}

		if len(items) != 4 {
			t.Fatalf("expected 4 items, got %d", len(items))
		}

		seen := map[string]bool{}
		for _, item := range items {
			if seen[item.ID] {
				t.Errorf("item %s returned more than once", item.ID)
			}
			seen[item.ID] = true
		}

		if items[0].ID != "item1" || items[3].ID != "item4" {
			t.Errorf("items out of order: first=%s last=%s", items[0].ID, items[3].ID)
		}
		if items[0].VideoID != "vid1" {
			t.Errorf("expected video id vid1, got %s", items[0].VideoID)
		}
		if items[0].Channel != "Chan A" {
			t.Errorf("expected channel 'Chan A', got %s", items[0].Channel)
		}
		if items[0].Link != "https://www.youtube.com/watch?v=vid1" {
			t.Errorf("unexpected watch link: %s", items[0].Link)
		}
	})

	t.Run("Empty Playlist", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"items": [], "pageInfo": {"totalResults": 0}}`)
		}))
		defer server.Close()

		srv := newAuthenticatedService(t, server.URL)

		items, err := srv.GetPlaylistItems(context.Background(), "pl-empty")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if items == nil {
			t.Fatal("expected empty slice, got nil")
		}
		if len(items) != 0 {
			t.Errorf("expected 0 items, got %d", len(items))
		}
	})
}

func TestDeletePlaylistItem(t *testing.T) {
	t.Run("Issues Delete Call", func(t *testing.T) {
		var gotMethod, gotID string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotID = r.URL.Query().Get("id")
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		srv := newAuthenticatedService(t, server.URL)

		if err := srv.DeletePlaylistItem(context.Background(), "item1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotMethod != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", gotMethod)
		}
		if gotID != "item1" {
			t.Errorf("expected id=item1, got %s", gotID)
		}
	})

	t.Run("Empty ID", func(t *testing.T) {
		srv := newAuthenticatedService(t, "")
		err := srv.DeletePlaylistItem(context.Background(), "")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("Unauthorized Response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		srv := newAuthenticatedService(t, server.URL)

		err := srv.DeletePlaylistItem(context.Background(), "item1")
		if !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("Transport Failure", func(t *testing.T) {
		srv := newAuthenticatedService(t, "")
		srv.httpClient = &http.Client{
			Transport: tu.NewMockRoundTripper(nil, errors.New("connection reset")),
		}

		err := srv.DeletePlaylistItem(context.Background(), "item1")
		if err == nil || !strings.Contains(err.Error(), "connection reset") {
			t.Errorf("expected transport error, got %v", err)
		}
	})

	t.Run("API Error Message Surfaced", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"code": 403, "message": "The request is not properly authorized"},
			})
		}))
		defer server.Close()

		srv := newAuthenticatedService(t, server.URL)

		err := srv.DeletePlaylistItem(context.Background(), "item1")
		if err == nil || !strings.Contains(err.Error(), "not properly authorized") {
			t.Errorf("expected API error message, got %v", err)
		}
	})
}
