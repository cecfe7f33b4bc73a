// YouTube Data API v3 implementation of [Service]
//
// Response types based on https://developers.google.com/youtube/v3/docs
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/ytcull/internal/models"
	"github.com/desertthunder/ytcull/internal/shared"
	"golang.org/x/oauth2"
)

const (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"
	youtubeBaseURL = "https://www.googleapis.com/youtube/v3"

	// Full youtube scope; readonly is not enough to delete playlist items.
	youtubeScope = "https://www.googleapis.com/auth/youtube"

	// Page-size cap imposed by the API for list endpoints.
	maxPageSize = 50
)

type pageInfo struct {
	TotalResults   int `json:"totalResults"`
	ResultsPerPage int `json:"resultsPerPage"`
}

type playlistSnippet struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channelTitle"`
}

type playlistContentDetails struct {
	ItemCount int `json:"itemCount"`
}

type playlistStatus struct {
	PrivacyStatus string `json:"privacyStatus"`
}

// YouTubePlaylist represents a playlist resource from the Data API.
type YouTubePlaylist struct {
	ID             string                  `json:"id"`
	Snippet        playlistSnippet         `json:"snippet"`
	ContentDetails *playlistContentDetails `json:"contentDetails"`
	Status         *playlistStatus         `json:"status"`
}

type resourceID struct {
	Kind    string `json:"kind"`
	VideoID string `json:"videoId"`
}

type playlistItemSnippet struct {
	Title                  string     `json:"title"`
	PlaylistID             string     `json:"playlistId"`
	Position               int        `json:"position"`
	VideoOwnerChannelTitle string     `json:"videoOwnerChannelTitle"`
	ResourceID             resourceID `json:"resourceId"`
}

// YouTubePlaylistItem represents a playlistItem resource from the Data API.
//
// The resource id is the deletion handle; the video id lives in the snippet.
type YouTubePlaylistItem struct {
	ID      string              `json:"id"`
	Snippet playlistItemSnippet `json:"snippet"`
}

type playlistsResponse struct {
	Items         []YouTubePlaylist `json:"items"`
	NextPageToken string            `json:"nextPageToken"`
	PageInfo      pageInfo          `json:"pageInfo"`
}

type playlistItemsResponse struct {
	Items         []YouTubePlaylistItem `json:"items"`
	NextPageToken string                `json:"nextPageToken"`
	PageInfo      pageInfo              `json:"pageInfo"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// YouTubeService implements [Service] and [OAuthService] for the YouTube Data API.
//
// Uses [oauth2] for authentication; the oauth2 transport refreshes expired
// access tokens transparently when a refresh token is held.
type YouTubeService struct {
	config      *oauth2.Config
	token       *oauth2.Token
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
	baseURL     string
}

// NewYouTubeService creates a new YouTube service with the given OAuth2 credentials.
func NewYouTubeService(credentials map[string]string) (*YouTubeService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("missing client_id in credentials")
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("missing client_secret in credentials")
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:3000/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{youtubeScope},
		Endpoint: oauth2.Endpoint{
			AuthURL:  googleAuthURL,
			TokenURL: googleTokenURL,
		},
	}

	return &YouTubeService{
		config:     config,
		httpClient: http.DefaultClient,
		baseURL:    youtubeBaseURL,
	}, nil
}

func (y *YouTubeService) Name() string {
	return "YouTube"
}

// GetAuthURL returns the Google authorization URL for user consent.
//
// Offline access is requested so the token exchange yields a refresh token.
func (y *YouTubeService) GetAuthURL(state string) string {
	return y.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// GetOAuthConfig exposes the OAuth2 configuration for the callback server.
func (y *YouTubeService) GetOAuthConfig() *oauth2.Config {
	return y.config
}

// Authenticate performs OAuth2 authentication. Expects either stored tokens
// ("access_token", optionally "refresh_token"/"token_expiry") or an "auth_code"
// in credentials.
func (y *YouTubeService) Authenticate(ctx context.Context, credentials map[string]string) error {
	conf := shared.YouTubeConfig{
		AccessToken:  credentials["access_token"],
		RefreshToken: credentials["refresh_token"],
		TokenExpiry:  credentials["token_expiry"],
	}

	if token := conf.Token(); token != nil {
		return y.OAuthenticate(ctx, token)
	}

	if authCode, ok := credentials["auth_code"]; ok && authCode != "" {
		token, err := y.config.Exchange(ctx, authCode)
		if err != nil {
			return fmt.Errorf("failed to exchange auth code: %w", err)
		}
		return y.OAuthenticate(ctx, token)
	}

	return fmt.Errorf("%w: missing access_token or auth_code", shared.ErrMissingCredentials)
}

// OAuthenticate installs the token and builds an auto-refreshing HTTP client around it.
func (y *YouTubeService) OAuthenticate(ctx context.Context, token *oauth2.Token) error {
	if token == nil || (token.AccessToken == "" && token.RefreshToken == "") {
		return fmt.Errorf("%w: empty token", shared.ErrInvalidCredentials)
	}

	if !token.Valid() && token.RefreshToken == "" {
		return fmt.Errorf("%w: reauthorization required", shared.ErrTokenExpired)
	}

	y.token = token
	y.tokenSource = y.config.TokenSource(ctx, token)
	y.httpClient = oauth2.NewClient(ctx, y.tokenSource)
	return nil
}

// Token returns the current token, refreshed through the token source if expired.
func (y *YouTubeService) Token() (*oauth2.Token, error) {
	if y.tokenSource == nil {
		return nil, shared.ErrNotAuthenticated
	}

	token, err := y.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTokenExpired, err)
	}

	y.token = token
	return token, nil
}

// doRequest performs an authenticated request against the Data API.
//
// The endpoint is a path like "/playlists"; query carries the API parameters.
func (y *YouTubeService) doRequest(ctx context.Context, method, endpoint string, query url.Values, result any) error {
	if y.tokenSource == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	if y.token != nil && !y.token.Valid() && y.token.RefreshToken == "" {
		return fmt.Errorf("%w: reauthorization required", shared.ErrTokenExpired)
	}

	apiURL := y.baseURL + endpoint
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: API returned status 401", shared.ErrTokenExpired)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("youtube API error (status %d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("youtube API error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// GetPlaylists retrieves the authenticated user's playlists.
//
// Returns a single page of up to 50 playlists, the cap the API enforces.
func (y *YouTubeService) GetPlaylists(ctx context.Context) ([]models.Playlist, error) {
	query := url.Values{}
	query.Set("part", "snippet,contentDetails,status")
	query.Set("mine", "true")
	query.Set("maxResults", fmt.Sprintf("%d", maxPageSize))

	var response playlistsResponse
	if err := y.doRequest(ctx, http.MethodGet, "/playlists", query, &response); err != nil {
		return nil, err
	}

	playlists := make([]models.Playlist, 0, len(response.Items))
	for _, yp := range response.Items {
		playlists = append(playlists, convertPlaylist(yp))
	}

	return playlists, nil
}

// GetPlaylist retrieves a playlist by ID.
func (y *YouTubeService) GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	query := url.Values{}
	query.Set("part", "snippet,contentDetails,status")
	query.Set("id", playlistID)

	var response playlistsResponse
	if err := y.doRequest(ctx, http.MethodGet, "/playlists", query, &response); err != nil {
		return nil, err
	}

	if len(response.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}

	playlist := convertPlaylist(response.Items[0])
	return &playlist, nil
}

// GetPlaylistItems retrieves all items of a playlist using cursor pagination.
//
// Pages are requested until a response without a nextPageToken; items are
// accumulated in order, each exactly once. An empty playlist yields an empty
// slice.
func (y *YouTubeService) GetPlaylistItems(ctx context.Context, playlistID string) ([]models.PlaylistItem, error) {
	items := []models.PlaylistItem{}
	pageToken := ""

	for {
		query := url.Values{}
		query.Set("part", "snippet")
		query.Set("playlistId", playlistID)
		query.Set("maxResults", fmt.Sprintf("%d", maxPageSize))
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		var page playlistItemsResponse
		if err := y.doRequest(ctx, http.MethodGet, "/playlistItems", query, &page); err != nil {
			return nil, err
		}

		for _, yi := range page.Items {
			items = append(items, convertPlaylistItem(yi))
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	return items, nil
}

// DeletePlaylistItem removes a single playlist item by its playlist-item id.
func (y *YouTubeService) DeletePlaylistItem(ctx context.Context, itemID string) error {
	if itemID == "" {
		return fmt.Errorf("%w: empty playlist item id", shared.ErrInvalidArgument)
	}

	query := url.Values{}
	query.Set("id", itemID)

	return y.doRequest(ctx, http.MethodDelete, "/playlistItems", query, nil)
}

func convertPlaylist(yp YouTubePlaylist) models.Playlist {
	playlist := models.Playlist{
		ID:          yp.ID,
		Title:       yp.Snippet.Title,
		Description: yp.Snippet.Description,
	}

	if yp.ContentDetails != nil {
		playlist.ItemCount = yp.ContentDetails.ItemCount
	}
	if yp.Status != nil {
		playlist.Privacy = yp.Status.PrivacyStatus
	}

	return playlist
}

func convertPlaylistItem(yi YouTubePlaylistItem) models.PlaylistItem {
	return models.PlaylistItem{
		ID:       yi.ID,
		VideoID:  yi.Snippet.ResourceID.VideoID,
		Title:    yi.Snippet.Title,
		Channel:  yi.Snippet.VideoOwnerChannelTitle,
		Link:     models.WatchLink(yi.Snippet.ResourceID.VideoID),
		Position: yi.Snippet.Position,
	}
}
