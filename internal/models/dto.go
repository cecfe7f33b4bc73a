package models

// Playlist represents a YouTube playlist owned by the authenticated user.
type Playlist struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ItemCount   int    `json:"item_count"`
	Privacy     string `json:"privacy,omitempty"`
}

// PlaylistItem represents a single entry in a playlist.
//
// ID is the playlist-item id used for deletion and is distinct from VideoID,
// which identifies the underlying video.
type PlaylistItem struct {
	ID       string `json:"id"`
	VideoID  string `json:"video_id"`
	Title    string `json:"title"`
	Channel  string `json:"channel,omitempty"`
	Link     string `json:"link"`
	Position int    `json:"position"`
}

// PlaylistExport represents a playlist with its complete item listing.
type PlaylistExport struct {
	Playlist Playlist       `json:"playlist"`
	Items    []PlaylistItem `json:"items"`
}

// WatchLink builds the public watch URL for a video id.
func WatchLink(videoID string) string {
	if videoID == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + videoID
}
