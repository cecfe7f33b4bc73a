// Package server provides the temporary localhost HTTP surface used during OAuth authorization.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the OAuth2 authorization code callback flow.
//
// The handler validates the state parameter (CSRF protection), exchanges the
// authorization code for tokens at Google's token endpoint, and sends the
// result through a channel.
//
// It only processes one callback to prevent replay attacks.
//
// # Usage
//
// When the user runs `ytcull auth login`, a temporary HTTP server starts on
// the configured host/port, handles the callback, and shuts down after the
// result (or a timeout) is observed by the CLI.
package server
