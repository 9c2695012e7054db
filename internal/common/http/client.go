// internal/common/http/client.go
package http

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// NewClient returns a plain client with the given timeout. A zero timeout
// leaves the deadline to the request context.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}

// NewBearerClient returns a client that sends "Authorization: Bearer <token>"
// on every request. The token is used as given; it is never refreshed.
func NewBearerClient(timeout time.Duration, accessToken string) *http.Client {
	base := NewClient(timeout)
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	client := oauth2.NewClient(ctx, src)
	client.Timeout = timeout
	return client
}
