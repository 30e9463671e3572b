// Package identityclient is the properties service's HTTP client for the
// identity service: token introspection for the auth middleware and user
// lookups for owner-facing listing enrichment.
package identityclient

import (
	"net/http"
	"time"
)

// Client calls the identity service on behalf of this service or of an
// authenticated end user.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}
