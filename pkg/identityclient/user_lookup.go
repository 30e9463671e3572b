package identityclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"casavista-listings/pkg/metrics"
)

// UserInfo is the profile shape the identity service exposes for a user
// lookup. It never carries credential material.
type UserInfo struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	IsActive    bool      `json:"isActive"`
}

// GetUserInfo fetches a user profile, forwarding the calling user's own
// session credential. Unlike introspection this returns an error: the
// enrichment path decides what to do with it, which is to log and leave the
// profile empty rather than fail the listing.
func (c *Client) GetUserInfo(ctx context.Context, userID, credential string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/admin/users/%s", c.baseURL, userID), nil)
	if err != nil {
		metrics.ClientFailuresTotal.WithLabelValues("user_lookup", "build").Inc()
		return nil, fmt.Errorf("failed to create user lookup request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ClientRequestDuration.WithLabelValues("user_lookup", "error").Observe(time.Since(start).Seconds())
		metrics.ClientFailuresTotal.WithLabelValues("user_lookup", "transport").Inc()
		return nil, fmt.Errorf("user lookup call failed: %v", err)
	}
	defer resp.Body.Close()
	metrics.ClientRequestDuration.WithLabelValues("user_lookup", fmt.Sprintf("%d", resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		metrics.ClientFailuresTotal.WithLabelValues("user_lookup", "status").Inc()
		return nil, fmt.Errorf("user lookup returned %d for user %s", resp.StatusCode, userID)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ClientFailuresTotal.WithLabelValues("user_lookup", "read").Inc()
		return nil, fmt.Errorf("failed to read user lookup response: %v", err)
	}

	var info UserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		metrics.ClientFailuresTotal.WithLabelValues("user_lookup", "decode").Inc()
		return nil, fmt.Errorf("failed to decode user lookup response: %v", err)
	}

	return &info, nil
}
