package identityclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"casavista-listings/pkg/logger"
	"casavista-listings/pkg/metrics"
)

const introspectPath = "/auth/introspect"

// IntrospectionResult mirrors the identity service's introspection response.
type IntrospectionResult struct {
	Active bool                `json:"active"`
	Claims IntrospectionClaims `json:"claims"`
	Reason string              `json:"reason,omitempty"`
}

type IntrospectionClaims struct {
	Subject   string `json:"sub"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"exp"`
}

// IntrospectToken asks the identity service whether the session token is
// active. Failures never become errors: an unreachable identity service
// yields an inactive result, so callers on the authentication path deny.
func (c *Client) IntrospectToken(ctx context.Context, token string) *IntrospectionResult {
	req, err := c.buildIntrospectRequest(ctx, token)
	if err != nil {
		logger.GlobalLogger.Errorf("introspection request build failed: %v", err)
		metrics.ClientFailuresTotal.WithLabelValues("introspect", "build").Inc()
		return &IntrospectionResult{Active: false, Reason: "service_error"}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ClientRequestDuration.WithLabelValues("introspect", "error").Observe(time.Since(start).Seconds())
		metrics.ClientFailuresTotal.WithLabelValues("introspect", "transport").Inc()
		logger.GlobalLogger.Errorf("introspection call failed: %v", err)
		return &IntrospectionResult{Active: false, Reason: "service_error"}
	}
	defer resp.Body.Close()
	metrics.ClientRequestDuration.WithLabelValues("introspect", fmt.Sprintf("%d", resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		metrics.ClientFailuresTotal.WithLabelValues("introspect", "status").Inc()
		logger.GlobalLogger.Errorf("introspection returned %d", resp.StatusCode)
		return &IntrospectionResult{Active: false, Reason: "service_error"}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ClientFailuresTotal.WithLabelValues("introspect", "read").Inc()
		return &IntrospectionResult{Active: false, Reason: "service_error"}
	}

	var result IntrospectionResult
	if err := json.Unmarshal(body, &result); err != nil {
		metrics.ClientFailuresTotal.WithLabelValues("introspect", "decode").Inc()
		logger.GlobalLogger.Errorf("introspection response unreadable: %v", err)
		return &IntrospectionResult{Active: false, Reason: "service_error"}
	}

	return &result
}

func (c *Client) buildIntrospectRequest(ctx context.Context, token string) (*http.Request, error) {
	payload, err := json.Marshal(map[string]string{"token": token})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal introspection payload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+introspectPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create introspection request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}
