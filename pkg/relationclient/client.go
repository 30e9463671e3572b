package relationclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"casavista-listings/pkg/logger"
	"casavista-listings/pkg/metrics"
)

// HeaderInternalSecret carries the pre-shared secret on service-to-service
// calls. It is never a user session token.
const HeaderInternalSecret = "X-Internal-Secret"

const checkPath = "/internal/check-user-property-relation"

// Client calls the properties service's internal relation-check endpoint.
type Client struct {
	baseURL    string
	secret     string
	httpClient *http.Client
}

type checkResponse struct {
	HasRelation bool `json:"has_relation"`
	HasVisit    bool `json:"has_visit"`
	HasProposal bool `json:"has_proposal"`
}

func NewClient(baseURL, secret string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		secret:  secret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// HasRelation reports whether the user has a visit or proposal on any property
// owned by ownerID. Every failure resolves to false: this call gates an
// authorization decision, so an outage must read as "no relation", never as
// access. Callers get no error to mishandle.
func (c *Client) HasRelation(ctx context.Context, userID, ownerID string) bool {
	req, err := c.buildCheckRequest(ctx, userID, ownerID)
	if err != nil {
		logger.GlobalLogger.Errorf("relation check request build failed: user_id=%s, owner_id=%s, error=%v", userID, ownerID, err)
		metrics.ClientFailuresTotal.WithLabelValues("relation", "build").Inc()
		return false
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ClientRequestDuration.WithLabelValues("relation", "error").Observe(time.Since(start).Seconds())
		metrics.ClientFailuresTotal.WithLabelValues("relation", "transport").Inc()
		logger.GlobalLogger.Errorf("relation check call failed, denying: user_id=%s, owner_id=%s, error=%v", userID, ownerID, err)
		return false
	}
	defer resp.Body.Close()
	metrics.ClientRequestDuration.WithLabelValues("relation", fmt.Sprintf("%d", resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		metrics.ClientFailuresTotal.WithLabelValues("relation", "status").Inc()
		logger.GlobalLogger.Errorf("relation check returned %d, denying: user_id=%s, owner_id=%s", resp.StatusCode, userID, ownerID)
		return false
	}

	result, err := c.parseCheckResponse(resp)
	if err != nil {
		metrics.ClientFailuresTotal.WithLabelValues("relation", "decode").Inc()
		logger.GlobalLogger.Errorf("relation check response unreadable, denying: user_id=%s, owner_id=%s, error=%v", userID, ownerID, err)
		return false
	}

	return result.HasRelation
}

func (c *Client) buildCheckRequest(ctx context.Context, userID, ownerID string) (*http.Request, error) {
	query := url.Values{}
	query.Set("user_id", userID)
	query.Set("owner_id", ownerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+checkPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create relation check request: %v", err)
	}
	req.Header.Set(HeaderInternalSecret, c.secret)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) parseCheckResponse(resp *http.Response) (*checkResponse, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read relation check response: %v", err)
	}
	var result checkResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode relation check response: %v", err)
	}
	return &result, nil
}
