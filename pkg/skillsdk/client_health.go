package skillsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// GetLiveness reports whether the process is serving. It never carries
// checks.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, c.HTTPClient, http.MethodGet, "/livez", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetReadiness reports whether the skill store and the session signer are
// usable. A degraded service still returns its report, together with a
// *NotReadyError naming the failing checks.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, c.HTTPClient, http.MethodGet, "/readyz", nil)
	if err != nil {
		return nil, err
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusServiceUnavailable:
	default:
		return nil, parseErrorResponse(resp, body)
	}

	var health HealthResponse
	if err := json.Unmarshal(body, &health); err != nil {
		return nil, fmt.Errorf("failed to decode readiness: %w", err)
	}

	if resp.StatusCode == http.StatusServiceUnavailable {
		return &health, &NotReadyError{Failing: health.Checks.Failing()}
	}
	return &health, nil
}

// NotReadyError is returned by GetReadiness when /readyz answers 503.
// It matches ErrNotReady.
type NotReadyError struct {
	Failing []string
}

func (e *NotReadyError) Error() string {
	if len(e.Failing) == 0 {
		return ErrNotReady.Error()
	}
	return ErrNotReady.Error() + ": " + strings.Join(e.Failing, ", ")
}

func (e *NotReadyError) Is(target error) bool { return target == ErrNotReady }
