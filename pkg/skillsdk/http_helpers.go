package skillsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doRequest sends a request with hc. A non-nil form is sent url-encoded.
func (c *SDKClient) doRequest(
	ctx context.Context,
	hc *http.Client,
	method, path string,
	form url.Values,
) (*http.Response, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}

func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// decodeJSON decodes a JSON response into target.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	body, err := readBody(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, body)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// readPage parses an HTML response that should have expectedStatus.
func readPage(resp *http.Response, expectedStatus int) (*html.Node, error) {
	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != expectedStatus {
		return nil, parseErrorResponse(resp, body)
	}

	doc, err := parseHTML(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return doc, nil
}

// expectRedirect checks for a redirect with status and returns its target.
func expectRedirect(resp *http.Response, status int) (string, error) {
	body, err := readBody(resp)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != status {
		return "", parseErrorResponse(resp, body)
	}
	return resp.Header.Get("Location"), nil
}
