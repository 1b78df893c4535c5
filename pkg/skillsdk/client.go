package skillsdk

import (
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// SDKClient is a client for the public endpoints of the skills service. It
// creates a Session for each user that signs in.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new client for the service at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout:       10 * time.Second,
			CheckRedirect: noRedirect,
		},
	}
}

// newSessionClient returns an HTTP client with its own cookie jar, so
// sessions for different users never share a cookie.
func (c *SDKClient) newSessionClient() *http.Client {
	jar, _ := cookiejar.New(nil) // only fails for a bad PublicSuffixList

	return &http.Client{
		Timeout:       c.HTTPClient.Timeout,
		Transport:     c.HTTPClient.Transport,
		Jar:           jar,
		CheckRedirect: noRedirect,
	}
}

// noRedirect hands redirects back to the caller; where the server sends
// the browser is part of the answer.
func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}
