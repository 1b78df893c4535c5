package skillsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Session is a signed-in user. It holds the session cookie and covers the
// pages that need one.
type Session struct {
	client   *SDKClient
	http     *http.Client
	Username string
}

// Login signs username in. code is the one-time password for users with a
// second factor and may be empty otherwise.
func (c *SDKClient) Login(ctx context.Context, username, password, code string) (*Session, error) {
	hc := c.newSessionClient()

	form := url.Values{
		"username": {username},
		"password": {password},
	}
	if code != "" {
		form.Set("code", code)
	}

	resp, err := c.doRequest(ctx, hc, http.MethodPost, "/login", form)
	if err != nil {
		return nil, err
	}

	location, err := expectRedirect(resp, http.StatusSeeOther)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(location, "/login") {
		return nil, ErrBadCredentials
	}

	return &Session{client: c, http: hc, Username: username}, nil
}

// Logout ends the session on the server and drops the cookie.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.client.doRequest(ctx, s.http, http.MethodPost, "/logout", nil)
	if err != nil {
		return err
	}

	_, err = expectRedirect(resp, http.StatusSeeOther)
	return err
}
