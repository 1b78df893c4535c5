package http

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/aussiebroadwan/myskills/internal/skills/domain"
	"github.com/aussiebroadwan/myskills/internal/skills/service"
	"github.com/aussiebroadwan/myskills/pkg/httpx"
	"github.com/aussiebroadwan/myskills/pkg/slogx"
)

const sessionCookieName = "skills_session"

// CookieConfig controls the session cookie attributes.
type CookieConfig struct {
	Secure bool
}

func (c CookieConfig) set(w http.ResponseWriter, token string, sess domain.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c CookieConfig) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func sessionToken(r *http.Request) string {
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// sessionAuthenticator resolves the session cookie to a principal.
func sessionAuthenticator(sessions *service.SessionService) httpx.Authenticator {
	return func(r *http.Request) (httpx.Principal, bool) {
		sess, err := sessions.Resolve(r.Context(), sessionToken(r))
		if err != nil {
			if !errors.Is(err, service.ErrNoSession) {
				slogx.FromContext(r.Context()).Error("resolve session", "error", err)
			}
			return httpx.Principal{}, false
		}
		return httpx.Principal{
			Username:  sess.Username,
			SessionID: sess.ID,
			Roles:     domain.DefaultRoles,
		}, true
	}
}

// redirectToLogin sends anonymous browsers to the login form, remembering
// where a GET was headed.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := "/login"
	if r.Method == http.MethodGet && r.URL.Path != "/" {
		target += "?next=" + url.QueryEscape(r.URL.RequestURI())
	}
	httpx.NoCache(w)
	http.Redirect(w, r, target, http.StatusFound)
}
