package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/myskills/internal/skills/service"
	"github.com/aussiebroadwan/myskills/pkg/httpx"
)

// LoginHandler serves the sign in form and signs users in and out.
type LoginHandler struct {
	Sessions *service.SessionService
	Views    *Views
	Cookie   CookieConfig
}

type loginView struct {
	page
	Next      string
	Failed    bool
	LoggedOut bool
}

// HandleGet godoc
//
//	@Summary		Login form
//	@Description	Shows the sign in form. ?error shows a failed attempt banner, ?logout a signed out banner.
//	@Tags			Session
//	@Produce		html
//	@Param			next	query		string	false	"Local path to return to after signing in"
//	@Success		200		{string}	string	"HTML form"
//	@Router			/login [get]
func (h *LoginHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.Views.Render(w, r, http.StatusOK, viewLogin, loginView{
		page:      page{Title: "Sign in"},
		Next:      httpx.LocalPath(q.Get("next"), ""),
		Failed:    q.Has("error"),
		LoggedOut: q.Has("logout"),
	})
}

// HandlePost godoc
//
//	@Summary		Sign in
//	@Description	Checks the credentials, sets the skills_session cookie and redirects to next or /.
//	@Description	Failed attempts redirect back to /login?error.
//	@Tags			Session
//	@Accept			x-www-form-urlencoded
//	@Param			username	formData	string	true	"Username (case sensitive)"
//	@Param			password	formData	string	true	"Password"
//	@Param			code		formData	string	false	"TOTP code for users with a second factor"
//	@Param			next		formData	string	false	"Local path to return to"
//	@Success		303			{string}	string	"Redirect to next or /"
//	@Failure		429			{string}	string	"Too many attempts"
//	@Router			/login [post]
func (h *LoginHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Views.RenderError(w, r, http.StatusBadRequest, "The submitted form could not be read.")
		return
	}

	next := httpx.LocalPath(r.PostForm.Get("next"), "")

	token, sess, err := h.Sessions.Login(r.Context(), service.LoginRequest{
		Username:  r.PostForm.Get("username"),
		Password:  r.PostForm.Get("password"),
		Code:      r.PostForm.Get("code"),
		UserAgent: r.UserAgent(),
		IPAddress: httpx.GetRemoteIP(r),
	})
	if errors.Is(err, service.ErrInvalidCredentials) {
		target := "/login?error"
		if next != "" {
			target += "&next=" + url.QueryEscape(next)
		}
		httpx.SeeOther(w, r, target)
		return
	}
	if err != nil {
		h.Views.ServerError(w, r, err)
		return
	}

	h.Cookie.set(w, token, sess)
	httpx.NoCache(w)
	httpx.SeeOther(w, r, httpx.LocalPath(next, "/"))
}

// HandleLogout godoc
//
//	@Summary		Sign out
//	@Description	Ends the server side session, clears the cookie and redirects to /login?logout.
//	@Tags			Session
//	@Success		303	{string}	string	"Redirect to /login?logout"
//	@Router			/logout [post]
//	@Router			/logout [get]
func (h *LoginHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		if err := h.Sessions.Logout(r.Context(), token); err != nil {
			h.Views.ServerError(w, r, err)
			return
		}
	}

	h.Cookie.clear(w)
	httpx.NoCache(w)
	httpx.SeeOther(w, r, "/login?logout")
}
