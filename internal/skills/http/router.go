package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/myskills/internal/skills/service"
	"github.com/aussiebroadwan/myskills/internal/skills/store"
	"github.com/aussiebroadwan/myskills/pkg/httpx"
	"github.com/aussiebroadwan/myskills/pkg/jwtx"
	"github.com/aussiebroadwan/myskills/pkg/slogx"

	_ "github.com/aussiebroadwan/myskills/api/skills" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	views        *Views
	keys         *jwtx.KeySet
	cookie       CookieConfig
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	SkillService   *service.SkillService
	SessionService *service.SessionService
}

func NewRouter(
	views *Views,
	keys *jwtx.KeySet,
	cookie CookieConfig,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		views:        views,
		keys:         keys,
		cookie:       cookie,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSession()
	r.registerSkills()
	r.registerSystem()

	r.Mux.Handle("GET /swagger/", httpx.Chain(httpSwagger.Handler(),
		httpx.RateLimitByIP(httpx.LenientLimit),
	))

	// everything else; unknown paths still need a session
	r.Mux.Handle("/", r.authenticated(func(w http.ResponseWriter, req *http.Request) {
		r.views.RenderError(w, req, http.StatusNotFound, "There is nothing here.")
	}))
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			My Skills
//	@version		0.1.0
//	@description	Personal skills tracker. Signed-in users record skill goals with a target date and a done flag.
//	@description
//	@description	Pages are server rendered HTML; authentication uses the skills_session cookie set by POST /login.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/myskills
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						skills_session
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authenticated wraps h with the session check and the per-user limit.
func (r *Router) authenticated(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(sessionAuthenticator(r.SessionService), http.HandlerFunc(redirectToLogin)),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
}

func (r *Router) registerSession() {
	h := &LoginHandler{
		Sessions: r.SessionService,
		Views:    r.views,
		Cookie:   r.cookie,
	}

	r.Mux.Handle("GET /login", httpx.Chain(http.HandlerFunc(h.HandleGet),
		httpx.RateLimitByIP(httpx.LenientLimit),
	))

	// strict limit per address and username against password guessing
	r.Mux.Handle("POST /login", httpx.Chain(http.HandlerFunc(h.HandlePost),
		httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username"),
	))

	r.Mux.Handle("GET /logout", http.HandlerFunc(h.HandleLogout))
	r.Mux.Handle("POST /logout", http.HandlerFunc(h.HandleLogout))
}

func (r *Router) registerSkills() {
	h := &SkillsHandler{
		Skills: r.SkillService,
		Views:  r.views,
	}

	r.Mux.Handle("GET /{$}", r.authenticated(h.HandleWelcome))
	r.Mux.Handle("GET /list-skills", r.authenticated(h.HandleList))
	r.Mux.Handle("GET /add-skill", r.authenticated(h.HandleNewForm))
	r.Mux.Handle("POST /add-skill", r.authenticated(h.HandleCreate))
	r.Mux.Handle("GET /update-skill", r.authenticated(h.HandleEditForm))
	r.Mux.Handle("POST /update-skill", r.authenticated(h.HandleUpdate))
	r.Mux.Handle("GET /delete-skill", r.authenticated(h.HandleDelete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
		httpx.RateLimitByIP(httpx.LenientLimit),
	))
	r.Mux.Handle("GET /readyz", httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
		httpx.RateLimitByIP(httpx.LenientLimit),
	))
}
