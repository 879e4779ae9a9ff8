package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/luminaryawards/program-api/internal/ratelimit"
	"github.com/luminaryawards/program-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Awardees      *service.AwardeeService
	Posts         *service.PostService
	Announcements *service.AnnouncementService
	Events        *service.EventService
	Newsletter    *service.NewsletterService
	Inquiries     *service.InquiryService
	Push          *service.PushService
	Users         *service.UserService
	Auth          *service.AuthService
	CookieDomain  string
	// Limiter throttles public intake endpoints. Nil disables throttling.
	Limiter        *ratelimit.Limiter
	IntakePolicies IntakePolicies
	Logger         *slog.Logger
}

// IntakePolicies carries the per-bucket rate limit policies applied to
// unauthenticated write endpoints.
type IntakePolicies struct {
	Newsletter ratelimit.Policy
	Contact    ratelimit.Policy
	Push       ratelimit.Policy
}

// NewRouter creates and configures the HTTP router. Public read routes are
// open, public intake routes are rate limited, and everything under
// /api/admin runs behind the admin guard.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	awardeeHandlers := &AwardeeHandlers{Svc: services.Awardees}
	postHandlers := &PostHandlers{Svc: services.Posts}
	announcementHandlers := &AnnouncementHandlers{Svc: services.Announcements}
	eventHandlers := &EventHandlers{Svc: services.Events}
	newsletterHandlers := &NewsletterHandlers{Svc: services.Newsletter}
	inquiryHandlers := &InquiryHandlers{Svc: services.Inquiries}
	pushHandlers := &PushHandlers{Svc: services.Push}
	userHandlers := &UserHandlers{Svc: services.Users}

	adminOnly := adminWrapper(services.Auth, services.Logger)
	limited := limitWrapper(services.Limiter)

	registerPublicRoutes(mux, publicHandlers{
		Awardees:      awardeeHandlers,
		Posts:         postHandlers,
		Announcements: announcementHandlers,
		Events:        eventHandlers,
	})
	registerIntakeRoutes(mux, intakeHandlers{
		Newsletter: newsletterHandlers,
		Inquiries:  inquiryHandlers,
		Push:       pushHandlers,
	}, limited, services.IntakePolicies)
	registerAdminRoutes(mux, adminHandlers{
		Awardees:      awardeeHandlers,
		Posts:         postHandlers,
		Announcements: announcementHandlers,
		Events:        eventHandlers,
		Newsletter:    newsletterHandlers,
		Inquiries:     inquiryHandlers,
		Push:          pushHandlers,
		Users:         userHandlers,
	}, adminOnly)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	if services.Auth != nil {
		authHandlers := &AuthHandlers{Svc: services.Auth, CookieDomain: services.CookieDomain, Logger: services.Logger}
		registerAuthRoutes(mux, authHandlers)
	}

	return mux
}

// adminWrapper returns the admin guard middleware. A nil auth service means
// the deployment is misconfigured (no session store or incomplete OAuth
// settings), so the back office stays closed until that is fixed.
func adminWrapper(auth *service.AuthService, logger *slog.Logger) func(http.Handler) http.Handler {
	if auth == nil {
		return adminUnavailable(logger)
	}
	return RequireAdmin(auth)
}

// adminUnavailable denies every request with 503. It stands in for the admin
// guard when no auth service exists so admin routes never serve
// unauthenticated traffic.
func adminUnavailable(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Error("admin route requested but authentication is not configured",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			WriteError(w, ErrorParams{
				Code:    http.StatusServiceUnavailable,
				ErrCode: "auth_unavailable",
				Err:     errors.New("authentication is not configured"),
			})
		})
	}
}

// limitWrapper returns a per-policy rate limit wrapper, or a no-op when no
// limiter is configured.
func limitWrapper(limiter *ratelimit.Limiter) func(ratelimit.Policy) func(http.Handler) http.Handler {
	if limiter == nil {
		return func(ratelimit.Policy) func(http.Handler) http.Handler {
			return func(h http.Handler) http.Handler { return h }
		}
	}
	return func(policy ratelimit.Policy) func(http.Handler) http.Handler {
		return RateLimit(limiter, policy)
	}
}

type publicHandlers struct {
	Awardees      *AwardeeHandlers
	Posts         *PostHandlers
	Announcements *AnnouncementHandlers
	Events        *EventHandlers
}

// registerPublicRoutes wires the unauthenticated read surface. Everything
// here only ever exposes published content.
func registerPublicRoutes(mux *http.ServeMux, h publicHandlers) {
	mux.HandleFunc("GET /api/awardees", h.Awardees.ListPublic)
	mux.HandleFunc("GET /api/awardees/{slug}", h.Awardees.GetBySlug)
	mux.HandleFunc("GET /api/posts", h.Posts.ListPublic)
	mux.HandleFunc("GET /api/posts/{slug}", h.Posts.GetPublicBySlug)
	mux.HandleFunc("GET /api/announcements", h.Announcements.ListActive)
	mux.HandleFunc("GET /api/events", h.Events.ListUpcoming)
	mux.HandleFunc("GET /api/events/{slug}", h.Events.GetBySlug)
}

type intakeHandlers struct {
	Newsletter *NewsletterHandlers
	Inquiries  *InquiryHandlers
	Push       *PushHandlers
}

// registerIntakeRoutes wires the unauthenticated write surface, each bucket
// throttled under its own policy.
func registerIntakeRoutes(
	mux *http.ServeMux,
	h intakeHandlers,
	limited func(ratelimit.Policy) func(http.Handler) http.Handler,
	policies IntakePolicies,
) {
	newsletter := limited(policies.Newsletter)
	contact := limited(policies.Contact)
	push := limited(policies.Push)

	mux.Handle("POST /api/newsletter/subscribe", newsletter(http.HandlerFunc(h.Newsletter.Subscribe)))
	mux.Handle("POST /api/newsletter/unsubscribe", newsletter(http.HandlerFunc(h.Newsletter.Unsubscribe)))
	mux.Handle("POST /api/inquiries", contact(http.HandlerFunc(h.Inquiries.Create)))
	mux.Handle("POST /api/push/subscriptions", push(http.HandlerFunc(h.Push.Register)))
	mux.Handle("POST /api/push/subscriptions/unregister", push(http.HandlerFunc(h.Push.Unregister)))
}

type adminHandlers struct {
	Awardees      *AwardeeHandlers
	Posts         *PostHandlers
	Announcements *AnnouncementHandlers
	Events        *EventHandlers
	Newsletter    *NewsletterHandlers
	Inquiries     *InquiryHandlers
	Push          *PushHandlers
	Users         *UserHandlers
}

// registerAdminRoutes wires the back office. Every route runs behind the
// admin guard.
func registerAdminRoutes(mux *http.ServeMux, h adminHandlers, adminOnly func(http.Handler) http.Handler) {
	registerCRUD(mux, crudRoutes{
		Base:       "/api/admin/awardees",
		Create:     h.Awardees.Create,
		List:       h.Awardees.List,
		GetByID:    h.Awardees.GetByID,
		Update:     h.Awardees.Update,
		Delete:     h.Awardees.Delete,
		Middleware: adminOnly,
	})
	registerCRUD(mux, crudRoutes{
		Base:       "/api/admin/posts",
		Create:     h.Posts.Create,
		List:       h.Posts.List,
		GetByID:    h.Posts.GetByID,
		Update:     h.Posts.Update,
		Delete:     h.Posts.Delete,
		Middleware: adminOnly,
	})
	registerCRUD(mux, crudRoutes{
		Base:       "/api/admin/announcements",
		Create:     h.Announcements.Create,
		List:       h.Announcements.ListAll,
		GetByID:    h.Announcements.GetByID,
		Update:     h.Announcements.Update,
		Delete:     h.Announcements.Delete,
		Middleware: adminOnly,
	})
	registerCRUD(mux, crudRoutes{
		Base:       "/api/admin/events",
		Create:     h.Events.Create,
		List:       h.Events.List,
		GetByID:    h.Events.GetByID,
		Update:     h.Events.Update,
		Delete:     h.Events.Delete,
		Middleware: adminOnly,
	})

	mux.Handle("GET /api/admin/newsletter/subscribers", adminOnly(http.HandlerFunc(h.Newsletter.List)))
	mux.Handle("GET /api/admin/inquiries", adminOnly(http.HandlerFunc(h.Inquiries.List)))
	mux.Handle("GET /api/admin/inquiries/{id}", adminOnly(http.HandlerFunc(h.Inquiries.GetByID)))
	mux.Handle("POST /api/admin/inquiries/{id}/close", adminOnly(http.HandlerFunc(h.Inquiries.Close)))
	mux.Handle("POST /api/admin/push/broadcast", adminOnly(http.HandlerFunc(h.Push.Broadcast)))
	mux.Handle("GET /api/admin/users", adminOnly(http.HandlerFunc(h.Users.List)))
	mux.Handle("GET /api/admin/users/{id}", adminOnly(http.HandlerFunc(h.Users.GetByID)))
	mux.Handle("PUT /api/admin/users/{id}/role", adminOnly(http.HandlerFunc(h.Users.UpdateRole)))
}

// registerCRUD registers standard CRUD routes for a resource base path, applying mw if non-nil.
type crudRoutes struct {
	Base       string
	Create     http.HandlerFunc
	List       http.HandlerFunc
	GetByID    http.HandlerFunc
	Update     http.HandlerFunc
	Delete     http.HandlerFunc
	Middleware func(http.Handler) http.Handler
}

func registerCRUD(mux *http.ServeMux, cfg crudRoutes) {
	if cfg.Base == "" {
		panic("registerCRUD: Base must not be empty") //nolint:forbidigo // Fail fast during server setup.
	}
	if cfg.Create == nil ||
		cfg.List == nil ||
		cfg.GetByID == nil ||
		cfg.Update == nil ||
		cfg.Delete == nil {
		panic("registerCRUD: nil handler for base " + cfg.Base) //nolint:forbidigo // Fail fast during server setup.
	}

	wrap := func(h http.HandlerFunc) http.Handler {
		if cfg.Middleware != nil {
			return cfg.Middleware(h)
		}
		return h
	}
	mux.Handle("POST "+cfg.Base, wrap(cfg.Create))
	mux.Handle("GET "+cfg.Base, wrap(cfg.List))
	mux.Handle("GET "+cfg.Base+"/{id}", wrap(cfg.GetByID))
	mux.Handle("PUT "+cfg.Base+"/{id}", wrap(cfg.Update))
	mux.Handle("DELETE "+cfg.Base+"/{id}", wrap(cfg.Delete))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /auth/login", h.Login)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}
