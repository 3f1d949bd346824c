package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/studybuddy/studybuddy-server/internal/api/http/handler"
	"github.com/studybuddy/studybuddy-server/internal/api/http/middleware"
	"github.com/studybuddy/studybuddy-server/internal/logger"
	"github.com/studybuddy/studybuddy-server/internal/model"
	"github.com/studybuddy/studybuddy-server/internal/service"
)

// Router builds the HTTP API for the study assistant.
type Router struct {
	authService    *service.Auth
	resetService   *service.Reset
	sessionService *service.Session
	studyService   *service.Study
	tokenService   *service.TokenService
	workspaces     model.WorkspaceStore
	contextManager model.ContextManager
	allowedOrigins []string
	maxUploadMB    int64
	logger         *logger.Logger
}

// Options carries the services and settings the router wires together.
type Options struct {
	AuthService    *service.Auth
	ResetService   *service.Reset
	SessionService *service.Session
	StudyService   *service.Study
	TokenService   *service.TokenService
	Workspaces     model.WorkspaceStore
	ContextManager model.ContextManager
	AllowedOrigins []string
	MaxUploadMB    int64
	Logger         *logger.Logger
}

// New creates new Router instance.
func New(opts Options) *Router {
	return &Router{
		authService:    opts.AuthService,
		resetService:   opts.ResetService,
		sessionService: opts.SessionService,
		studyService:   opts.StudyService,
		tokenService:   opts.TokenService,
		workspaces:     opts.Workspaces,
		contextManager: opts.ContextManager,
		allowedOrigins: opts.AllowedOrigins,
		maxUploadMB:    opts.MaxUploadMB,
		logger:         opts.Logger,
	}
}

// Register mounts middleware and every route. Routes under /api/auth are
// public except logout; the rest require a bearer token.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(logging.Handler)
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.CORS(r.allowedOrigins))
	mux.Use(chimw.Heartbeat("/health"))

	authHandler := handler.NewAuth(r.authService, r.workspaces, r.contextManager, r.logger)
	resetHandler := handler.NewReset(r.resetService, r.logger)
	chatHandler := handler.NewChat(r.sessionService, r.workspaces, r.contextManager, r.logger)
	documentHandler := handler.NewDocument(r.sessionService, r.workspaces, r.contextManager, r.maxUploadMB, r.logger)
	studyHandler := handler.NewStudy(r.studyService, r.workspaces, r.contextManager, r.logger)
	dashboardHandler := handler.NewDashboard(r.sessionService)

	mux.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/signup", authHandler.Signup)
			auth.Post("/login", authHandler.Login)
			auth.With(authenticate.Handler).Post("/logout", authHandler.Logout)

			auth.Get("/reset", resetHandler.Status)
			auth.Post("/reset/request", resetHandler.Request)
			auth.Post("/reset/verify", resetHandler.Verify)
			auth.Post("/reset/cancel", resetHandler.Cancel)
			auth.Post("/reset/complete", resetHandler.Complete)
		})

		api.Group(func(private chi.Router) {
			private.Use(authenticate.Handler)

			private.Get("/chats", chatHandler.List)
			private.Post("/chats/new", chatHandler.New)
			private.Get("/chats/active", chatHandler.Active)
			private.Post("/chats/load", chatHandler.Load)
			private.Post("/chats/ask", chatHandler.Ask)
			private.Delete("/chats/{name}", chatHandler.Delete)

			private.Post("/documents", documentHandler.Upload)

			private.Post("/study/summary", studyHandler.Summary)
			private.Post("/study/explain", studyHandler.Explain)
			private.Post("/study/quiz", studyHandler.Quiz)
			private.Post("/study/quiz/answer", studyHandler.Answer)

			private.Get("/dashboard", dashboardHandler.Stats)
		})
	})

	return mux
}
