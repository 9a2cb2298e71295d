package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/tasktracker/internal/api/auth"
	"github.com/jon4hz/tasktracker/internal/api/handler"
	"github.com/jon4hz/tasktracker/internal/api/models"
	"github.com/jon4hz/tasktracker/internal/cache"
	"github.com/jon4hz/tasktracker/internal/config"
	"github.com/jon4hz/tasktracker/internal/credential"
	"github.com/jon4hz/tasktracker/internal/database"
	"github.com/jon4hz/tasktracker/internal/engine"
	"github.com/jon4hz/tasktracker/internal/static"
)

const sessionName = "tasktracker_session"

type Server struct {
	cfg          *config.Config
	ginEngine    *gin.Engine
	httpServer   *http.Server
	engine       *engine.Engine
	credentials  *credential.Store
	authProvider *auth.Provider
}

// New creates the http server and registers all routes.
func New(cfg *config.Config, db database.DB, e *engine.Engine, credentials *credential.Store, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	identities := cache.New[models.Identity](cfg.Cache, auth.IdentityCachePrefix)
	log.Debug("Using identity cache", "type", identities.GetType())

	ginEngine := gin.New()
	ginEngine.Use(gin.Recovery(), requestID())
	if debug {
		ginEngine.Use(gin.Logger())
	}
	ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))

	s := &Server{
		cfg:          cfg,
		ginEngine:    ginEngine,
		engine:       e,
		credentials:  credentials,
		authProvider: auth.NewProvider(db, identities),
	}
	if err := s.setupRoutes(); err != nil {
		return nil, err
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Listen,
		Handler:           ginEngine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions(sessionName, store))
}

func (s *Server) setupRoutes() error {
	assets, err := static.Assets()
	if err != nil {
		return err
	}
	s.ginEngine.StaticFS("/static", http.FS(assets))

	h := handler.New(s.engine, s.credentials, s.authProvider)
	s.ginEngine.GET("/healthz", h.Healthz)

	// everything below needs the session
	s.setupSession()

	s.ginEngine.GET("/", h.Home)
	s.ginEngine.GET("/register", h.RegisterPage)
	s.ginEngine.POST("/register", h.Register)
	s.ginEngine.GET("/login", h.LoginPage)
	s.ginEngine.POST("/login", h.Login)

	protected := s.ginEngine.Group("/")
	protected.Use(s.authProvider.RequireAuth())

	protected.GET("/logout", auth.WithIdentity(h.Logout))
	protected.GET("/admin", auth.WithIdentity(h.AdminPanel))

	tasks := protected.Group("/tasks")
	tasks.GET("", auth.WithIdentity(h.Tasks))
	tasks.POST("/add", auth.WithIdentity(h.AddTask))
	tasks.GET("/update/:id", auth.WithIdentity(h.UpdateTask))
	tasks.GET("/delete/:id", auth.WithIdentity(h.DeleteTask))

	return nil
}

// Handler returns the http handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

// Run listens on the configured address until Shutdown is called.
func (s *Server) Run() error {
	log.Info("Starting server", "address", s.cfg.Listen)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
