package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/photoshare/apiserver/config"
	"github.com/photoshare/apiserver/internal/auth"
	"github.com/photoshare/apiserver/internal/db"
	"github.com/photoshare/apiserver/internal/handlers"
	"github.com/photoshare/apiserver/internal/logging"
	"github.com/photoshare/apiserver/internal/mq"
	"github.com/photoshare/apiserver/internal/services"
	"github.com/photoshare/apiserver/internal/store"
	"github.com/sirupsen/logrus"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	mq         *mq.MQ
	log        *logrus.Logger
}

type repositories struct {
	users    services.UserRepository
	photos   services.PhotoRepository
	comments services.CommentRepository
}

// New wires storage, messaging and services from cfg and builds the router.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logging.New(cfg.Log)

	srv := &Server{log: log}
	repos, err := srv.openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	broker, err := mq.Open(ctx, cfg.MQ)
	if err != nil {
		srv.closeResources()
		return nil, err
	}
	srv.mq = broker

	var publisher services.EventPublisher
	if broker != nil {
		publisher = broker
	}
	events := services.NewEvents(publisher, cfg.MQ.EventsChannel, log)

	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		srv.closeResources()
		return nil, err
	}

	userService := services.NewUserService(repos.users)
	authService, err := services.NewAuthService(userService, hasher, tokens, events, log)
	if err != nil {
		srv.closeResources()
		return nil, err
	}
	photoService := services.NewPhotoService(repos.photos, repos.comments, userService, events, log)
	commentService := services.NewCommentService(repos.comments, repos.photos, userService)

	if cfg.SeedDemo {
		seeder := services.Seeder{Users: repos.users, Photos: repos.photos, Comments: repos.comments, Hasher: hasher}
		if err := seeder.Run(ctx); err != nil {
			srv.closeResources()
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
		log.Info("demo data seeded")
	}

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		logging.NewRequestLogger(log),
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}),
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Healthz)
		r.Route("/auth", func(r chi.Router) {
			handlers.AuthRouter(r, authService, userService, log)
		})
		r.Route("/users", func(r chi.Router) {
			handlers.UserRouter(r, userService, authService.Verifier(), log)
		})
		r.Route("/photos", func(r chi.Router) {
			handlers.PhotoRouter(r, photoService, authService.Verifier(), log)
		})
		r.Route("/comments", func(r chi.Router) {
			handlers.CommentRouter(r, commentService, authService.Verifier(), log)
		})
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 3001
	}

	srv.router = router
	srv.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.WithFields(logrus.Fields{
		"store": cfg.StoreBackend,
		"mq":    cfg.MQ.Backend,
		"port":  port,
	}).Info("server configured")
	return srv, nil
}

func (s *Server) openStore(ctx context.Context, cfg config.Config) (repositories, error) {
	if cfg.StoreBackend != config.StorePostgres {
		return repositories{
			users:    store.NewMemoryUserRepository(),
			photos:   store.NewMemoryPhotoRepository(),
			comments: store.NewMemoryCommentRepository(),
		}, nil
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return repositories{}, fmt.Errorf("open database: %w", err)
	}
	s.db = dbConn
	return repositories{
		users:    store.NewUserRepository(dbConn),
		photos:   store.NewPhotoRepository(dbConn),
		comments: store.NewCommentRepository(dbConn),
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Addr is the address the server listens on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.log.WithField("addr", s.httpServer.Addr).Info("listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then closes the database and broker.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	s.closeResources()
	return err
}

func (s *Server) closeResources() {
	if s.mq != nil {
		if err := s.mq.Close(); err != nil {
			s.log.WithError(err).Warn("close message queue")
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.log.WithError(err).Warn("close database")
		}
	}
}
