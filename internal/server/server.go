package server

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/fungi-kb/apiserver/config"
	"github.com/fungi-kb/apiserver/internal/auth"
	"github.com/fungi-kb/apiserver/internal/db"
	"github.com/fungi-kb/apiserver/internal/handlers"
	"github.com/fungi-kb/apiserver/internal/mq"
	"github.com/fungi-kb/apiserver/internal/ratelimit"
	"github.com/fungi-kb/apiserver/internal/services"
	"github.com/fungi-kb/apiserver/internal/storage"
	"github.com/fungi-kb/apiserver/internal/store"
)

// Server wraps the HTTP server and router together with the connections it
// owns.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	redis      *redis.Client
	events     *mq.MQ
}

// New constructs a Server: it opens the database, wires the optional Redis,
// object storage and message broker backends, builds the service layer, and
// registers all routes under the configured API prefix.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	events, err := newEventBus(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	media, err := newMediaStorage(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		if events != nil {
			_ = events.Close()
		}
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	mushroomRepo := store.NewMushroomRepository(dbConn)

	tokens := auth.NewTokenManager(cfg.Auth)

	authService := services.NewAuthService(userRepo, tokens, events)
	userService := services.NewUserService(userRepo)
	mushroomService := services.NewMushroomService(mushroomRepo, events, media)

	if err := userService.EnsureAdmin(ctx, cfg.Admin); err != nil {
		log.Printf("admin bootstrap failed: %v", err)
	}

	mw := handlers.NewMiddleware(tokens)

	var redisClient *redis.Client
	var apiLimiter, authLimiter *ratelimit.Limiter
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		apiLimiter = ratelimit.New(redisClient, "ratelimit:api", cfg.RateLimit.APILimit, cfg.RateLimit.APIWindow)
		authLimiter = ratelimit.New(redisClient, "ratelimit:auth", cfg.RateLimit.AuthLimit, cfg.RateLimit.AuthWindow)
	}

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
		handlers.CORS(cfg.CORSOrigin),
	)
	router.Get("/healthz", handlers.Healthz)

	prefix := cfg.APIPrefix
	if prefix == "" {
		prefix = "/api"
	}
	router.Route(prefix, func(api chi.Router) {
		if apiLimiter != nil {
			api.Use(apiLimiter.Middleware)
		}
		api.Route("/auth", func(r chi.Router) {
			if authLimiter != nil {
				r.Use(authLimiter.Middleware)
			}
			handlers.AuthRouter(r, authService, mw)
		})
		api.Route("/users", func(r chi.Router) {
			handlers.UserRouter(r, userService, mw)
		})
		api.Route("/mushrooms", func(r chi.Router) {
			handlers.MushroomRouter(r, mushroomService, mw)
		})
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		redis:      redisClient,
		events:     events,
	}, nil
}

// newEventBus builds the change-event publisher for the configured broker.
// An empty MQ_BACKEND disables publishing.
func newEventBus(ctx context.Context, cfg config.Config) (*mq.MQ, error) {
	switch cfg.MQBackend {
	case "":
		return nil, nil
	case "rabbitmq":
		client, err := mq.NewRabbitMQClient(cfg.RabbitMQ)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq: %w", err)
		}
		return mq.New(client), nil
	case "pubsub":
		client, err := mq.NewPubSubClient(ctx, cfg.PubSub)
		if err != nil {
			return nil, fmt.Errorf("pubsub: %w", err)
		}
		return mq.New(client), nil
	default:
		return nil, fmt.Errorf("unknown mq backend %q", cfg.MQBackend)
	}
}

// newMediaStorage builds the object store for species media. An empty
// STORAGE_BACKEND disables uploads.
func newMediaStorage(ctx context.Context, cfg config.Config) (*storage.Storage, error) {
	var backend storage.ObjectStorage
	switch cfg.StorageBackend {
	case "":
		return nil, nil
	case "minio":
		client, err := storage.NewMinioClient(cfg.Minio)
		if err != nil {
			return nil, fmt.Errorf("minio: %w", err)
		}
		backend = client
	case "gcs":
		client, err := storage.NewGCSClient(ctx, cfg.GCS)
		if err != nil {
			return nil, fmt.Errorf("gcs: %w", err)
		}
		backend = client
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	media := storage.NewStorage(backend)
	if err := media.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}
	return media, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.events != nil {
		_ = s.events.Close()
	}
	return s.httpServer.Close()
}
