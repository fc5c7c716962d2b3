package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/thesyncbridge/apiserver/config"
	"github.com/thesyncbridge/apiserver/internal/events"
	"github.com/thesyncbridge/apiserver/internal/handlers"
	"github.com/thesyncbridge/apiserver/internal/logging"
	"github.com/thesyncbridge/apiserver/internal/mission"
	"github.com/thesyncbridge/apiserver/internal/mq"
	"github.com/thesyncbridge/apiserver/internal/services"
	"github.com/thesyncbridge/apiserver/internal/storage"
	"go.uber.org/zap"
)

// Server wraps the HTTP server, its router and the backends it owns.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	logger     *zap.Logger

	repos     *repositories
	objects   *storage.Storage
	broker    *mq.MQ
	publisher *events.Publisher
	stop      context.CancelFunc
}

// New connects every configured backend and builds the router.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clock, err := mission.NewClock(cfg.Mission.Start, cfg.Mission.TotalDays)
	if err != nil {
		return nil, err
	}

	s := &Server{logger: logger}
	if err := s.open(ctx, cfg); err != nil {
		s.closeBackends()
		return nil, err
	}

	guardians := services.NewGuardianService(s.repos.guardians, s.publisher, services.GuardianOptions{
		ScrollPrefix:     cfg.Mission.ScrollPrefix,
		OpenRegistration: cfg.Auth.RegistrationMode == config.RegistrationOpen,
		Certificates:     services.NewCertificateIssuer(cfg.Auth.CertificateSecret, cfg.Mission.TotalDays),
	})
	merchandise := services.NewMerchandiseService(s.repos.products)

	limiter := handlers.NewRateLimiter(cfg.Auth.LoginRatePerMinute)
	background, stop := context.WithCancel(context.WithoutCancel(ctx))
	s.stop = stop
	go limiter.Run(background)

	api := handlers.API{
		Mission:       services.NewMissionService(clock, cfg.Mission.Location, time.Now),
		Guardians:     guardians,
		Transmissions: services.NewTransmissionService(s.repos.transmissions, s.publisher),
		Comments:      services.NewCommentService(s.repos.comments, s.repos.guardians, s.repos.transmissions, s.publisher),
		Merchandise:   merchandise,
		Orders:        services.NewOrderService(s.repos.orders, s.repos.guardians, merchandise, s.publisher),
		Uploads:       services.NewUploadService(s.objects),
		AdminPassword: cfg.Auth.AdminPassword,
		LoginLimiter:  limiter,
	}

	router := chi.NewRouter()
	router.Use(middlewares(cfg, logger)...)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/api", func(r chi.Router) {
		handlers.APIRouter(r, api)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	s.router = router
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// middlewares returns the stack shared by every route. The request logger
// sits outside Recoverer so a recovered panic is logged with its 500.
func middlewares(cfg config.Config, logger *zap.Logger) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{middleware.RequestID}
	if cfg.TrustProxyHeaders {
		stack = append(stack, middleware.RealIP)
	}
	return append(stack,
		logging.RequestLogger(logger),
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		middleware.Timeout(60*time.Second),
	)
}

func (s *Server) open(ctx context.Context, cfg config.Config) error {
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	s.repos = repos

	objects, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	s.objects = objects

	broker, err := mq.Open(ctx, cfg.MQ)
	if err != nil {
		return fmt.Errorf("open %s broker: %w", cfg.MQ.Backend, err)
	}
	s.broker = broker

	var sender events.Sender
	if broker != nil {
		sender = broker
	}
	s.publisher = events.NewPublisher(sender, cfg.MQ.EventsChannel, s.logger.Named("events"))

	s.logger.Info("backends ready",
		zap.String("store", cfg.Store),
		zap.String("storage", cfg.Storage.Backend),
		zap.String("mq", cfg.MQ.Backend))
	return nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, drains in-flight ones and pending
// events, then closes the backends.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if s.stop != nil {
		s.stop()
	}
	s.publisher.Wait()
	s.closeBackends()
	return err
}

func (s *Server) closeBackends() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.broker != nil {
		if err := s.broker.Close(); err != nil {
			s.logger.Warn("failed to close broker", zap.Error(err))
		}
	}
	if s.objects != nil {
		if err := s.objects.Close(); err != nil {
			s.logger.Warn("failed to close object storage", zap.Error(err))
		}
	}
	if s.repos != nil {
		if err := s.repos.close(ctx); err != nil {
			s.logger.Warn("failed to close store", zap.Error(err))
		}
	}
}
