// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	nuts "github.com/vaudience/go-nuts"

	"github.com/Kraikuppp/webmeter-hub/api"
	"github.com/Kraikuppp/webmeter-hub/api/middleware"
	"github.com/Kraikuppp/webmeter-hub/internal/cache"
	"github.com/Kraikuppp/webmeter-hub/internal/config"
	"github.com/Kraikuppp/webmeter-hub/internal/database"
	"github.com/Kraikuppp/webmeter-hub/internal/hubservice"
	"github.com/Kraikuppp/webmeter-hub/internal/meterapi"
	"github.com/Kraikuppp/webmeter-hub/internal/models"
	"github.com/Kraikuppp/webmeter-hub/internal/repository/postgres"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	hubservice *hubservice.HubService
	appDB      database.DB
	dataCache  *cache.Cache
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{config: cfg}
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Initialize services
	s.hubservice = s.initializeHubService()
	if err := s.hubservice.Validate(); err != nil {
		return err
	}

	// Set up audit event handlers
	s.setupAuditHandlers()

	// Setup router and middleware chain
	router := api.NewRouter(s.hubservice, middleware.JWTConfig{Secret: s.config.Auth.JWTSecret})
	router.Resources().SetHealthCheck(s.handleHealth())

	cors := handlers.CORS(
		handlers.AllowedOrigins(s.config.Server.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)
	handler := handlers.RecoveryHandler()(cors(handlers.CombinedLoggingHandler(os.Stdout, router)))

	s.srv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:      handler,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	// Start server
	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	// Release view sessions and their timers before closing connections.
	s.hubservice.Close()
	if s.dataCache != nil {
		s.dataCache.Close()
	}
	if s.appDB != nil {
		s.appDB.Close()
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

// handleHealth returns a simple health check handler
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","version":"` + nuts.GetVersion() + `"}`))
	}
}

func (s *Server) setupAuditHandlers() {
	// Report deliveries are worth a dedicated log line for operators.
	s.hubservice.OnAudit("report.sent", func(ev *models.AuditEvent) {
		nuts.L.Infof("[Audit] Report sent by %s: %s", ev.Actor, ev.Detail)
	})
	s.hubservice.OnAudit("report.exported", func(ev *models.AuditEvent) {
		nuts.L.Infof("[Audit] Report exported by %s: %s", ev.Actor, ev.Detail)
	})
}

// initializeHubService creates and configures the hub service
func (s *Server) initializeHubService() *hubservice.HubService {
	// Initialize database connection
	s.appDB = initAppDB(s.config.Database.AppDB)

	// Initialize repositories
	holidays, err := postgres.NewHolidayRepository(s.appDB)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to initialize holiday repository: %v", err)
	}
	rates, err := postgres.NewRateConfigRepository(s.appDB)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to initialize FT rate repository: %v", err)
	}
	events, err := postgres.NewEventRepository(s.appDB)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to initialize event repository: %v", err)
	}

	// Initialize the readings cache
	s.dataCache = cache.New(s.config.Redis,
		s.config.Dashboard.ReadingsCacheTTL, s.config.Dashboard.SnapshotCacheTTL)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.dataCache.Ping(ctx); err != nil {
		nuts.L.Fatalf("[Server] Failed to ping redis: %v", err)
	}

	// Initialize the upstream meter API client
	meters := meterapi.New(s.config.MeterAPI)

	// Create and return hub service
	return hubservice.New(meters, s.dataCache, holidays, rates, events, s.config.Dashboard)
}

func initAppDB(cfg config.PostgresConfig) database.DB {
	wrappedDB, err := database.NewPostgresDB(cfg)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to connect to AppDB: %v", err)
	}
	db := wrappedDB.GetDB()
	if err := db.Ping(); err != nil {
		nuts.L.Fatalf("[Server] Failed to ping AppDB: %v", err)
	}
	return wrappedDB
}
