// FilePath: api/api.router.go
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Kraikuppp/webmeter-hub/api/middleware"
	"github.com/Kraikuppp/webmeter-hub/api/resources"
	"github.com/Kraikuppp/webmeter-hub/internal/hubservice"
)

type Router struct {
	router    *mux.Router
	auth      *middleware.JWTMiddleware
	resources *resources.Resources
}

func NewRouter(svc *hubservice.HubService, jwtConfig middleware.JWTConfig) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		auth:      middleware.NewJWTMiddleware(jwtConfig),
		resources: resources.NewResources(svc),
	}

	r.setupRoutes()
	return r
}

// Resources exposes the handler set so the server can attach the
// health check.
func (r *Router) Resources() *resources.Resources {
	return r.resources
}

func (r *Router) setupRoutes() {
	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if r.resources.HealthCheck != nil {
			r.resources.HealthCheck(w, req)
		}
	}).Methods(http.MethodGet)

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.auth.Authenticate)

	// View sessions
	sessions := protected.PathPrefix("/sessions").Subrouter()
	sessions.HandleFunc("", r.resources.TableData.CreateSession).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}", r.resources.TableData.GetSession).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}", r.resources.TableData.DeleteSession).Methods(http.MethodDelete)
	sessions.HandleFunc("/{id}/load", r.resources.TableData.Load).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/rows", r.resources.TableData.GetRows).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}/page", r.resources.TableData.SetPage).Methods(http.MethodPut)
	sessions.HandleFunc("/{id}/pagesize", r.resources.TableData.SetPageSize).Methods(http.MethodPut)
	sessions.HandleFunc("/{id}/orientation", r.resources.TableData.SetOrientation).Methods(http.MethodPut)
	sessions.HandleFunc("/{id}/export", r.resources.TableData.Export).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/send", r.resources.TableData.Send).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/polling", r.resources.Realtime.StartPolling).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/polling", r.resources.Realtime.StopPolling).Methods(http.MethodDelete)

	// Realtime snapshots
	protected.HandleFunc("/realtime/{meterId}", r.resources.Realtime.GetSnapshot).Methods(http.MethodGet)

	// Report delivery directory
	protected.HandleFunc("/report-groups", r.resources.TableData.GetGroups).Methods(http.MethodGet)

	// Tariff settings; mutations are restricted to administrators.
	admin := r.auth.RequireRoles([]string{"admin"})

	holidays := protected.PathPrefix("/holidays").Subrouter()
	holidays.HandleFunc("", r.resources.Tariff.ListHolidays).Methods(http.MethodGet)
	holidays.Handle("", admin(http.HandlerFunc(r.resources.Tariff.CreateHoliday))).Methods(http.MethodPost)
	holidays.Handle("/{id}", admin(http.HandlerFunc(r.resources.Tariff.UpdateHoliday))).Methods(http.MethodPut)
	holidays.Handle("/{id}", admin(http.HandlerFunc(r.resources.Tariff.DeleteHoliday))).Methods(http.MethodDelete)

	rates := protected.PathPrefix("/ft-rates").Subrouter()
	rates.HandleFunc("", r.resources.Tariff.ListRates).Methods(http.MethodGet)
	rates.Handle("", admin(http.HandlerFunc(r.resources.Tariff.CreateRate))).Methods(http.MethodPost)
	rates.Handle("/{id}", admin(http.HandlerFunc(r.resources.Tariff.UpdateRate))).Methods(http.MethodPut)
	rates.Handle("/{id}", admin(http.HandlerFunc(r.resources.Tariff.DeleteRate))).Methods(http.MethodDelete)

	// System events browser
	protected.HandleFunc("/events", r.resources.Events.ListEvents).Methods(http.MethodGet)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
