// FilePath: api/resources/resources.go
package resources

import (
	"encoding/json"
	"net/http"
	"strconv"

	nuts "github.com/vaudience/go-nuts"

	"github.com/Kraikuppp/webmeter-hub/internal/errors"
	"github.com/Kraikuppp/webmeter-hub/internal/hubservice"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	TableData   *TableDataHandlers
	Realtime    *RealtimeHandlers
	Tariff      *TariffHandlers
	Events      *EventHandlers
	HealthCheck func(w http.ResponseWriter, r *http.Request)
}

// NewResources creates a new Resources instance
func NewResources(svc *hubservice.HubService) *Resources {
	return &Resources{
		TableData: &TableDataHandlers{hubservice: svc},
		Realtime:  &RealtimeHandlers{hubservice: svc},
		Tariff:    &TariffHandlers{hubservice: svc},
		Events:    &EventHandlers{hubservice: svc},
	}
}

// SetHealthCheck sets the health check handler
func (r *Resources) SetHealthCheck(h func(w http.ResponseWriter, r *http.Request)) {
	r.HealthCheck = h
}

// Helper functions

func getPaginationParams(r *http.Request) (offset, limit int) {
	query := r.URL.Query()
	offset, _ = strconv.Atoi(query.Get("offset"))
	limit, _ = strconv.Atoi(query.Get("limit"))

	if limit <= 0 || limit > 100 {
		limit = 50 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	return offset, limit
}

// respondWithServiceError passes a service-layer APIError through with
// its own status code, falling back to 500 for anything else.
func respondWithServiceError(w http.ResponseWriter, err error, requestID string) {
	if apiErr, ok := err.(*errors.APIError); ok {
		respondWithError(w, apiErr.WithRequestID(requestID))
		return
	}
	respondWithError(w, errors.NewInternalError("unexpected error", err).WithRequestID(requestID))
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
