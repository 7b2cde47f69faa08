// FilePath: api/resources/api.resource.events.go
package resources

import (
	"net/http"

	"github.com/gorilla/schema"
	nuts "github.com/vaudience/go-nuts"

	"github.com/Kraikuppp/webmeter-hub/internal/errors"
	"github.com/Kraikuppp/webmeter-hub/internal/hubservice"
	"github.com/Kraikuppp/webmeter-hub/internal/models"
)

// EventHandlers encapsulates the system-events browser HTTP handlers
type EventHandlers struct {
	hubservice *hubservice.HubService
}

var eventFilterDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// @Summary List audit events
// @Description Filtered, sorted page of dashboard audit events
// @Tags events
// @Produce json
// @Param action query string false "Filter by action"
// @Param resource query string false "Filter by resource"
// @Param actor query string false "Filter by actor"
// @Param from query string false "Lower time bound (RFC3339)"
// @Param to query string false "Upper time bound (RFC3339)"
// @Param sortBy query string false "Sort column"
// @Param sortDir query string false "asc or desc"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} hubservice.EventPage
// @Failure 400 {object} errors.APIError
// @Router /events [get]
func (h *EventHandlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var filters models.EventFilters
	if err := eventFilterDecoder.Decode(&filters, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid filter parameters", err).WithRequestID(requestID))
		return
	}

	page, err := h.hubservice.ListEvents(r.Context(), filters)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}
