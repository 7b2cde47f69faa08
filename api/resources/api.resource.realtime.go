// FilePath: api/resources/api.resource.realtime.go
package resources

import (
	"net/http"

	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"

	"github.com/Kraikuppp/webmeter-hub/internal/hubservice"
)

// RealtimeHandlers encapsulates the realtime snapshot HTTP handlers
type RealtimeHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Get a realtime snapshot
// @Description Latest reading of one meter, projected with unit suffixes
// @Tags realtime
// @Produce json
// @Param meterId path string true "Meter ID"
// @Success 200 {object} hubservice.RealtimeSnapshot
// @Failure 404 {object} errors.APIError
// @Failure 502 {object} errors.APIError
// @Router /realtime/{meterId} [get]
func (h *RealtimeHandlers) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	meterID := mux.Vars(r)["meterId"]
	requestID := nuts.NID("req", 12)

	snap, err := h.hubservice.GetRealtime(r.Context(), meterID)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, snap)
}

// @Summary Start polling
// @Description Start the periodic refresh of a loaded view session
// @Tags realtime
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} errors.APIError
// @Router /sessions/{id}/polling [post]
// @Security BearerAuth
func (h *RealtimeHandlers) StartPolling(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	started, err := h.hubservice.StartPolling(id)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"polling": started})
}

// @Summary Stop polling
// @Tags realtime
// @Param id path string true "Session ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /sessions/{id}/polling [delete]
// @Security BearerAuth
func (h *RealtimeHandlers) StopPolling(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.StopPolling(id); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
