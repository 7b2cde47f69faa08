// FilePath: api/resources/api.resource.tabledata.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"

	"github.com/Kraikuppp/webmeter-hub/internal/errors"
	"github.com/Kraikuppp/webmeter-hub/internal/hubservice"
	"github.com/Kraikuppp/webmeter-hub/internal/models"
	"github.com/Kraikuppp/webmeter-hub/internal/report"
)

// TableDataHandlers encapsulates the table-data view HTTP handlers
type TableDataHandlers struct {
	hubservice *hubservice.HubService
}

// identityRequest is the optional identity block of export/send bodies.
type identityRequest struct {
	Names    []string         `json:"names,omitempty"`
	Tree     *models.TreeNode `json:"tree,omitempty"`
	NodeID   string           `json:"node_id,omitempty"`
	Fallback string           `json:"fallback,omitempty"`
}

func (i identityRequest) input() report.IdentityInput {
	return report.IdentityInput{
		ExplicitNames: i.Names,
		Tree:          i.Tree,
		NodeID:        i.NodeID,
		Fallback:      i.Fallback,
	}
}

type exportRequest struct {
	Format   models.ExportFormat `json:"format"`
	Scope    models.ExportScope  `json:"scope,omitempty"`
	Identity identityRequest     `json:"identity,omitempty"`
}

type sendRequest struct {
	Format   models.ExportFormat   `json:"format"`
	Target   models.DeliveryTarget `json:"target"`
	Identity identityRequest       `json:"identity,omitempty"`
}

// @Summary Create a view session
// @Description Create a new dashboard view session
// @Tags sessions
// @Produce json
// @Success 201 {object} view.ViewState
// @Router /sessions [post]
// @Security BearerAuth
func (h *TableDataHandlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess := h.hubservice.CreateSession(r.Context())
	respondWithJSON(w, http.StatusCreated, sess.State())
}

// @Summary Get session state
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} view.ViewState
// @Failure 404 {object} errors.APIError
// @Router /sessions/{id} [get]
func (h *TableDataHandlers) GetSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	sess, err := h.hubservice.GetSession(id)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, sess.State())
}

// @Summary Delete a view session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /sessions/{id} [delete]
// @Security BearerAuth
func (h *TableDataHandlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteSession(r.Context(), id); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Load table data
// @Description Fetch, align and apply readings for a date/time range.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param query body models.ReadingQuery true "Load query"
// @Param debounce query bool false "Coalesce rapid filter changes"
// @Success 200 {object} view.ViewState
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /sessions/{id}/load [post]
// @Security BearerAuth
func (h *TableDataHandlers) Load(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var q models.ReadingQuery
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if r.URL.Query().Get("debounce") == "true" {
		if err := h.hubservice.ScheduleLoad(id, q); err != nil {
			respondWithServiceError(w, err, requestID)
			return
		}
		w.WriteHeader(http.StatusAccepted)
		return
	}

	state, err := h.hubservice.LoadTableData(r.Context(), id, q)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

// @Summary Get the current page of display rows
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} hubservice.TableGrid
// @Failure 404 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Failure 422 {object} errors.APIError
// @Router /sessions/{id}/rows [get]
func (h *TableDataHandlers) GetRows(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	grid, err := h.hubservice.GetTableRows(id)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, grid)
}

// @Summary Set the current page
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} view.ViewState
// @Failure 400 {object} errors.APIError
// @Router /sessions/{id}/page [put]
// @Security BearerAuth
func (h *TableDataHandlers) SetPage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var body struct {
		Page int `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	state, err := h.hubservice.SetPage(id, body.Page)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

// @Summary Set the page size
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} view.ViewState
// @Failure 400 {object} errors.APIError
// @Router /sessions/{id}/pagesize [put]
// @Security BearerAuth
func (h *TableDataHandlers) SetPageSize(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var body struct {
		PageSize int `json:"page_size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	state, err := h.hubservice.SetPageSize(id, body.PageSize)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

// @Summary Set the table orientation
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} view.ViewState
// @Failure 400 {object} errors.APIError
// @Router /sessions/{id}/orientation [put]
// @Security BearerAuth
func (h *TableDataHandlers) SetOrientation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var body struct {
		Orientation models.Orientation `json:"orientation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	state, err := h.hubservice.SetOrientation(id, body.Orientation)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

// @Summary Export the table
// @Description Encode the loaded table as csv, text, image or pdf.
// @Tags sessions
// @Accept json
// @Produce octet-stream
// @Param id path string true "Session ID"
// @Param request body exportRequest true "Export parameters"
// @Success 200 {file} binary
// @Failure 400 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Failure 422 {object} errors.APIError
// @Router /sessions/{id}/export [post]
// @Security BearerAuth
func (h *TableDataHandlers) Export(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var body exportRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	scope := body.Scope
	if scope == "" {
		scope = models.ExportScopePage
	}

	result, err := h.hubservice.ExportTableData(r.Context(), id, body.Format, scope, body.Identity.input())
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

// @Summary Send the report
// @Description Deliver the full filtered report via email or LINE.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body sendRequest true "Delivery parameters"
// @Success 202 "Accepted"
// @Failure 400 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Failure 413 {object} errors.APIError
// @Failure 502 {object} errors.APIError
// @Router /sessions/{id}/send [post]
// @Security BearerAuth
func (h *TableDataHandlers) Send(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var body sendRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.SendReport(r.Context(), id, body.Target, body.Format, body.Identity.input()); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// @Summary List delivery groups
// @Description Recipient directory for the report delivery picker.
// @Tags sessions
// @Produce json
// @Success 200 {object} models.Groups
// @Failure 502 {object} errors.APIError
// @Router /report-groups [get]
func (h *TableDataHandlers) GetGroups(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	groups, err := h.hubservice.GetGroups(r.Context())
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, groups)
}
