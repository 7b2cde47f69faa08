// FilePath: api/resources/api.resource.tariff.go
package resources

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"

	"github.com/Kraikuppp/webmeter-hub/internal/errors"
	"github.com/Kraikuppp/webmeter-hub/internal/hubservice"
	"github.com/Kraikuppp/webmeter-hub/internal/models"
)

// TariffHandlers encapsulates the holiday calendar and FT rate handlers
type TariffHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Create a holiday
// @Tags tariff
// @Accept json
// @Produce json
// @Param holiday body models.Holiday true "Holiday details"
// @Success 201 {object} models.Holiday
// @Failure 400 {object} errors.APIError
// @Router /holidays [post]
// @Security BearerAuth
func (h *TariffHandlers) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var holiday models.Holiday
	if err := json.NewDecoder(r.Body).Decode(&holiday); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.CreateHoliday(r.Context(), &holiday); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusCreated, holiday)
}

// @Summary List holidays of a year
// @Tags tariff
// @Produce json
// @Param year query int false "Calendar year (defaults to the current year)"
// @Success 200 {array} models.Holiday
// @Router /holidays [get]
func (h *TariffHandlers) ListHolidays(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	if year == 0 {
		year = time.Now().Year()
	}

	holidays, err := h.hubservice.ListHolidays(r.Context(), year)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, holidays)
}

// @Summary Update a holiday
// @Tags tariff
// @Accept json
// @Produce json
// @Param id path string true "Holiday ID"
// @Success 200 {object} models.Holiday
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /holidays/{id} [put]
// @Security BearerAuth
func (h *TariffHandlers) UpdateHoliday(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var holiday models.Holiday
	if err := json.NewDecoder(r.Body).Decode(&holiday); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	holiday.ID = id
	if err := h.hubservice.UpdateHoliday(r.Context(), &holiday); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, holiday)
}

// @Summary Delete a holiday
// @Tags tariff
// @Param id path string true "Holiday ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /holidays/{id} [delete]
// @Security BearerAuth
func (h *TariffHandlers) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteHoliday(r.Context(), id); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Create an FT rate
// @Tags tariff
// @Accept json
// @Produce json
// @Param rate body models.RateConfig true "FT rate details"
// @Success 201 {object} models.RateConfig
// @Failure 400 {object} errors.APIError
// @Router /ft-rates [post]
// @Security BearerAuth
func (h *TariffHandlers) CreateRate(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var rate models.RateConfig
	if err := json.NewDecoder(r.Body).Decode(&rate); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.CreateRate(r.Context(), &rate); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusCreated, rate)
}

// @Summary List FT rates
// @Tags tariff
// @Produce json
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.RateConfig
// @Router /ft-rates [get]
func (h *TariffHandlers) ListRates(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	offset, limit := getPaginationParams(r)

	rates, err := h.hubservice.ListRates(r.Context(), offset, limit)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, rates)
}

// @Summary Update an FT rate
// @Tags tariff
// @Accept json
// @Produce json
// @Param id path string true "Rate ID"
// @Success 200 {object} models.RateConfig
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /ft-rates/{id} [put]
// @Security BearerAuth
func (h *TariffHandlers) UpdateRate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var rate models.RateConfig
	if err := json.NewDecoder(r.Body).Decode(&rate); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	rate.ID = id
	if err := h.hubservice.UpdateRate(r.Context(), &rate); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, rate)
}

// @Summary Delete an FT rate
// @Tags tariff
// @Param id path string true "Rate ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /ft-rates/{id} [delete]
// @Security BearerAuth
func (h *TariffHandlers) DeleteRate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteRate(r.Context(), id); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
