/*
handlers.go - HTTP handler implementations

PURPOSE:
  Implements the read-only HTTP endpoints over the forecast engine. Every
  handler works from the immutable reference-data snapshot loaded at
  startup; there are no write endpoints, a new snapshot means a restart.

ERROR MAPPING:
  400  malformed path or query parameters
  404  unknown worker id
  422  reference data cannot support the forecast (missing calendar,
       saldi, parameters, contract multiplicity, cross-year windows)
  500  anything else

SEE ALSO:
  - dto.go: Response types
  - server.go: Route wiring
*/
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/forecast-engine/company"
	"github.com/warp/forecast-engine/employee"
	"github.com/warp/forecast-engine/forecast"
)

// Handler serves the forecast endpoints.
type Handler struct {
	Snapshot   *forecast.Snapshot
	Aggregator *company.Aggregator
	Employees  *employee.Calculator
	Reference  forecast.RefMonth
	Logger     *slog.Logger
}

func NewHandler(snap *forecast.Snapshot, agg *company.Aggregator, employees *employee.Calculator, reference forecast.RefMonth, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Snapshot:   snap,
		Aggregator: agg,
		Employees:  employees,
		Reference:  reference,
		Logger:     logger,
	}
}

// =============================================================================
// WORKER ENDPOINTS
// =============================================================================

// ListWorkers returns all workers in the snapshot.
func (h *Handler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	internal := h.Snapshot.WorkersByCategory(forecast.CategoryInternal)
	external := h.Snapshot.WorkersByCategory(forecast.CategoryFreelance)

	dtos := make([]WorkerDTO, 0, len(internal)+len(external))
	for _, worker := range internal {
		dtos = append(dtos, toWorkerDTO(worker))
	}
	for _, worker := range external {
		dtos = append(dtos, toWorkerDTO(worker))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// FORECAST ENDPOINTS
// =============================================================================

// GetCompanyYearForecast returns the month-by-month company forecast from
// the configured reference month through December.
func (h *Handler) GetCompanyYearForecast(w http.ResponseWriter, r *http.Request) {
	year, err := h.Aggregator.CompanyYearForecast()
	if err != nil {
		h.writeForecastError(w, "company year forecast failed", err)
		return
	}

	dto := YearForecastDTO{
		ReferenceYear:  h.Reference.Year,
		ReferenceMonth: int(h.Reference.Month),
		Months:         make([]MonthRowDTO, len(year.Months)),
		Total:          toMonthRowDTO(year.Total),
	}
	for i, m := range year.Months {
		dto.Months[i] = toMonthRowDTO(m)
	}
	writeJSON(w, http.StatusOK, dto)
}

// GetEmployeeMonthForecast returns the itemized employee cost table for
// one month.
func (h *Handler) GetEmployeeMonthForecast(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.refMonthParam(w, r)
	if !ok {
		return
	}

	detail, err := h.Aggregator.EmployeeMonthForecast(ref)
	if err != nil {
		h.writeForecastError(w, "employee month forecast failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toMonthDetailDTO(detail))
}

// GetEmployeeMonthSummary returns the condensed employee cost/revenue
// summary for one month.
func (h *Handler) GetEmployeeMonthSummary(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.refMonthParam(w, r)
	if !ok {
		return
	}

	rows, err := h.Aggregator.EmployeeMonthlySummary(ref)
	if err != nil {
		h.writeForecastError(w, "employee month summary failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryRowDTOs(rows))
}

// GetFreelanceMonthSummary returns the freelance cost/revenue summary for
// one month.
func (h *Handler) GetFreelanceMonthSummary(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.refMonthParam(w, r)
	if !ok {
		return
	}

	rows, err := h.Aggregator.FreelanceMonthlySummary(ref)
	if err != nil {
		h.writeForecastError(w, "freelance month summary failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryRowDTOs(rows))
}

// =============================================================================
// SIMULATION ENDPOINTS
// =============================================================================

// GetEmployeeYearlySimulation runs the yearly cost/income simulation for
// one employee. By default it projects from the configured yearly
// averages; ?calendar=real switches to the employee's real HR calendar.
func (h *Handler) GetEmployeeYearlySimulation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid worker id", err)
		return
	}
	worker := forecast.WorkerID(id)
	if _, ok := h.Snapshot.Workers[worker]; !ok {
		writeError(w, http.StatusNotFound, "unknown worker", nil)
		return
	}
	name := h.Snapshot.WorkerName(worker)

	useRealCalendar := r.URL.Query().Get("calendar") == "real"
	overview, revenue, params, err := h.Employees.YearlyCostIncome(worker, useRealCalendar)
	if err != nil {
		h.writeForecastError(w, "yearly simulation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toYearlyOverviewDTO(name, overview, revenue, params))
}

// =============================================================================
// HELPERS
// =============================================================================

// refMonthParam parses {year}/{month} path parameters.
func (h *Handler) refMonthParam(w http.ResponseWriter, r *http.Request) (forecast.RefMonth, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year", err)
		return forecast.RefMonth{}, false
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "invalid month", err)
		return forecast.RefMonth{}, false
	}
	return forecast.RefMonth{Year: year, Month: time.Month(month)}, true
}

func (h *Handler) writeForecastError(w http.ResponseWriter, message string, err error) {
	status := http.StatusInternalServerError
	var contractErr *forecast.ContractError
	if forecast.IsFatal(err) || errors.As(err, &contractErr) {
		status = http.StatusUnprocessableEntity
	}
	h.Logger.Error(message, "error", err)
	writeError(w, status, message, err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
