package handlers

import (
	"errors"
	"net/http"

	"github.com/cashbook/backend/internal/models"
	"github.com/cashbook/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type ReportHandler struct {
	reports *services.ReportService
	logger  zerolog.Logger
}

func NewReportHandler(reports *services.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, logger: logger}
}

func (h *ReportHandler) Routes(r chi.Router) {
	r.Get("/books/{bookID}/report", h.Report)
}

// Report builds the statement dataset of a book
// @Summary Book statement
// @Description Statement rows (newest first) with running balances and totals; start and end must be given together
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param bookID path int true "Book ID"
// @Param start query string false "First day (YYYY-MM-DD)"
// @Param end query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} models.ReportData
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /books/{bookID}/report [get]
func (h *ReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	bookID, ok := pathID(w, r, "bookID")
	if !ok {
		return
	}

	rng, err := parseRange(r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	data, err := h.reports.BuildReport(r.Context(), owner, bookID, rng)
	if err != nil {
		fail(h.logger, w, r, "report", err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

var errPartialRange = errors.New("start and end must be given together")

func parseRange(start, end string) (*models.DateRange, error) {
	if start == "" && end == "" {
		return nil, nil
	}
	if start == "" || end == "" {
		return nil, errPartialRange
	}
	s, err := models.ParseDate(start)
	if err != nil {
		return nil, err
	}
	e, err := models.ParseDate(end)
	if err != nil {
		return nil, err
	}
	return &models.DateRange{Start: s, End: e}, nil
}
