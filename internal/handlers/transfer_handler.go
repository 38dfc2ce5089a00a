package handlers

import (
	"net/http"

	"github.com/cashbook/backend/internal/models"
	"github.com/cashbook/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type TransferHandler struct {
	transfers *services.TransferService
	limiter   *services.TransferLimiter
	validator *services.ValidationHelper
	logger    zerolog.Logger
}

func NewTransferHandler(transfers *services.TransferService, limiter *services.TransferLimiter, logger zerolog.Logger) *TransferHandler {
	return &TransferHandler{
		transfers: transfers,
		limiter:   limiter,
		validator: services.NewValidationHelper(),
		logger:    logger,
	}
}

func (h *TransferHandler) Routes(r chi.Router) {
	r.Post("/books/{bookID}/transfers", h.Transfer)
}

type transferRequest struct {
	RecipientBID string      `json:"recipient_bid" validate:"required,bid"`
	Amount       amountField `json:"amount" validate:"required"`
	Note         string      `json:"note,omitempty" validate:"max=255"`
}

// Transfer moves funds from one of the caller's books to another book by BID
// @Summary Transfer funds
// @Description Atomically withdraw from the sender book and deposit into the book identified by recipient_bid
// @Tags transfers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bookID path int true "Sender book ID"
// @Param request body transferRequest true "Transfer"
// @Success 201 {object} models.TransferResult
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Failure 422 {object} services.ErrorResponse
// @Failure 429 {object} services.ErrorResponse
// @Router /books/{bookID}/transfers [post]
func (h *TransferHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	bookID, ok := pathID(w, r, "bookID")
	if !ok {
		return
	}

	var req transferRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	if err := h.limiter.Allow(r.Context(), owner); err != nil {
		fail(h.logger, w, r, "transfer", err)
		return
	}

	result, err := h.transfers.Transfer(r.Context(), models.TransferRequest{
		Owner:        owner,
		SenderBookID: bookID,
		RecipientBID: req.RecipientBID,
		Amount:       string(req.Amount),
		Note:         req.Note,
	})
	if err != nil {
		fail(h.logger, w, r, "transfer", err)
		return
	}
	h.limiter.Record(r.Context(), owner)
	writeJSON(w, http.StatusCreated, result)
}
