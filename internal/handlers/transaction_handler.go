package handlers

import (
	"net/http"

	"github.com/cashbook/backend/internal/models"
	"github.com/cashbook/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type TransactionHandler struct {
	ledger    *services.LedgerService
	balances  *services.BalanceService
	validator *services.ValidationHelper
	logger    zerolog.Logger
}

func NewTransactionHandler(ledger *services.LedgerService, balances *services.BalanceService, logger zerolog.Logger) *TransactionHandler {
	return &TransactionHandler{
		ledger:    ledger,
		balances:  balances,
		validator: services.NewValidationHelper(),
		logger:    logger,
	}
}

// Routes mounts the ledger endpoints of a book.
func (h *TransactionHandler) Routes(r chi.Router) {
	r.Route("/books/{bookID}/transactions", func(r chi.Router) {
		r.Post("/", h.CreateTransaction)
		r.Get("/", h.ListTransactions)
		r.Get("/running", h.RunningBalances)
		r.Get("/{txID}", h.GetTransaction)
		r.Patch("/{txID}", h.UpdateTransaction)
		r.Delete("/{txID}", h.DeleteTransaction)
	})
}

type createTransactionRequest struct {
	Amount amountField   `json:"amount" validate:"required"`
	Type   models.TxType `json:"type" validate:"required,oneof=deposit withdraw"`
	Note   *string       `json:"note,omitempty"`
	Date   models.Date   `json:"date"`
}

type updateTransactionRequest struct {
	Amount *amountField   `json:"amount,omitempty"`
	Type   *models.TxType `json:"type,omitempty" validate:"omitempty,oneof=deposit withdraw"`
	Note   *string        `json:"note,omitempty"`
}

type transactionResponse struct {
	Transaction *models.Transaction `json:"transaction"`
	Balance     decimal.Decimal     `json:"balance"`
}

// CreateTransaction records a deposit or withdrawal
// @Summary Create transaction
// @Description Record a deposit or withdrawal; date defaults to today and may be backdated
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bookID path int true "Book ID"
// @Param request body createTransactionRequest true "Transaction"
// @Success 201 {object} transactionResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /books/{bookID}/transactions [post]
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	bookID, ok := pathID(w, r, "bookID")
	if !ok {
		return
	}

	var req createTransactionRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}
	amount, err := services.ParseAmount(string(req.Amount))
	if err != nil {
		fail(h.logger, w, r, "create transaction", err)
		return
	}

	tx, err := h.ledger.CreateTransaction(r.Context(), owner, bookID, models.NewTransaction{
		Amount: amount,
		Type:   req.Type,
		Note:   req.Note,
		Date:   req.Date,
	})
	if err != nil {
		fail(h.logger, w, r, "create transaction", err)
		return
	}
	h.respondWithBalance(w, r, http.StatusCreated, tx)
}

// ListTransactions pages through a book's ledger
// @Summary List transactions
// @Description Page through a book's ledger by (date, id), each row with its running balance
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param bookID path int true "Book ID"
// @Param order query string false "asc or desc (default desc)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} models.TransactionPage
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /books/{bookID}/transactions [get]
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	bookID, ok := pathID(w, r, "bookID")
	if !ok {
		return
	}
	order, ok := models.ParseOrder(r.URL.Query().Get("order"))
	if !ok {
		services.SendErrorResponse(w, "order must be asc or desc", http.StatusBadRequest, nil)
		return
	}

	page, err := h.ledger.ListTransactions(r.Context(), owner, bookID, order, queryInt(r, "page"), queryInt(r, "page_size"))
	if err != nil {
		fail(h.logger, w, r, "list transactions", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// RunningBalances returns the whole ledger with running balances
// @Summary Running balances
// @Description Every transaction of the book in ascending order with the balance after it
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param bookID path int true "Book ID"
// @Success 200 {array} models.RunningEntry
// @Failure 404 {object} services.ErrorResponse
// @Router /books/{bookID}/transactions/running [get]
func (h *TransactionHandler) RunningBalances(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	bookID, ok := pathID(w, r, "bookID")
	if !ok {
		return
	}

	if err := h.ledger.EnsureOwned(r.Context(), owner, bookID); err != nil {
		fail(h.logger, w, r, "running balances", err)
		return
	}
	entries, err := h.balances.RunningBalances(r.Context(), bookID)
	if err != nil {
		fail(h.logger, w, r, "running balances", err)
		return
	}
	if entries == nil {
		entries = []models.RunningEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// GetTransaction returns one transaction of a book
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param bookID path int true "Book ID"
// @Param txID path int true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} services.ErrorResponse
// @Router /books/{bookID}/transactions/{txID} [get]
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	owner, bookID, txID, ok := h.txPath(w, r)
	if !ok {
		return
	}

	tx, err := h.ledger.GetTransaction(r.Context(), owner, bookID, txID)
	if err != nil {
		fail(h.logger, w, r, "get transaction", err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

// UpdateTransaction edits amount, type or note of a transaction
// @Summary Update transaction
// @Description Partially update a transaction; the date cannot be changed
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bookID path int true "Book ID"
// @Param txID path int true "Transaction ID"
// @Param request body updateTransactionRequest true "Fields to change"
// @Success 200 {object} transactionResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /books/{bookID}/transactions/{txID} [patch]
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	owner, bookID, txID, ok := h.txPath(w, r)
	if !ok {
		return
	}

	var req updateTransactionRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	patch := models.TransactionPatch{Type: req.Type, Note: req.Note}
	if req.Amount != nil {
		amount, err := services.ParseAmount(string(*req.Amount))
		if err != nil {
			fail(h.logger, w, r, "update transaction", err)
			return
		}
		patch.Amount = &amount
	}

	tx, err := h.ledger.UpdateTransaction(r.Context(), owner, bookID, txID, patch)
	if err != nil {
		fail(h.logger, w, r, "update transaction", err)
		return
	}
	h.respondWithBalance(w, r, http.StatusOK, tx)
}

// DeleteTransaction removes a transaction from a book
// @Summary Delete transaction
// @Tags transactions
// @Security BearerAuth
// @Param bookID path int true "Book ID"
// @Param txID path int true "Transaction ID"
// @Success 204
// @Failure 404 {object} services.ErrorResponse
// @Router /books/{bookID}/transactions/{txID} [delete]
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	owner, bookID, txID, ok := h.txPath(w, r)
	if !ok {
		return
	}

	if err := h.ledger.DeleteTransaction(r.Context(), owner, bookID, txID); err != nil {
		fail(h.logger, w, r, "delete transaction", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TransactionHandler) txPath(w http.ResponseWriter, r *http.Request) (string, int64, int64, bool) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return "", 0, 0, false
	}
	bookID, ok := pathID(w, r, "bookID")
	if !ok {
		return "", 0, 0, false
	}
	txID, ok := pathID(w, r, "txID")
	if !ok {
		return "", 0, 0, false
	}
	return owner, bookID, txID, true
}

// respondWithBalance writes tx together with its book's new balance. A failed
// balance read is logged but does not fail the already committed write.
func (h *TransactionHandler) respondWithBalance(w http.ResponseWriter, r *http.Request, status int, tx *models.Transaction) {
	balance, err := h.balances.CurrentBalance(r.Context(), tx.BookID)
	if err != nil {
		h.logger.Warn().Err(err).Int64("book_id", tx.BookID).Msg("[API] balance read after write failed")
	}
	writeJSON(w, status, transactionResponse{Transaction: tx, Balance: balance})
}
