package handlers

import (
	"net/http"
	"strings"

	"github.com/cashbook/backend/internal/models"
	"github.com/cashbook/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type BookHandler struct {
	books     *services.BookService
	balances  *services.BalanceService
	qr        *services.QRService
	validator *services.ValidationHelper
	logger    zerolog.Logger
}

func NewBookHandler(books *services.BookService, balances *services.BalanceService, qr *services.QRService, logger zerolog.Logger) *BookHandler {
	return &BookHandler{
		books:     books,
		balances:  balances,
		qr:        qr,
		validator: services.NewValidationHelper(),
		logger:    logger,
	}
}

// Routes mounts the book and lookup endpoints.
func (h *BookHandler) Routes(r chi.Router) {
	r.Post("/books", h.CreateBook)
	r.Get("/books", h.ListBooks)
	r.Get("/books/{bookID}", h.GetBook)
	r.Delete("/books/{bookID}", h.DeleteBook)
	r.Get("/books/{bookID}/balance", h.GetBalance)
	r.Get("/books/{bookID}/qr", h.GetQRCode)
	r.Get("/lookup/{bid}", h.Lookup)
	r.Post("/lookup/scan", h.ScanQRCode)
}

type createBookRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

type bookResponse struct {
	models.Book
	Balance decimal.Decimal `json:"balance"`
}

// CreateBook creates a book with a fresh BID
// @Summary Create book
// @Description Create a new ledger book owned by the caller; a unique 6-digit BID is assigned
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createBookRequest true "Book to create"
// @Success 201 {object} models.Book
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /books [post]
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req createBookRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	book, err := h.books.CreateBook(r.Context(), owner, req.Name, req.Description)
	if err != nil {
		fail(h.logger, w, r, "create book", err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

// ListBooks lists the caller's books
// @Summary List books
// @Description Page through the caller's books sorted by name, with transaction count and balance
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param search query string false "Case-insensitive name filter"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 12, max 100)"
// @Success 200 {object} models.BookPage
// @Failure 401 {object} services.ErrorResponse
// @Router /books [get]
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	page, err := h.books.ListBooks(r.Context(), owner, models.BookFilter{
		Search:   r.URL.Query().Get("search"),
		Page:     queryInt(r, "page"),
		PageSize: queryInt(r, "page_size"),
	})
	if err != nil {
		fail(h.logger, w, r, "list books", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetBook returns one of the caller's books with its balance
// @Summary Get book
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param bookID path int true "Book ID"
// @Success 200 {object} bookResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /books/{bookID} [get]
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	bookID, ok := pathID(w, r, "bookID")
	if !ok {
		return
	}

	book, err := h.books.GetBook(r.Context(), owner, bookID)
	if err != nil {
		fail(h.logger, w, r, "get book", err)
		return
	}
	balance, err := h.balances.CurrentBalance(r.Context(), bookID)
	if err != nil {
		fail(h.logger, w, r, "get book", err)
		return
	}
	writeJSON(w, http.StatusOK, bookResponse{Book: *book, Balance: balance})
}

// DeleteBook deletes a book and all of its transactions
// @Summary Delete book
// @Tags books
// @Security BearerAuth
// @Param bookID path int true "Book ID"
// @Success 204
// @Failure 404 {object} services.ErrorResponse
// @Router /books/{bookID} [delete]
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	bookID, ok := pathID(w, r, "bookID")
	if !ok {
		return
	}

	if err := h.books.DeleteBook(r.Context(), owner, bookID); err != nil {
		fail(h.logger, w, r, "delete book", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetBalance returns the current balance of a book
// @Summary Book balance
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param bookID path int true "Book ID"
// @Success 200 {object} object{book_id=int,balance=string}
// @Failure 404 {object} services.ErrorResponse
// @Router /books/{bookID}/balance [get]
func (h *BookHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	bookID, ok := pathID(w, r, "bookID")
	if !ok {
		return
	}

	if _, err := h.books.GetBook(r.Context(), owner, bookID); err != nil {
		fail(h.logger, w, r, "get balance", err)
		return
	}
	balance, err := h.balances.CurrentBalance(r.Context(), bookID)
	if err != nil {
		fail(h.logger, w, r, "get balance", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"book_id": bookID,
		"balance": balance,
	})
}

// GetQRCode renders the book's BID as a QR code
// @Summary Book share code
// @Description PNG QR code encoding the book's BID so others can send funds to it
// @Tags books
// @Produce png
// @Security BearerAuth
// @Param bookID path int true "Book ID"
// @Success 200 {file} binary
// @Failure 404 {object} services.ErrorResponse
// @Router /books/{bookID}/qr [get]
func (h *BookHandler) GetQRCode(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	bookID, ok := pathID(w, r, "bookID")
	if !ok {
		return
	}

	img, err := h.qr.BookQRCode(r.Context(), owner, bookID)
	if err != nil {
		fail(h.logger, w, r, "book qr", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(img)
}

// Lookup resolves a BID to its public details
// @Summary Look up BID
// @Description Resolve a BID to the book name and owner display name; balances are never exposed
// @Tags lookup
// @Produce json
// @Security BearerAuth
// @Param bid path string true "6-digit BID"
// @Success 200 {object} models.BookLookup
// @Failure 404 {object} services.ErrorResponse
// @Router /lookup/{bid} [get]
func (h *BookHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireOwner(w, r); !ok {
		return
	}

	out, err := h.books.LookupPublic(r.Context(), chi.URLParam(r, "bid"))
	if err != nil {
		fail(h.logger, w, r, "lookup", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type scanRequest struct {
	Content string `json:"content" validate:"required"`
}

// ScanQRCode resolves scanned share-code content
// @Summary Resolve share code
// @Tags lookup
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body scanRequest true "Scanned QR content"
// @Success 200 {object} models.BookLookup
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /lookup/scan [post]
func (h *BookHandler) ScanQRCode(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireOwner(w, r); !ok {
		return
	}

	var req scanRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	payload, err := services.DecodePayload(strings.TrimSpace(req.Content))
	if err != nil {
		fail(h.logger, w, r, "scan", err)
		return
	}
	out, err := h.books.LookupPublic(r.Context(), payload.BID)
	if err != nil {
		fail(h.logger, w, r, "scan", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
