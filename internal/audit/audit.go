package audit

import (
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Event types recorded in the audit trail.
const (
	EventBookCreated        = "BOOK_CREATED"
	EventBookDeleted        = "BOOK_DELETED"
	EventTransactionCreated = "TRANSACTION_CREATED"
	EventTransactionUpdated = "TRANSACTION_UPDATED"
	EventTransactionDeleted = "TRANSACTION_DELETED"
	EventTransfer           = "TRANSFER"
	EventProfileUpdated     = "PROFILE_UPDATED"
	EventError              = "ERROR"
)

const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

type Event struct {
	Timestamp     time.Time
	EventType     string
	Owner         string
	BookID        int64
	TransactionID int64
	Reference     string
	Amount        decimal.Decimal
	Status        string
	Details       map[string]string
}

// Logger writes audit events as structured "AUDIT" log lines.
// A nil *Logger discards everything.
type Logger struct {
	log zerolog.Logger
	now func() time.Time
}

func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{
		log: log.With().Str("channel", "audit").Logger(),
		now: time.Now,
	}
}

func (a *Logger) LogTransfer(ref, owner string, fromBook, toBook int64, amount decimal.Decimal, status string) {
	a.write(Event{
		EventType: EventTransfer,
		Owner:     owner,
		BookID:    fromBook,
		Reference: ref,
		Amount:    amount,
		Status:    status,
		Details: map[string]string{
			"to_book": strconv.FormatInt(toBook, 10),
		},
	})
}

func (a *Logger) LogError(operation, owner string, bookID int64, err error) {
	a.write(Event{
		EventType: EventError,
		Owner:     owner,
		BookID:    bookID,
		Status:    StatusFailed,
		Details: map[string]string{
			"operation": operation,
			"error":     err.Error(),
		},
	})
}

func (a *Logger) LogOperation(eventType, owner string, bookID, txID int64, details string) {
	ev := Event{
		EventType:     eventType,
		Owner:         owner,
		BookID:        bookID,
		TransactionID: txID,
		Status:        StatusSuccess,
	}
	if details != "" {
		ev.Details = map[string]string{"details": details}
	}
	a.write(ev)
}

func (a *Logger) write(ev Event) {
	if a == nil {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = a.now()
	}

	e := a.log.Info().
		Time("timestamp", ev.Timestamp).
		Str("event_type", ev.EventType).
		Str("owner", ev.Owner).
		Int64("book_id", ev.BookID).
		Str("status", ev.Status)
	if ev.TransactionID != 0 {
		e = e.Int64("transaction_id", ev.TransactionID)
	}
	if ev.Reference != "" {
		e = e.Str("reference", ev.Reference)
	}
	if !ev.Amount.IsZero() {
		e = e.Str("amount", ev.Amount.StringFixed(2))
	}
	if len(ev.Details) > 0 {
		d := zerolog.Dict()
		for k, v := range ev.Details {
			d = d.Str(k, v)
		}
		e = e.Dict("details", d)
	}
	e.Msg("AUDIT")
}
