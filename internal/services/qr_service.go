package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"time"

	"github.com/cashbook/backend/internal/config"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"
)

// QRPayload is encoded into a book's share code so another user can scan it
// and fill in the recipient of a transfer.
type QRPayload struct {
	Kind     string `json:"kind"`
	BID      string `json:"bid"`
	BookName string `json:"book_name"`
}

const qrPayloadKind = "cashbook.bid"

// QRService renders BID share codes. PNGs are cached in Redis by BID since a
// BID never changes.
type QRService struct {
	books  *BookService
	redis  *redis.Client
	logger zerolog.Logger
	size   int
	ttl    time.Duration
}

func NewQRService(books *BookService, redis *redis.Client, logger zerolog.Logger, cfg *config.LedgerConfig) *QRService {
	if cfg == nil {
		cfg = config.Default()
	}
	return &QRService{
		books:  books,
		redis:  redis,
		logger: logger,
		size:   cfg.QRSize,
		ttl:    cfg.QRCacheTTL,
	}
}

func qrKey(bid string) string {
	return fmt.Sprintf("qr:bid:%s", bid)
}

// BookQRCode returns a PNG encoding the book's BID.
func (s *QRService) BookQRCode(ctx context.Context, owner string, bookID int64) ([]byte, error) {
	book, err := s.books.GetBook(ctx, owner, bookID)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, qrKey(book.BID)).Bytes()
		if err == nil {
			return cached, nil
		}
		if err != redis.Nil {
			s.logger.Warn().Err(err).Str("bid", book.BID).Msg("[QR] cache read failed")
		}
	}

	payload, err := json.Marshal(QRPayload{Kind: qrPayloadKind, BID: book.BID, BookName: book.Name})
	if err != nil {
		return nil, err
	}
	qr, err := qrcode.New(string(payload), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("%w: qr encode: %w", ErrPersistence, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(s.size)); err != nil {
		return nil, fmt.Errorf("%w: png encode: %w", ErrPersistence, err)
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, qrKey(book.BID), buf.Bytes(), s.ttl).Err(); err != nil {
			s.logger.Warn().Err(err).Str("bid", book.BID).Msg("[QR] cache write failed")
		}
	}
	return buf.Bytes(), nil
}

// DecodePayload parses scanned share-code content back into a BID.
func DecodePayload(content string) (*QRPayload, error) {
	var p QRPayload
	if err := json.Unmarshal([]byte(content), &p); err != nil || p.Kind != qrPayloadKind || !ValidBID(p.BID) {
		return nil, fmt.Errorf("%w: not a book share code", ErrValidation)
	}
	return &p, nil
}
