// Package store is the durable key-value layer behind the wardrobe. Each
// collection is a JSON array saved under one namespaced key.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"atelierapi/logger"
	"atelierapi/models"

	"github.com/getsentry/sentry-go"
)

type Collection string

const (
	ItemsCollection   Collection = "atelier_wardrobe_items"
	OutfitsCollection Collection = "atelier_outfits"
)

var ErrNotFound = errors.New("store: key not found")

// Store is the raw persistence contract. Load returns ErrNotFound for a key
// that was never saved.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// LoadRecords never fails: a missing key yields an empty slice, and a backend
// or decode failure is logged, reported and also yields an empty slice.
func LoadRecords[T any](ctx context.Context, s Store, c Collection) []T {
	raw, err := s.Load(ctx, string(c))
	if errors.Is(err, ErrNotFound) {
		return []T{}
	}
	if err == nil && len(raw) == 0 {
		return []T{}
	}
	if err == nil {
		var records []T
		if err = json.Unmarshal(raw, &records); err == nil {
			if records == nil {
				records = []T{}
			}
			return records
		}
		err = fmt.Errorf("decode: %w", err)
	}

	readErr := &models.StorageReadError{Collection: string(c), Err: err}
	logger.Warn("collection unreadable, starting empty",
		logger.String("collection", string(c)),
		logger.ErrorF(err),
	)
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("failure_type", "storage_read")
		scope.SetExtra("collection", string(c))
		sentry.CaptureException(readErr)
	})
	return []T{}
}

// SaveRecords encodes the full collection and replaces the stored value.
func SaveRecords[T any](ctx context.Context, s Store, c Collection, records []T) error {
	if records == nil {
		records = []T{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return &models.StorageWriteError{Collection: string(c), Err: fmt.Errorf("encode: %w", err)}
	}
	if err := s.Save(ctx, string(c), raw); err != nil {
		return &models.StorageWriteError{Collection: string(c), Err: err}
	}
	return nil
}

// ReportWriteError logs and reports a failed save. The caller keeps its
// in-memory state.
func ReportWriteError(err error) {
	if err == nil {
		return
	}
	logger.Error("collection not persisted, keeping in-memory state", logger.ErrorF(err))
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("failure_type", "storage_write")
		sentry.CaptureException(err)
	})
}
