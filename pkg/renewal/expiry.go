package renewal

import (
	"context"
	"time"

	"crm-renewal-be/internal/pkg/logger"
)

// ExpiryMarker bulk-expires subscriptions that ended at or before now.
type ExpiryMarker interface {
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
}

// ExpiryScanner is the coarse periodic counterpart of StatusResolver. Rows
// with a cancellation timestamp are left alone; a pending subscription past
// its end is marked expired like any other.
type ExpiryScanner struct {
	store  ExpiryMarker
	logger logger.ILogger
}

func NewExpiryScanner(store ExpiryMarker, logger logger.ILogger) *ExpiryScanner {
	return &ExpiryScanner{store: store, logger: logger}
}

// Sweep is idempotent: rows already expired are not matched again.
func (s *ExpiryScanner) Sweep(ctx context.Context, now time.Time) (int64, error) {
	count, err := s.store.MarkExpired(ctx, now)
	if err != nil {
		s.logger.Error("EXPIRY", "Expiry sweep failed", map[string]interface{}{
			"error": err.Error(),
			"now":   now,
		})
		return 0, storeErr("mark subscriptions expired", err)
	}

	s.logger.Info("EXPIRY", "Expiry sweep finished", map[string]interface{}{
		"expired": count,
		"now":     now,
	})
	return count, nil
}
