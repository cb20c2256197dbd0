package bookings

import (
	"context"
)

// SweepExpired удаляет ожидающие записи, срок ответа по которым истек
// Страхует таймеры истечения: повторное истечение уже удаленной записи ничего не делает.
func (e *Engine) SweepExpired(ctx context.Context) (int, error) {
	return do(e, ctx, "sweep", func(ctx context.Context, tx *txn) (int, error) {
		now := e.now()
		expired := 0
		for _, b := range e.store.PendingList() {
			if b.CreatedAt.IsZero() || b.CreatedAt.Add(e.opts.PendingTTL).After(now) {
				continue
			}
			if e.expirePending(ctx, tx, b.ID) {
				expired++
			}
		}
		if expired > 0 {
			e.logger.Info("Bookings: sweep expired %d pending bookings", expired)
		}
		return expired, nil
	})
}
