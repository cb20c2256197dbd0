package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBooking/pkg/sqlbuilder"
)

// SaveBlocked добавляет заблокированный слот; повторная блокировка ничего не меняет
func (r *Repository) SaveBlocked(ctx context.Context, slot domain.Slot) error {
	insert := r.sb.Insert(tableBlocked).
		Columns("slot_key", "created_at").
		Values(slot.Key(), time.Now().UTC().Format(time.RFC3339))

	query, args, err := sqlbuilder.Upsert(insert, "slot_key").ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveBlocked - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveBlocked - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// DeleteBlocked снимает блокировку слота
func (r *Repository) DeleteBlocked(ctx context.Context, slot domain.Slot) error {
	return r.delete(ctx, "DeleteBlocked", tableBlocked, squirrel.Eq{"slot_key": slot.Key()})
}

func (r *Repository) loadBlocked(ctx context.Context) ([]domain.Slot, error) {
	query, args, err := r.sb.Select("slot_key").From(tableBlocked).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadBlocked - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := dbmetrics.GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadBlocked - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.Slot, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: loadBlocked: %v", ErrScanRow, err)
		}
		slot, err := domain.ParseSlotKey(key)
		if err != nil {
			return nil, fmt.Errorf("%w: loadBlocked: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadBlocked - rows iteration: %v", ErrScanRow, err)
	}
	return slots, nil
}
