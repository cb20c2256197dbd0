package booking

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookingstore"
	"github.com/m04kA/SMC-SlotBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBooking/pkg/sqlbuilder"
)

const (
	tableConfirmed = "bookings"
	tablePending   = "pending"
	tableBlocked   = "blocked_slots"
	tableCustomers = "customers"
)

// общие колонки подтвержденной и ожидающей записи
var bookingColumns = []string{
	"slot_key",
	"duration_slots",
	"duration_minutes",
	"customer_id",
	"customer_name",
	"customer_phone",
	"customer_lang",
	"service_ids",
	"created_at",
	"rescheduled_from",
}

// Repository долговременное хранилище записей, блокировок и профилей клиентов
// Реализует bookingstore.Persister
type Repository struct {
	db DB
	sb squirrel.StatementBuilderType
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DB, sb squirrel.StatementBuilderType) *Repository {
	return &Repository{db: db, sb: sb}
}

// LoadAll читает все четыре таблицы в одной транзакции
func (r *Repository) LoadAll(ctx context.Context) (*bookingstore.Data, error) {
	data := &bookingstore.Data{}

	err := r.db.Do(ctx, func(ctx context.Context) error {
		var err error
		if data.Confirmed, err = r.loadBookings(ctx, tableConfirmed); err != nil {
			return err
		}
		if data.Pending, err = r.loadBookings(ctx, tablePending); err != nil {
			return err
		}
		if data.Blocked, err = r.loadBlocked(ctx); err != nil {
			return err
		}
		if data.Customers, err = r.loadCustomers(ctx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: LoadAll: %v", ErrTransaction, err)
	}

	return data, nil
}

// SaveConfirmed вставляет или заменяет подтвержденную запись по ключу слота
func (r *Repository) SaveConfirmed(ctx context.Context, b *domain.Booking) error {
	insert := r.sb.Insert(tableConfirmed).
		Columns(bookingColumns...).
		Values(bookingValues(b)...)

	query, args, err := sqlbuilder.Upsert(insert, "slot_key", bookingColumns[1:]...).ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveConfirmed - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveConfirmed - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// DeleteConfirmed удаляет подтвержденную запись
func (r *Repository) DeleteConfirmed(ctx context.Context, slot domain.Slot) error {
	return r.delete(ctx, "DeleteConfirmed", tableConfirmed, squirrel.Eq{"slot_key": slot.Key()})
}

// SavePending вставляет или заменяет ожидающую запись по идентификатору
func (r *Repository) SavePending(ctx context.Context, b *domain.Booking) error {
	columns := append([]string{"id"}, bookingColumns...)
	values := append([]interface{}{b.ID}, bookingValues(b)...)

	insert := r.sb.Insert(tablePending).
		Columns(columns...).
		Values(values...)

	query, args, err := sqlbuilder.Upsert(insert, "id", bookingColumns...).ToSql()
	if err != nil {
		return fmt.Errorf("%w: SavePending - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SavePending - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// DeletePending удаляет ожидающую запись
func (r *Repository) DeletePending(ctx context.Context, id int64) error {
	return r.delete(ctx, "DeletePending", tablePending, squirrel.Eq{"id": id})
}

func (r *Repository) delete(ctx context.Context, method, table string, where squirrel.Eq) error {
	query, args, err := r.sb.Delete(table).Where(where).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, method, err)
	}

	if _, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s - execute delete: %v", ErrExecQuery, method, err)
	}
	return nil
}

func (r *Repository) loadBookings(ctx context.Context, table string) ([]*domain.Booking, error) {
	columns := bookingColumns
	if table == tablePending {
		columns = append([]string{"id"}, bookingColumns...)
	}

	query, args, err := r.sb.Select(columns...).From(table).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadBookings(%s) - build select query: %v", ErrBuildQuery, table, err)
	}

	rows, err := dbmetrics.GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadBookings(%s) - execute select: %v", ErrExecQuery, table, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		var row bookingRow
		dest := row.dest()
		if table == tablePending {
			dest = append([]interface{}{&row.id}, dest...)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: loadBookings(%s): %v", ErrScanRow, table, err)
		}

		b, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: loadBookings(%s): %v", ErrScanRow, table, err)
		}
		if table == tablePending {
			b.Status = domain.StatusPending
		} else {
			b.Status = domain.StatusConfirmed
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadBookings(%s) - rows iteration: %v", ErrScanRow, table, err)
	}
	return bookings, nil
}

type bookingRow struct {
	id              int64
	slotKey         string
	durationSlots   int
	durationMinutes int
	customerID      int64
	customerName    string
	customerPhone   string
	customerLang    string
	serviceIDs      string
	createdAt       string
	rescheduledFrom sql.NullString
}

// dest возвращает указатели на поля в порядке bookingColumns
func (r *bookingRow) dest() []interface{} {
	return []interface{}{
		&r.slotKey,
		&r.durationSlots,
		&r.durationMinutes,
		&r.customerID,
		&r.customerName,
		&r.customerPhone,
		&r.customerLang,
		&r.serviceIDs,
		&r.createdAt,
		&r.rescheduledFrom,
	}
}

func (r *bookingRow) toDomain() (*domain.Booking, error) {
	slot, err := domain.ParseSlotKey(r.slotKey)
	if err != nil {
		return nil, err
	}

	createdAt, err := time.Parse(time.RFC3339Nano, r.createdAt)
	if err != nil {
		return nil, fmt.Errorf("created_at %q: %w", r.createdAt, err)
	}

	b := &domain.Booking{
		ID:              r.id,
		Slot:            slot,
		DurationSlots:   r.durationSlots,
		DurationMinutes: r.durationMinutes,
		CustomerID:      r.customerID,
		CustomerName:    r.customerName,
		CustomerPhone:   r.customerPhone,
		CustomerLang:    r.customerLang,
		ServiceIDs:      splitIDs(r.serviceIDs),
		CreatedAt:       createdAt,
	}

	if r.rescheduledFrom.Valid && r.rescheduledFrom.String != "" {
		from, err := domain.ParseSlotKey(r.rescheduledFrom.String)
		if err != nil {
			return nil, err
		}
		b.RescheduledFrom = &from
	}

	return b, nil
}

func bookingValues(b *domain.Booking) []interface{} {
	var rescheduledFrom sql.NullString
	if b.RescheduledFrom != nil {
		rescheduledFrom = sql.NullString{String: b.RescheduledFrom.Key(), Valid: true}
	}

	return []interface{}{
		b.Slot.Key(),
		b.DurationSlots,
		b.DurationMinutes,
		b.CustomerID,
		b.CustomerName,
		b.CustomerPhone,
		b.CustomerLang,
		strings.Join(b.ServiceIDs, ","),
		b.CreatedAt.Format(time.RFC3339Nano),
		rescheduledFrom,
	}
}

func splitIDs(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
