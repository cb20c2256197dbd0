package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBooking/pkg/sqlbuilder"
)

// SaveCustomer вставляет или обновляет профиль клиента
func (r *Repository) SaveCustomer(ctx context.Context, p *domain.CustomerProfile) error {
	insert := r.sb.Insert(tableCustomers).
		Columns("customer_id", "name", "phone", "lang", "updated_at").
		Values(p.CustomerID, p.Name, p.Phone, p.Lang, time.Now().UTC().Format(time.RFC3339))

	query, args, err := sqlbuilder.Upsert(insert, "customer_id", "name", "phone", "lang", "updated_at").ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveCustomer - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveCustomer - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) loadCustomers(ctx context.Context) ([]*domain.CustomerProfile, error) {
	query, args, err := r.sb.Select("customer_id", "name", "phone", "lang").From(tableCustomers).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadCustomers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := dbmetrics.GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadCustomers - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	customers := make([]*domain.CustomerProfile, 0)
	for rows.Next() {
		var p domain.CustomerProfile
		if err := rows.Scan(&p.CustomerID, &p.Name, &p.Phone, &p.Lang); err != nil {
			return nil, fmt.Errorf("%w: loadCustomers: %v", ErrScanRow, err)
		}
		customers = append(customers, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadCustomers - rows iteration: %v", ErrScanRow, err)
	}
	return customers, nil
}
