package snapshot

import (
	"context"
	"fmt"
	"strings"

	"dispatcher/internal/entities"
	"dispatcher/internal/repository"

	sq "github.com/Masterminds/squirrel"
)

// postgres ограничивает число параметров запроса 65535, строки пишем пачками
const batchSize = 500

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	customerColumns = []string{"id", "name", "created_at"}
	driverColumns   = []string{"id", "name", "vehicle_type", "status", "current_order_id", "total_rating", "ratings_count", "created_at"}
	orderColumns    = []string{
		"id", "customer_id", "item_id", "quantity", "status", "driver_id",
		"created_at", "assigned_at", "picked_up_at", "delivered_at", "rating",
	}
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) SaveCustomers(ctx context.Context, customers []entities.Customer) error {
	rows := make([][]any, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []any{c.ID, c.Name, c.CreatedAt})
	}

	if err := r.upsert(ctx, "customers", customerColumns, rows); err != nil {
		return fmt.Errorf("save customers: %w", err)
	}
	return nil
}

func (r *Repository) SaveDrivers(ctx context.Context, drivers []entities.Driver) error {
	rows := make([][]any, 0, len(drivers))
	for i := range drivers {
		d := DriverFromDomain(&drivers[i])
		rows = append(rows, []any{
			d.ID, d.Name, d.VehicleType, d.Status, d.CurrentOrderID, d.TotalRating, d.RatingsCount, d.CreatedAt,
		})
	}

	if err := r.upsert(ctx, "drivers", driverColumns, rows); err != nil {
		return fmt.Errorf("save drivers: %w", err)
	}
	return nil
}

func (r *Repository) SaveOrders(ctx context.Context, orders []entities.Order) error {
	rows := make([][]any, 0, len(orders))
	for i := range orders {
		o := OrderFromDomain(&orders[i])
		rows = append(rows, []any{
			o.ID, o.CustomerID, o.ItemID, o.Quantity, o.Status, o.DriverID,
			o.CreatedAt, o.AssignedAt, o.PickedUpAt, o.DeliveredAt, o.Rating,
		})
	}

	if err := r.upsert(ctx, "orders", orderColumns, rows); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}
	return nil
}

func (r *Repository) LoadCustomers(ctx context.Context) ([]entities.Customer, error) {
	rows, err := r.querier.QueryBuilder(ctx, qb.Select(customerColumns...).
		From("customers").
		OrderBy("created_at", "id"))
	if err != nil {
		return nil, fmt.Errorf("unexpected snapshot repository load customers error: %w", err)
	}
	defer rows.Close()

	customers := make([]entities.Customer, 0, 8)
	for rows.Next() {
		var model CustomerDB
		if err := rows.Scan(&model.ID, &model.Name, &model.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, CustomerToDomain(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, nil
}

func (r *Repository) LoadDrivers(ctx context.Context) ([]entities.Driver, error) {
	rows, err := r.querier.QueryBuilder(ctx, qb.Select(driverColumns...).
		From("drivers").
		OrderBy("created_at", "id"))
	if err != nil {
		return nil, fmt.Errorf("unexpected snapshot repository load drivers error: %w", err)
	}
	defer rows.Close()

	drivers := make([]entities.Driver, 0, 8)
	for rows.Next() {
		var model DriverDB
		err := rows.Scan(
			&model.ID,
			&model.Name,
			&model.VehicleType,
			&model.Status,
			&model.CurrentOrderID,
			&model.TotalRating,
			&model.RatingsCount,
			&model.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		drivers = append(drivers, DriverToDomain(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate drivers: %w", err)
	}
	return drivers, nil
}

func (r *Repository) LoadOrders(ctx context.Context) ([]entities.Order, error) {
	rows, err := r.querier.QueryBuilder(ctx, qb.Select(orderColumns...).
		From("orders").
		OrderBy("created_at", "id"))
	if err != nil {
		return nil, fmt.Errorf("unexpected snapshot repository load orders error: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.Order, 0, 8)
	for rows.Next() {
		var model OrderDB
		err := rows.Scan(
			&model.ID,
			&model.CustomerID,
			&model.ItemID,
			&model.Quantity,
			&model.Status,
			&model.DriverID,
			&model.CreatedAt,
			&model.AssignedAt,
			&model.PickedUpAt,
			&model.DeliveredAt,
			&model.Rating,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, OrderToDomain(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

func (r *Repository) upsert(ctx context.Context, table string, columns []string, rows [][]any) error {
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))

		builder := qb.Insert(table).Columns(columns...)
		for _, row := range rows[start:end] {
			builder = builder.Values(row...)
		}
		builder = builder.Suffix(onConflictUpdate(columns))

		if _, err := r.querier.ExecBuilder(ctx, builder); err != nil {
			if constraint, ok := repository.IntegrityViolation(err); ok {
				return fmt.Errorf("%s (constraint %q): %w: %w", table, constraint, ErrInvariantViolation, err)
			}
			return fmt.Errorf("unexpected snapshot repository %s upsert error: %w", table, err)
		}
	}
	return nil
}

// onConflictUpdate обновляет все колонки кроме первичного ключа id.
func onConflictUpdate(columns []string) string {
	updates := make([]string, 0, len(columns)-1)
	for _, column := range columns[1:] {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
	}
	return "ON CONFLICT (id) DO UPDATE SET " + strings.Join(updates, ", ")
}
