package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/courseplatform/ms-go-orders/app/entity"
)

var ErrOrderAlreadyExists = errors.New("order already exists")

type OrderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (
			user_id, course_id, amount_cents, currency, external_order_id, status, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := dbtx(ctx, r.db).ExecContext(ctx, query,
		order.UserID,
		order.CourseID,
		order.AmountCents,
		order.Currency,
		order.ExternalOrderID,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrOrderAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	order.ID = uint64(id)
	return nil
}

// UpdateStatus performs the conditional state transition. It reports whether
// the row actually moved from fromStatus to toStatus, which is what makes the
// transition exactly-once under concurrent callers.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint64, fromStatus, toStatus string, updatedAt time.Time) (bool, error) {
	query := `
		UPDATE orders SET status = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`

	result, err := dbtx(ctx, r.db).ExecContext(ctx, query, toStatus, updatedAt, id, fromStatus)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint64) (*entity.Order, error) {
	query := `
		SELECT id, user_id, course_id, amount_cents, currency, external_order_id, status, created_at, updated_at
		FROM orders
		WHERE id = ?
	`

	order := &entity.Order{}
	if err := scanOrder(dbtx(ctx, r.db).QueryRowContext(ctx, query, id), order); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *OrderRepository) FindByExternalOrderID(ctx context.Context, externalOrderID string) (*entity.Order, error) {
	query := `
		SELECT id, user_id, course_id, amount_cents, currency, external_order_id, status, created_at, updated_at
		FROM orders
		WHERE external_order_id = ?
		LIMIT 1
	`

	order := &entity.Order{}
	if err := scanOrder(dbtx(ctx, r.db).QueryRowContext(ctx, query, externalOrderID), order); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.Order, error) {
	query := `
		SELECT id, user_id, course_id, amount_cents, currency, external_order_id, status, created_at, updated_at
		FROM orders
		WHERE user_id = ?
		ORDER BY id DESC
	`

	rows, err := dbtx(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*entity.Order, 0)
	for rows.Next() {
		item := &entity.Order{}
		if err := scanOrder(rows, item); err != nil {
			return nil, err
		}
		orders = append(orders, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(scan rowScanner, order *entity.Order) error {
	return scan.Scan(
		&order.ID,
		&order.UserID,
		&order.CourseID,
		&order.AmountCents,
		&order.Currency,
		&order.ExternalOrderID,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
}
