package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/courseplatform/ms-go-orders/app/entity"
)

var ErrPaymentAlreadyExists = errors.New("payment already exists")

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (
			order_id, payment_ref, method, status, created_at
		)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := dbtx(ctx, r.db).ExecContext(ctx, query,
		payment.OrderID,
		payment.PaymentRef,
		payment.Method,
		payment.Status,
		payment.CreatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrPaymentAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	payment.ID = uint64(id)
	return nil
}

func (r *PaymentRepository) FindByOrderID(ctx context.Context, orderID uint64) (*entity.Payment, error) {
	query := `
		SELECT id, order_id, payment_ref, method, status, created_at
		FROM payments
		WHERE order_id = ?
		LIMIT 1
	`

	payment := &entity.Payment{}
	err := dbtx(ctx, r.db).QueryRowContext(ctx, query, orderID).Scan(
		&payment.ID,
		&payment.OrderID,
		&payment.PaymentRef,
		&payment.Method,
		&payment.Status,
		&payment.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return payment, nil
}
