package entity

import "time"

const (
	OrderStatusCreated  = "CREATED"
	OrderStatusPaid     = "PAID"
	OrderStatusRefunded = "REFUNDED"
)

type Order struct {
	ID uint64

	UserID   uint64
	CourseID uint64

	AmountCents int64
	Currency    string

	ExternalOrderID string

	Status string

	CreatedAt time.Time
	UpdatedAt time.Time
}
