package entity

import "time"

const PaymentStatusSuccess = "SUCCESS"

type Payment struct {
	ID uint64

	OrderID uint64

	PaymentRef string
	Method     string
	Status     string

	CreatedAt time.Time
}
