package entity

import "time"

type OrderEvent struct {
	ID uint64

	OrderID uint64

	EventType string

	OldStatus *string
	NewStatus string

	CreatedAt time.Time
}
