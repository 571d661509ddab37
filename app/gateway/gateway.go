package gateway

import "context"

type CreateOrderInput struct {
	AmountMinor    int64
	Currency       string
	Receipt        string
	PaymentCapture bool
}

type CreateOrderOutput struct {
	ExternalOrderID string
}

type RefundInput struct {
	PaymentRef  string
	AmountMinor int64
}

type RefundOutput struct {
	RefundID string
}

// Client is the outbound boundary to the external payment gateway. Refund is
// part of the contract so the gateway-side refund seam stays visible, even
// though the order service performs refunds as local bookkeeping only.
type Client interface {
	KeyID() string
	CreateOrder(ctx context.Context, input *CreateOrderInput) (*CreateOrderOutput, error)
	RefundPayment(ctx context.Context, input *RefundInput) (*RefundOutput, error)
}
