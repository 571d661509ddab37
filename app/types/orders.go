package types

import (
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	UserID   uint64          `json:"userId"`
	CourseID uint64          `json:"courseId"`
	Amount   decimal.Decimal `json:"amount"`
}

func NewCreateOrderRequestFromContext(ctx echo.Context) (*CreateOrderRequest, error) {
	var body CreateOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	return &body, nil
}

func (r *CreateOrderRequest) Validate() error {
	if r.UserID == 0 {
		return errors.New("userId is required")
	}
	if r.CourseID == 0 {
		return errors.New("courseId is required")
	}
	if _, err := MinorUnits(r.Amount); err != nil {
		return err
	}
	return nil
}

type VerifyPaymentRequest struct {
	ExternalOrderID string `json:"externalOrderId"`
	PaymentID       string `json:"paymentId"`
	Signature       string `json:"signature"`
}

func NewVerifyPaymentRequestFromContext(ctx echo.Context) (*VerifyPaymentRequest, error) {
	var body VerifyPaymentRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.ExternalOrderID = strings.TrimSpace(body.ExternalOrderID)
	body.PaymentID = strings.TrimSpace(body.PaymentID)
	body.Signature = strings.TrimSpace(strings.ToLower(body.Signature))

	return &body, nil
}

func (r *VerifyPaymentRequest) Validate() error {
	if r.ExternalOrderID == "" {
		return errors.New("externalOrderId is required")
	}
	if r.PaymentID == "" {
		return errors.New("paymentId is required")
	}
	if r.Signature == "" {
		return errors.New("signature is required")
	}
	return nil
}

type ListOrdersRequest struct {
	UserID uint64
}

func NewListOrdersRequestFromContext(ctx echo.Context) (*ListOrdersRequest, error) {
	userID, err := strconv.ParseUint(ctx.Param("userId"), 10, 64)
	if err != nil {
		return nil, err
	}
	return &ListOrdersRequest{UserID: userID}, nil
}

func (r *ListOrdersRequest) Validate() error {
	if r.UserID == 0 {
		return errors.New("invalid user id")
	}
	return nil
}

type GetOrderRequest struct {
	ID uint64
}

func NewGetOrderRequestFromContext(ctx echo.Context) (*GetOrderRequest, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return nil, err
	}
	return &GetOrderRequest{ID: id}, nil
}

func (r *GetOrderRequest) Validate() error {
	if r.ID == 0 {
		return errors.New("invalid order id")
	}
	return nil
}

type RefundOrderRequest struct {
	OrderID uint64
}

func NewRefundOrderRequestFromContext(ctx echo.Context) (*RefundOrderRequest, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(ctx.QueryParam("orderId")), 10, 64)
	if err != nil {
		return nil, err
	}
	return &RefundOrderRequest{OrderID: id}, nil
}

func (r *RefundOrderRequest) Validate() error {
	if r.OrderID == 0 {
		return errors.New("invalid order id")
	}
	return nil
}

type CreateOrderResponse struct {
	ExternalOrderID string          `json:"externalOrderId"`
	KeyID           string          `json:"keyId"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	OrderID         uint64          `json:"orderId"`
}

type Order struct {
	ID              uint64          `json:"id"`
	UserID          uint64          `json:"userId"`
	CourseID        uint64          `json:"courseId"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	ExternalOrderID string          `json:"externalOrderId"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"createdAt"`
}

type OrderEnvelopeResponse struct {
	Order *Order `json:"order"`
}

type ListOrdersResponse struct {
	Orders []*Order `json:"orders"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
