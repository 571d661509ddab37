package types

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func newTestContext(method, target, body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestCreateOrderRequestValidate(t *testing.T) {
	valid := CreateOrderRequest{UserID: 1, CourseID: 2, Amount: decimal.RequireFromString("49.99")}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	cases := []CreateOrderRequest{
		{CourseID: 2, Amount: decimal.RequireFromString("49.99")},
		{UserID: 1, Amount: decimal.RequireFromString("49.99")},
		{UserID: 1, CourseID: 2},
		{UserID: 1, CourseID: 2, Amount: decimal.RequireFromString("-1")},
		{UserID: 1, CourseID: 2, Amount: decimal.RequireFromString("9.999")},
	}
	for i, c := range cases {
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestNewCreateOrderRequestFromContextParsesDecimalAmount(t *testing.T) {
	ctx := newTestContext(http.MethodPost, "/payments/process", `{"userId":7,"courseId":42,"amount":49.99}`)

	req, err := NewCreateOrderRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if req.UserID != 7 || req.CourseID != 42 {
		t.Fatalf("unexpected ids: %+v", req)
	}
	if !req.Amount.Equal(decimal.RequireFromString("49.99")) {
		t.Fatalf("expected amount 49.99, got %s", req.Amount)
	}
}

func TestNewVerifyPaymentRequestFromContextNormalizesSignature(t *testing.T) {
	ctx := newTestContext(http.MethodPost, "/payments/verify",
		`{"externalOrderId":" extOrd_123 ","paymentId":"pay_456","signature":" AB12CD "}`)

	req, err := NewVerifyPaymentRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if req.ExternalOrderID != "extOrd_123" {
		t.Fatalf("expected trimmed external order id, got %q", req.ExternalOrderID)
	}
	if req.Signature != "ab12cd" {
		t.Fatalf("expected lowercased signature, got %q", req.Signature)
	}
}

func TestVerifyPaymentRequestValidate(t *testing.T) {
	valid := VerifyPaymentRequest{ExternalOrderID: "extOrd_123", PaymentID: "pay_456", Signature: "ab"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	cases := []VerifyPaymentRequest{
		{PaymentID: "pay_456", Signature: "ab"},
		{ExternalOrderID: "extOrd_123", Signature: "ab"},
		{ExternalOrderID: "extOrd_123", PaymentID: "pay_456"},
	}
	for i, c := range cases {
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestNewListOrdersRequestFromContext(t *testing.T) {
	ctx := newTestContext(http.MethodGet, "/payments/orders/7", "")
	ctx.SetParamNames("userId")
	ctx.SetParamValues("7")

	req, err := NewListOrdersRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if req.UserID != 7 {
		t.Fatalf("expected user id 7, got %d", req.UserID)
	}

	ctx = newTestContext(http.MethodGet, "/payments/orders/abc", "")
	ctx.SetParamNames("userId")
	ctx.SetParamValues("abc")
	if _, err := NewListOrdersRequestFromContext(ctx); err == nil {
		t.Fatal("expected error for non-numeric user id")
	}
}

func TestNewRefundOrderRequestFromContext(t *testing.T) {
	ctx := newTestContext(http.MethodPost, "/payments/refund?orderId=12", "")

	req, err := NewRefundOrderRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if req.OrderID != 12 {
		t.Fatalf("expected order id 12, got %d", req.OrderID)
	}

	ctx = newTestContext(http.MethodPost, "/payments/refund", "")
	if _, err := NewRefundOrderRequestFromContext(ctx); err == nil {
		t.Fatal("expected error for missing orderId")
	}
}
