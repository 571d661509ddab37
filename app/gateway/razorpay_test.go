package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreateOrderSendsMinorUnitsWithBasicAuth(t *testing.T) {
	var gotPath string
	var gotPayload map[string]interface{}
	var gotUser, gotPass string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"order_abc123"}`))
	}))
	defer server.Close()

	client := NewRazorpayClient(RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "rzp_test_secret",
		BaseURL:   server.URL,
	})

	out, err := client.CreateOrder(context.Background(), &CreateOrderInput{
		AmountMinor:    4999,
		Currency:       "inr",
		Receipt:        "rcpt_1",
		PaymentCapture: true,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if out.ExternalOrderID != "order_abc123" {
		t.Fatalf("expected order_abc123, got %s", out.ExternalOrderID)
	}
	if gotPath != "/v1/orders" {
		t.Fatalf("expected POST /v1/orders, got %s", gotPath)
	}
	if gotUser != "rzp_test_key" || gotPass != "rzp_test_secret" {
		t.Fatalf("expected basic auth credentials, got %s:%s", gotUser, gotPass)
	}
	if gotPayload["amount"].(float64) != 4999 {
		t.Fatalf("expected amount 4999, got %v", gotPayload["amount"])
	}
	if gotPayload["currency"] != "INR" {
		t.Fatalf("expected currency INR, got %v", gotPayload["currency"])
	}
	if gotPayload["payment_capture"].(float64) != 1 {
		t.Fatalf("expected payment_capture 1, got %v", gotPayload["payment_capture"])
	}
}

func TestCreateOrderErrorStatusSurfacesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"description":"amount too small"}}`))
	}))
	defer server.Close()

	client := NewRazorpayClient(RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "rzp_test_secret",
		BaseURL:   server.URL,
	})

	_, err := client.CreateOrder(context.Background(), &CreateOrderInput{AmountMinor: 1, Currency: "INR"})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if !strings.Contains(err.Error(), "status=400") || !strings.Contains(err.Error(), "amount too small") {
		t.Fatalf("expected status and body in error, got %v", err)
	}
}

func TestCreateOrderRejectsMissingOrderID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewRazorpayClient(RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "rzp_test_secret",
		BaseURL:   server.URL,
	})

	_, err := client.CreateOrder(context.Background(), &CreateOrderInput{AmountMinor: 100, Currency: "INR"})
	if err == nil {
		t.Fatal("expected error when response has no order id")
	}
}

func TestCreateOrderRequiresKeySecret(t *testing.T) {
	client := NewRazorpayClient(RazorpayConfig{KeyID: "rzp_test_key"})

	_, err := client.CreateOrder(context.Background(), &CreateOrderInput{AmountMinor: 100, Currency: "INR"})
	if err == nil {
		t.Fatal("expected error when key secret is not configured")
	}
}

func TestRefundPaymentPostsToPaymentPath(t *testing.T) {
	var gotPath string
	var gotPayload map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Write([]byte(`{"id":"rfnd_xyz"}`))
	}))
	defer server.Close()

	client := NewRazorpayClient(RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "rzp_test_secret",
		BaseURL:   server.URL,
	})

	out, err := client.RefundPayment(context.Background(), &RefundInput{PaymentRef: "pay_9", AmountMinor: 4999})
	if err != nil {
		t.Fatalf("refund failed: %v", err)
	}

	if out.RefundID != "rfnd_xyz" {
		t.Fatalf("expected rfnd_xyz, got %s", out.RefundID)
	}
	if gotPath != "/v1/payments/pay_9/refund" {
		t.Fatalf("expected refund path for payment, got %s", gotPath)
	}
	if gotPayload["amount"].(float64) != 4999 {
		t.Fatalf("expected amount 4999, got %v", gotPayload["amount"])
	}
}

func TestRefundPaymentRequiresPaymentRef(t *testing.T) {
	client := NewRazorpayClient(RazorpayConfig{KeyID: "k", KeySecret: "s"})

	_, err := client.RefundPayment(context.Background(), &RefundInput{AmountMinor: 100})
	if err == nil {
		t.Fatal("expected error for missing payment ref")
	}
}
