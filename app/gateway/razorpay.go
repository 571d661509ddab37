package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type RazorpayConfig struct {
	KeyID       string
	KeySecret   string
	BaseURL     string
	HTTPTimeout time.Duration
}

type RazorpayClient struct {
	cfg    RazorpayConfig
	client *http.Client
}

func NewRazorpayClient(cfg RazorpayConfig) *RazorpayClient {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.razorpay.com"
	}

	return &RazorpayClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *RazorpayClient) KeyID() string {
	return c.cfg.KeyID
}

func (c *RazorpayClient) CreateOrder(ctx context.Context, input *CreateOrderInput) (*CreateOrderOutput, error) {
	if strings.TrimSpace(c.cfg.KeySecret) == "" {
		return nil, errors.New("razorpay key secret is not configured")
	}

	capture := 0
	if input.PaymentCapture {
		capture = 1
	}

	body, err := c.postJSON(ctx, "/v1/orders", map[string]interface{}{
		"amount":          input.AmountMinor,
		"currency":        strings.ToUpper(strings.TrimSpace(input.Currency)),
		"receipt":         input.Receipt,
		"payment_capture": capture,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("razorpay order response decode failed: %w", err)
	}
	if strings.TrimSpace(payload.ID) == "" {
		return nil, errors.New("razorpay order id missing")
	}

	return &CreateOrderOutput{ExternalOrderID: strings.TrimSpace(payload.ID)}, nil
}

func (c *RazorpayClient) RefundPayment(ctx context.Context, input *RefundInput) (*RefundOutput, error) {
	paymentRef := strings.TrimSpace(input.PaymentRef)
	if paymentRef == "" {
		return nil, errors.New("payment ref is required for refund")
	}

	body, err := c.postJSON(ctx, "/v1/payments/"+url.PathEscape(paymentRef)+"/refund", map[string]interface{}{
		"amount": input.AmountMinor,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("razorpay refund response decode failed: %w", err)
	}

	return &RefundOutput{RefundID: strings.TrimSpace(payload.ID)}, nil
}

func (c *RazorpayClient) postJSON(ctx context.Context, path string, payload map[string]interface{}) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay request failed: path=%s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("razorpay request failed: path=%s status=%d body=%s", path, resp.StatusCode, string(body))
	}

	return body, nil
}
