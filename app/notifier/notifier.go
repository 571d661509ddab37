package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/courseplatform/ms-go-orders/app/entity"
	"github.com/courseplatform/ms-go-orders/app/types"
	"github.com/courseplatform/ms-go-orders/config"
)

// HTTPNotifier posts a "payment succeeded" notification to the notification
// service. Delivery is best effort; callers log the error and move on. With
// no URL configured every call is a no-op.
type HTTPNotifier struct {
	url    string
	client *http.Client
}

func NewHTTPNotifier(cfg config.NotificationsConfig) *HTTPNotifier {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &HTTPNotifier{
		url:    strings.TrimSpace(cfg.URL),
		client: &http.Client{Timeout: timeout},
	}
}

type notification struct {
	UserID            uint64 `json:"userId"`
	Type              string `json:"type"`
	Subject           string `json:"subject"`
	Message           string `json:"message"`
	RelatedEntityID   uint64 `json:"relatedEntityId"`
	RelatedEntityType string `json:"relatedEntityType"`
}

func (n *HTTPNotifier) PaymentSucceeded(ctx context.Context, order *entity.Order, payment *entity.Payment) error {
	if n.url == "" {
		return nil
	}

	body, err := json.Marshal(&notification{
		UserID:            order.UserID,
		Type:              "PAYMENT",
		Subject:           "Payment successful",
		Message:           fmt.Sprintf("Your payment of %s %s for course %d was successful.", types.MajorUnits(order.AmountCents), order.Currency, order.CourseID),
		RelatedEntityID:   order.CourseID,
		RelatedEntityType: "COURSE",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification endpoint returned status=%d", resp.StatusCode)
	}
	return nil
}
