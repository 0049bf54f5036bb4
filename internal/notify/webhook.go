package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// WebhookNotifier POSTs events as JSON to per-event-type endpoints.
type WebhookNotifier struct {
	client   *http.Client
	orderURL string
	billURL  string
	log      *logrus.Entry
}

func NewWebhookNotifier(orderURL, billURL string, log *logrus.Entry) *WebhookNotifier {
	return &WebhookNotifier{
		client:   &http.Client{Timeout: 10 * time.Second},
		orderURL: orderURL,
		billURL:  billURL,
		log:      log,
	}
}

func (n *WebhookNotifier) NotifyOrderUpdate(ctx context.Context, ev OrderUpdate) error {
	ev.Type = TypeOrderUpdate
	return n.post(ctx, n.orderURL, ev)
}

func (n *WebhookNotifier) NotifyBillUpdate(ctx context.Context, ev BillUpdate) error {
	ev.Type = TypeBillUpdate
	return n.post(ctx, n.billURL, ev)
}

func (n *WebhookNotifier) post(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook post: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook post: unexpected status %d", resp.StatusCode)
	}

	n.log.WithField("url", url).Debug("webhook delivered")
	return nil
}
