// Package notify delivers change events to the external consumer that
// drives customer-facing chat updates. Delivery is fire-and-forget:
// the caller logs failures and moves on, there is no retry or queue.
package notify

import "context"

const (
	TypeOrderUpdate = "order_update"
	TypeBillUpdate  = "bill_update"
)

// OrderUpdate announces a session status transition.
type OrderUpdate struct {
	ClientID       string `json:"clientId"`
	OrderID        string `json:"orderId"`
	SessionID      string `json:"sessionId"`
	NewStatus      string `json:"newStatus"`
	Type           string `json:"type"`
	ConversationID string `json:"conversationId"`
}

// BillUpdate announces a bill request reaching Generated.
type BillUpdate struct {
	OrderID        string `json:"orderId"`
	BillRequestID  int64  `json:"billRequestId"`
	NewStatus      string `json:"newStatus"`
	ClientID       string `json:"clientId"`
	ConversationID string `json:"conversationId"`
	Type           string `json:"type"`
}

// Notifier is the outbound notification capability injected into the
// status detectors.
type Notifier interface {
	NotifyOrderUpdate(ctx context.Context, ev OrderUpdate) error
	NotifyBillUpdate(ctx context.Context, ev BillUpdate) error
}
