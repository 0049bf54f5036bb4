package models

import "time"

// Order statuses.
const (
	OrderProcessing = "Processing"
	OrderActive     = "Active"
	OrderCompleted  = "Completed"
)

// Session statuses.
const (
	SessionPending   = "Pending"
	SessionAccepted  = "Accepted"
	SessionDeclined  = "Declined"
	SessionCancelled = "Cancelled"
	SessionCompleted = "Completed"
)

// Bill request statuses.
const (
	BillPending   = "Pending"
	BillGenerated = "Generated"
)

// Table statuses.
const (
	TableAvailable = "Available"
	TableOccupied  = "Occupied"
)

// ValidSessionStatus reports whether s is an accepted session status.
func ValidSessionStatus(s string) bool {
	switch s {
	case SessionPending, SessionAccepted, SessionDeclined, SessionCancelled, SessionCompleted:
		return true
	}
	return false
}

// ValidTableStatus reports whether s is an accepted table status.
func ValidTableStatus(s string) bool {
	return s == TableAvailable || s == TableOccupied
}

// Order is a customer order. Sessions is populated by the snapshot
// readers; plain CRUD reads leave it nil.
type Order struct {
	OrderID     string    `json:"order_id"`
	ClientID    string    `json:"client_id"`
	TableID     int       `json:"table_id"`
	OrderStatus string    `json:"order_status"`
	OrderDate   time.Time `json:"order_date"`
	UpdatedAt   time.Time `json:"updated_at"`
	Sessions    []Session `json:"sessions"`
}

// Session is one round of ordering under an Order.
type Session struct {
	SessionID     string        `json:"session_id"`
	OrderID       string        `json:"order_id"`
	SessionStart  time.Time     `json:"session_start"`
	SessionStatus string        `json:"session_status"`
	UpdatedAt     time.Time     `json:"updated_at"`
	Items         []SessionItem `json:"items"`
}

// SessionItem is an order line joined with its menu display name.
type SessionItem struct {
	SessionID string `json:"session_id"`
	ItemName  string `json:"item_name"`
	Quantity  int    `json:"quantity"`
}

// OrderDetail is the single-order read shape for the CRUD API.
type OrderDetail struct {
	OrderID     string      `json:"order_id"`
	ClientID    string      `json:"client_id"`
	OrderStatus string      `json:"order_status"`
	Items       []OrderItem `json:"items"`
}

type OrderItem struct {
	MenuItemID int    `json:"menu_item_id"`
	ItemName   string `json:"item_name"`
	Quantity   int    `json:"quantity"`
}

type BillRequest struct {
	BillRequestID int64     `json:"bill_request_id"`
	OrderID       string    `json:"order_id"`
	TableID       int       `json:"table_id"`
	BillStatus    string    `json:"bill_status"`
	RequestedAt   time.Time `json:"requested_at"`
}

// BillRequestView is a bill request joined with its table, as
// broadcast to the front-of-house dashboard.
type BillRequestView struct {
	BillRequestID int64     `json:"bill_request_id"`
	OrderID       string    `json:"order_id"`
	RequestedAt   time.Time `json:"requested_at"`
	BillStatus    string    `json:"bill_status"`
	TableNumber   int       `json:"table_number"`
	TableStatus   string    `json:"table_status"`
}

type Table struct {
	TableID       int    `json:"table_id"`
	TableNumber   int    `json:"table_number"`
	TableStatus   string `json:"table_status"`
	CustomerCount int    `json:"customer_count"`
}

type User struct {
	ClientID  string    `json:"client_id"`
	Name      string    `json:"name"`
	MailID    string    `json:"mail_id"`
	ConvoID   string    `json:"convo_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Feedback struct {
	FeedbackID   int64     `json:"feedback_id"`
	ClientID     string    `json:"client_id"`
	FeedbackText string    `json:"feedback_text"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionStatusRow is the detector's view of a session in a notable
// status, joined through its order to the owning user.
type SessionStatusRow struct {
	SessionID     string
	OrderID       string
	SessionStatus string
	ClientID      string
	ConvoID       string
}

// BillStatusRow is the detector's view of a generated bill request.
type BillStatusRow struct {
	BillRequestID int64
	OrderID       string
	BillStatus    string
	ClientID      string
	ConvoID       string
}
