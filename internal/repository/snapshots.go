package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dev-Mayuresh/resto-mania-backend/internal/models"
)

// SnapshotRepo serves the read side of the live-update loop: the
// denormalized views the readers broadcast and the joined status rows
// the detectors diff. Reads are not wrapped in a transaction; a view
// assembled from several queries may straddle concurrent writes, and
// the next tick repairs any skew.
type SnapshotRepo struct {
	pool *pgxpool.Pool
}

func NewSnapshotRepo(pool *pgxpool.Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool}
}

// KitchenOrders returns every Processing or Active order, newest
// first, with its sessions and their menu-joined items nested in.
func (r *SnapshotRepo) KitchenOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT order_id, client_id, table_id, order_status, order_date, updated_at
		FROM customer_orders
		WHERE order_status IN ($1, $2)
		ORDER BY order_date DESC`,
		models.OrderProcessing, models.OrderActive,
	)
	if err != nil {
		return nil, err
	}
	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		sessions, err := r.sessionsForOrder(ctx, orders[i].OrderID)
		if err != nil {
			return nil, err
		}
		orders[i].Sessions = sessions
	}
	return orders, nil
}

// PreviousOrders returns orders that have at least one session in a
// terminal status, carrying only those sessions. Orders without a
// qualifying session are absent entirely.
func (r *SnapshotRepo) PreviousOrders(ctx context.Context) ([]models.Order, error) {
	sessRows, err := r.pool.Query(ctx, `
		SELECT session_id, order_id, session_start, session_status, updated_at
		FROM order_sessions
		WHERE session_status IN ($1, $2, $3)`,
		models.SessionCompleted, models.SessionCancelled, models.SessionDeclined,
	)
	if err != nil {
		return nil, err
	}
	sessions, err := scanSessions(sessRows)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return []models.Order{}, nil
	}

	orderIDs := make([]string, 0, len(sessions))
	seen := make(map[string]struct{}, len(sessions))
	sessionIDs := make([]string, 0, len(sessions))
	for _, s := range sessions {
		sessionIDs = append(sessionIDs, s.SessionID)
		if _, ok := seen[s.OrderID]; !ok {
			seen[s.OrderID] = struct{}{}
			orderIDs = append(orderIDs, s.OrderID)
		}
	}

	orderRows, err := r.pool.Query(ctx, `
		SELECT order_id, client_id, table_id, order_status, order_date, updated_at
		FROM customer_orders
		WHERE order_id = ANY($1)
		ORDER BY order_date DESC`,
		orderIDs,
	)
	if err != nil {
		return nil, err
	}
	orders, err := scanOrders(orderRows)
	if err != nil {
		return nil, err
	}

	itemRows, err := r.pool.Query(ctx, `
		SELECT oi.session_id, mi.item_name, oi.quantity
		FROM order_items oi
		JOIN menu_items mi ON oi.menu_item_id = mi.menu_item_id
		WHERE oi.session_id = ANY($1)`,
		sessionIDs,
	)
	if err != nil {
		return nil, err
	}
	items, err := scanSessionItems(itemRows)
	if err != nil {
		return nil, err
	}

	return groupPreviousOrders(orders, sessions, items), nil
}

// PendingBillRequests returns pending bill requests joined with their
// table, newest first. Only Pending requests are broadcast; generated
// bills are no longer the dashboard's concern.
func (r *SnapshotRepo) PendingBillRequests(ctx context.Context) ([]models.BillRequestView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT br.bill_request_id, br.order_id, br.requested_at, br.bill_status,
		       t.table_number, t.table_status
		FROM bill_requests br
		JOIN tables t ON br.table_id = t.table_id
		WHERE br.bill_status = $1
		ORDER BY br.requested_at DESC`,
		models.BillPending,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []models.BillRequestView{}
	for rows.Next() {
		var v models.BillRequestView
		if err := rows.Scan(
			&v.BillRequestID,
			&v.OrderID,
			&v.RequestedAt,
			&v.BillStatus,
			&v.TableNumber,
			&v.TableStatus,
		); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// NotableSessions returns every session currently in a status worth
// notifying about, joined to the client and conversation key.
func (r *SnapshotRepo) NotableSessions(ctx context.Context) ([]models.SessionStatusRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT os.session_id, os.order_id, os.session_status,
		       co.client_id, COALESCE(ud.convo_id, '')
		FROM order_sessions os
		JOIN customer_orders co ON os.order_id = co.order_id
		JOIN user_details ud ON co.client_id = ud.client_id
		WHERE os.session_status IN ($1, $2, $3, $4)`,
		models.SessionAccepted, models.SessionDeclined,
		models.SessionCompleted, models.SessionCancelled,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SessionStatusRow
	for rows.Next() {
		var row models.SessionStatusRow
		if err := rows.Scan(
			&row.SessionID,
			&row.OrderID,
			&row.SessionStatus,
			&row.ClientID,
			&row.ConvoID,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GeneratedBills returns bill requests whose status is Generated,
// joined to the client and conversation key.
func (r *SnapshotRepo) GeneratedBills(ctx context.Context) ([]models.BillStatusRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT br.bill_request_id, br.order_id, br.bill_status,
		       co.client_id, COALESCE(ud.convo_id, '')
		FROM bill_requests br
		JOIN customer_orders co ON br.order_id = co.order_id
		JOIN user_details ud ON co.client_id = ud.client_id
		WHERE br.bill_status = $1`,
		models.BillGenerated,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.BillStatusRow
	for rows.Next() {
		var row models.BillStatusRow
		if err := rows.Scan(
			&row.BillRequestID,
			&row.OrderID,
			&row.BillStatus,
			&row.ClientID,
			&row.ConvoID,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SnapshotRepo) sessionsForOrder(ctx context.Context, orderID string) ([]models.Session, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT session_id, order_id, session_start, session_status, updated_at
		FROM order_sessions
		WHERE order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	sessions, err := scanSessions(rows)
	if err != nil {
		return nil, err
	}

	for i := range sessions {
		itemRows, err := r.pool.Query(ctx, `
			SELECT oi.session_id, mi.item_name, oi.quantity
			FROM order_items oi
			JOIN menu_items mi ON oi.menu_item_id = mi.menu_item_id
			WHERE oi.session_id = $1`,
			sessions[i].SessionID,
		)
		if err != nil {
			return nil, err
		}
		items, err := scanSessionItems(itemRows)
		if err != nil {
			return nil, err
		}
		sessions[i].Items = items
	}
	return sessions, nil
}
