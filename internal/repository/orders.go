package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dev-Mayuresh/resto-mania-backend/internal/models"
)

// Tables with fewer than this many customers still admit new orders.
// The limit is four seats per table.
const maxTableCustomers = 4

type OrderRepo struct {
	pool *pgxpool.Pool
}

func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// OrderLine is one requested item in a new order, referenced by its
// menu display name.
type OrderLine struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// CreateOrderParams carries a new order request. OrderID and SessionID
// are caller-supplied; creation is idempotent on both.
type CreateOrderParams struct {
	OrderID   string      `json:"order_id"`
	ClientID  string      `json:"client_id"`
	TableID   int         `json:"table_id"`
	SessionID string      `json:"session_id"`
	Items     []OrderLine `json:"items"`
}

// Create places a new order: it gates on table occupancy, inserts the
// order and session records (no-ops if they already exist), resolves
// menu item names to ids and inserts the order lines. The whole write
// runs in one transaction.
func (r *OrderRepo) Create(ctx context.Context, p CreateOrderParams) ([]models.OrderItem, error) {
	if len(p.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var tableStatus string
	var customerCount int
	err = tx.QueryRow(ctx,
		`SELECT table_status, customer_count FROM tables WHERE table_id = $1`,
		p.TableID,
	).Scan(&tableStatus, &customerCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("check table: %w", err)
	}

	if tableStatus != models.TableAvailable && customerCount >= maxTableCustomers {
		return nil, ErrTableFull
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO customer_orders (order_id, client_id, table_id, order_status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (order_id) DO NOTHING`,
		p.OrderID, p.ClientID, p.TableID, models.OrderProcessing,
	)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO order_sessions (session_id, order_id, session_status)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id) DO NOTHING`,
		p.SessionID, p.OrderID, models.SessionPending,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	menuIDs, err := resolveMenuItems(ctx, tx, p.Items)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(p.Items))
	for _, line := range p.Items {
		id := menuIDs[line.ItemName]
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, quantity, session_id)
			VALUES ($1, $2, $3, $4)`,
			p.OrderID, id, line.Quantity, p.SessionID,
		)
		if err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
		items = append(items, models.OrderItem{
			MenuItemID: id,
			ItemName:   line.ItemName,
			Quantity:   line.Quantity,
		})
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return items, nil
}

func resolveMenuItems(ctx context.Context, tx pgx.Tx, lines []OrderLine) (map[string]int, error) {
	names := make([]string, 0, len(lines))
	for _, line := range lines {
		names = append(names, line.ItemName)
	}

	rows, err := tx.Query(ctx,
		`SELECT menu_item_id, item_name FROM menu_items WHERE item_name = ANY($1)`,
		names,
	)
	if err != nil {
		return nil, fmt.Errorf("resolve menu items: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]int)
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		ids[name] = id
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, line := range lines {
		if _, ok := ids[line.ItemName]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMenuItem, line.ItemName)
		}
	}
	return ids, nil
}

// GetByID returns an order with its lines joined against the menu.
func (r *OrderRepo) GetByID(ctx context.Context, orderID string) (models.OrderDetail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT co.order_id, co.client_id, co.order_status,
		       oi.menu_item_id, mi.item_name, oi.quantity
		FROM customer_orders co
		JOIN order_items oi ON co.order_id = oi.order_id
		JOIN menu_items mi ON oi.menu_item_id = mi.menu_item_id
		WHERE co.order_id = $1`,
		orderID,
	)
	if err != nil {
		return models.OrderDetail{}, err
	}
	defer rows.Close()

	var detail models.OrderDetail
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(
			&detail.OrderID,
			&detail.ClientID,
			&detail.OrderStatus,
			&item.MenuItemID,
			&item.ItemName,
			&item.Quantity,
		); err != nil {
			return models.OrderDetail{}, err
		}
		detail.Items = append(detail.Items, item)
	}
	if err := rows.Err(); err != nil {
		return models.OrderDetail{}, err
	}
	if len(detail.Items) == 0 {
		return models.OrderDetail{}, ErrOrderNotFound
	}
	return detail, nil
}

// UpdateStatus sets an order's status and bumps updated_at.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID, status string) (models.Order, error) {
	var order models.Order
	err := r.pool.QueryRow(ctx, `
		UPDATE customer_orders
		SET order_status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE order_id = $2
		RETURNING order_id, client_id, table_id, order_status, order_date, updated_at`,
		status, orderID,
	).Scan(
		&order.OrderID,
		&order.ClientID,
		&order.TableID,
		&order.OrderStatus,
		&order.OrderDate,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}
	return order, nil
}

// UpdateSessionStatus transitions a session. A session that is already
// Accepted, Declined or Completed may not move into Cancelled.
func (r *OrderRepo) UpdateSessionStatus(ctx context.Context, orderID, sessionID, status string) (models.Session, error) {
	if !models.ValidSessionStatus(status) {
		return models.Session{}, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	var current string
	err := r.pool.QueryRow(ctx,
		`SELECT session_status FROM order_sessions WHERE order_id = $1 AND session_id = $2`,
		orderID, sessionID,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		return models.Session{}, err
	}

	if status == models.SessionCancelled {
		switch current {
		case models.SessionAccepted, models.SessionDeclined, models.SessionCompleted:
			return models.Session{}, fmt.Errorf("%w: session is already '%s'", ErrCancelNotAllowed, current)
		}
	}

	var session models.Session
	err = r.pool.QueryRow(ctx, `
		UPDATE order_sessions
		SET session_status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE order_id = $2 AND session_id = $3
		RETURNING session_id, order_id, session_start, session_status, updated_at`,
		status, orderID, sessionID,
	).Scan(
		&session.SessionID,
		&session.OrderID,
		&session.SessionStart,
		&session.SessionStatus,
		&session.UpdatedAt,
	)
	if err != nil {
		return models.Session{}, err
	}
	return session, nil
}
