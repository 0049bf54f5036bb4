package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dev-Mayuresh/resto-mania-backend/internal/models"
)

type BillRepo struct {
	pool *pgxpool.Pool
}

func NewBillRepo(pool *pgxpool.Pool) *BillRepo {
	return &BillRepo{pool: pool}
}

// Create submits a bill request for an order. The order must be
// Active and have at least one Completed session.
func (r *BillRepo) Create(ctx context.Context, orderID string) (models.BillRequest, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return models.BillRequest{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var orderStatus string
	var tableID int
	err = tx.QueryRow(ctx,
		`SELECT order_status, table_id FROM customer_orders WHERE order_id = $1`,
		orderID,
	).Scan(&orderStatus, &tableID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.BillRequest{}, ErrOrderNotFound
		}
		return models.BillRequest{}, fmt.Errorf("check order: %w", err)
	}
	if orderStatus != models.OrderActive {
		return models.BillRequest{}, fmt.Errorf("%w: current status '%s'", ErrOrderNotActive, orderStatus)
	}

	var completed int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM order_sessions WHERE order_id = $1 AND session_status = $2`,
		orderID, models.SessionCompleted,
	).Scan(&completed)
	if err != nil {
		return models.BillRequest{}, fmt.Errorf("count completed sessions: %w", err)
	}
	if completed == 0 {
		return models.BillRequest{}, ErrNoCompletedSession
	}

	var bill models.BillRequest
	err = tx.QueryRow(ctx, `
		INSERT INTO bill_requests (order_id, table_id, bill_status)
		VALUES ($1, $2, $3)
		RETURNING bill_request_id, order_id, table_id, bill_status, requested_at`,
		orderID, tableID, models.BillPending,
	).Scan(
		&bill.BillRequestID,
		&bill.OrderID,
		&bill.TableID,
		&bill.BillStatus,
		&bill.RequestedAt,
	)
	if err != nil {
		return models.BillRequest{}, fmt.Errorf("insert bill request: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.BillRequest{}, fmt.Errorf("commit transaction: %w", err)
	}
	return bill, nil
}

func (r *BillRepo) List(ctx context.Context) ([]models.BillRequest, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT bill_request_id, order_id, table_id, bill_status, requested_at
		FROM bill_requests
		ORDER BY requested_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := []models.BillRequest{}
	for rows.Next() {
		var bill models.BillRequest
		if err := rows.Scan(
			&bill.BillRequestID,
			&bill.OrderID,
			&bill.TableID,
			&bill.BillStatus,
			&bill.RequestedAt,
		); err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, rows.Err()
}

// UpdateStatus sets the bill status for an order's bill request.
func (r *BillRepo) UpdateStatus(ctx context.Context, orderID, status string) (models.BillRequest, error) {
	var bill models.BillRequest
	err := r.pool.QueryRow(ctx, `
		UPDATE bill_requests
		SET bill_status = $1
		WHERE order_id = $2
		RETURNING bill_request_id, order_id, table_id, bill_status, requested_at`,
		status, orderID,
	).Scan(
		&bill.BillRequestID,
		&bill.OrderID,
		&bill.TableID,
		&bill.BillStatus,
		&bill.RequestedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.BillRequest{}, ErrBillNotFound
		}
		return models.BillRequest{}, err
	}
	return bill, nil
}
