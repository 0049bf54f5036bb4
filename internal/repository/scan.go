package repository

import (
	"github.com/jackc/pgx/v5"

	"github.com/Dev-Mayuresh/resto-mania-backend/internal/models"
)

func scanOrders(rows pgx.Rows) ([]models.Order, error) {
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(
			&o.OrderID,
			&o.ClientID,
			&o.TableID,
			&o.OrderStatus,
			&o.OrderDate,
			&o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func scanSessions(rows pgx.Rows) ([]models.Session, error) {
	defer rows.Close()

	sessions := []models.Session{}
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(
			&s.SessionID,
			&s.OrderID,
			&s.SessionStart,
			&s.SessionStatus,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func scanSessionItems(rows pgx.Rows) ([]models.SessionItem, error) {
	defer rows.Close()

	items := []models.SessionItem{}
	for rows.Next() {
		var it models.SessionItem
		if err := rows.Scan(&it.SessionID, &it.ItemName, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// groupPreviousOrders nests terminal-status sessions (with their
// items) under their parent orders, preserving order ordering.
func groupPreviousOrders(orders []models.Order, sessions []models.Session, items []models.SessionItem) []models.Order {
	itemsBySession := make(map[string][]models.SessionItem, len(sessions))
	for _, it := range items {
		itemsBySession[it.SessionID] = append(itemsBySession[it.SessionID], it)
	}

	sessionsByOrder := make(map[string][]models.Session, len(orders))
	for _, s := range sessions {
		if nested, ok := itemsBySession[s.SessionID]; ok {
			s.Items = nested
		} else {
			s.Items = []models.SessionItem{}
		}
		sessionsByOrder[s.OrderID] = append(sessionsByOrder[s.OrderID], s)
	}

	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		nested, ok := sessionsByOrder[o.OrderID]
		if !ok {
			continue
		}
		o.Sessions = nested
		out = append(out, o)
	}
	return out
}
