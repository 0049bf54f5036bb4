package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dev-Mayuresh/resto-mania-backend/internal/models"
)

type TableRepo struct {
	pool *pgxpool.Pool
}

func NewTableRepo(pool *pgxpool.Pool) *TableRepo {
	return &TableRepo{pool: pool}
}

// UpdateStatus marks a table Available or Occupied.
func (r *TableRepo) UpdateStatus(ctx context.Context, tableID int, status string) (models.Table, error) {
	if !models.ValidTableStatus(status) {
		return models.Table{}, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	var table models.Table
	err := r.pool.QueryRow(ctx, `
		UPDATE tables
		SET table_status = $1
		WHERE table_id = $2
		RETURNING table_id, table_number, table_status, customer_count`,
		status, tableID,
	).Scan(
		&table.TableID,
		&table.TableNumber,
		&table.TableStatus,
		&table.CustomerCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Table{}, ErrTableNotFound
		}
		return models.Table{}, err
	}
	return table, nil
}

func (r *TableRepo) List(ctx context.Context) ([]models.Table, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT table_id, table_number, table_status, customer_count
		FROM tables
		ORDER BY table_number`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := []models.Table{}
	for rows.Next() {
		var table models.Table
		if err := rows.Scan(
			&table.TableID,
			&table.TableNumber,
			&table.TableStatus,
			&table.CustomerCount,
		); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, rows.Err()
}
