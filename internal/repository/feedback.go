package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dev-Mayuresh/resto-mania-backend/internal/models"
)

type FeedbackRepo struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepo(pool *pgxpool.Pool) *FeedbackRepo {
	return &FeedbackRepo{pool: pool}
}

func (r *FeedbackRepo) Add(ctx context.Context, clientID, text string) (models.Feedback, error) {
	var fb models.Feedback
	err := r.pool.QueryRow(ctx, `
		INSERT INTO feedback (client_id, feedback_text, created_at)
		VALUES ($1, $2, NOW())
		RETURNING feedback_id, client_id, feedback_text, created_at`,
		clientID, text,
	).Scan(&fb.FeedbackID, &fb.ClientID, &fb.FeedbackText, &fb.CreatedAt)
	return fb, err
}

func (r *FeedbackRepo) List(ctx context.Context) ([]models.Feedback, error) {
	return r.queryFeedback(ctx,
		`SELECT feedback_id, client_id, feedback_text, created_at
		 FROM feedback ORDER BY created_at DESC`,
	)
}

func (r *FeedbackRepo) ListByClient(ctx context.Context, clientID string) ([]models.Feedback, error) {
	return r.queryFeedback(ctx,
		`SELECT feedback_id, client_id, feedback_text, created_at
		 FROM feedback WHERE client_id = $1 ORDER BY created_at DESC`,
		clientID,
	)
}

func (r *FeedbackRepo) Delete(ctx context.Context, feedbackID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM feedback WHERE feedback_id = $1`, feedbackID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFeedbackNotFound
	}
	return nil
}

func (r *FeedbackRepo) queryFeedback(ctx context.Context, sql string, args ...any) ([]models.Feedback, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Feedback{}
	for rows.Next() {
		var fb models.Feedback
		if err := rows.Scan(&fb.FeedbackID, &fb.ClientID, &fb.FeedbackText, &fb.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, fb)
	}
	return out, rows.Err()
}
