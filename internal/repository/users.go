package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dev-Mayuresh/resto-mania-backend/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `client_id, name, mail_id, COALESCE(convo_id, ''), created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ClientID,
		&user.Name,
		&user.MailID,
		&user.ConvoID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

func (r *UserRepo) Create(ctx context.Context, clientID, name, mailID string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		INSERT INTO user_details (client_id, name, mail_id)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		clientID, name, mailID,
	))
}

func (r *UserRepo) GetByID(ctx context.Context, clientID string) (models.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM user_details WHERE client_id = $1`,
		clientID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM user_details`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepo) Update(ctx context.Context, clientID, name, mailID string) (models.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, `
		UPDATE user_details
		SET name = $1, mail_id = $2, updated_at = CURRENT_TIMESTAMP
		WHERE client_id = $3
		RETURNING `+userColumns,
		name, mailID, clientID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// SetConversationID records the external conversation correlation key
// for a client. The write is skipped when the stored value already
// matches. Returns true when an update was performed.
func (r *UserRepo) SetConversationID(ctx context.Context, clientID, convoID string) (bool, error) {
	var current string
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(convo_id, '') FROM user_details WHERE client_id = $1`,
		clientID,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrUserNotFound
		}
		return false, err
	}

	if current == convoID {
		return false, nil
	}

	_, err = r.pool.Exec(ctx,
		`UPDATE user_details SET convo_id = $1 WHERE client_id = $2`,
		convoID, clientID,
	)
	if err != nil {
		return false, err
	}
	return true, nil
}
