package repository

import (
	"context"
	"database/sql"
	"errors"

	"staff-directory/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrPositionNotFound     = errors.New("position not found")
	ErrUserPositionNotFound = errors.New("user position not found")
	ErrUserPositionForbidden = errors.New("forbidden")
)

type UserPosition struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	PositionID uuid.UUID
	Name       string
}

type UserPositionRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserPosition, error)
	// Add joins the user to an existing master position by name. Unlike
	// skills and projects there is no upsert: unknown names are rejected.
	Add(ctx context.Context, userID uuid.UUID, name string) (UserPosition, error)
	// Delete removes the assignment and garbage-collects the master position
	// row when nothing references it anymore, as one transaction.
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type PostgresUserPositionRepository struct {
	db database.DB
}

func NewPostgresUserPositionRepository(db database.DB) *PostgresUserPositionRepository {
	return &PostgresUserPositionRepository{db: db}
}

func (r *PostgresUserPositionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserPosition, error) {
	return queryUserPositions(ctx, r.db, userID)
}

func (r *PostgresUserPositionRepository) Add(ctx context.Context, userID uuid.UUID, name string) (UserPosition, error) {
	var positionID uuid.UUID
	var positionName string
	row := r.db.QueryRow(ctx, `SELECT id, name FROM positions WHERE name = $1`, name)
	if err := row.Scan(&positionID, &positionName); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return UserPosition{}, ErrPositionNotFound
		}
		return UserPosition{}, err
	}

	up := UserPosition{
		ID:         uuid.New(),
		UserID:     userID,
		PositionID: positionID,
		Name:       positionName,
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_positions (id, user_id, position_id, name)
		 VALUES ($1, $2, $3, $4)`,
		up.ID, up.UserID, up.PositionID, up.Name,
	)
	if err != nil {
		return UserPosition{}, err
	}
	return up, nil
}

func (r *PostgresUserPositionRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var owner, positionID uuid.UUID
	row := tx.QueryRow(ctx, `SELECT user_id, position_id FROM user_positions WHERE id = $1`, id)
	if err := row.Scan(&owner, &positionID); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return ErrUserPositionNotFound
		}
		return err
	}
	if owner != userID {
		return ErrUserPositionForbidden
	}

	if _, err := tx.Exec(ctx, `DELETE FROM user_positions WHERE id = $1`, id); err != nil {
		return err
	}

	var remaining int64
	row = tx.QueryRow(ctx, `SELECT count(*) FROM user_positions WHERE position_id = $1`, positionID)
	if err := row.Scan(&remaining); err != nil {
		return err
	}
	if remaining == 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM positions WHERE id = $1`, positionID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func queryUserPositions(ctx context.Context, db querier, userID uuid.UUID) ([]UserPosition, error) {
	rows, err := db.Query(ctx,
		`SELECT id, user_id, position_id, name
		 FROM user_positions
		 WHERE user_id = $1
		 ORDER BY name ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserPosition, 0)
	for rows.Next() {
		var up UserPosition
		if err := rows.Scan(&up.ID, &up.UserID, &up.PositionID, &up.Name); err != nil {
			return nil, err
		}
		out = append(out, up)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
