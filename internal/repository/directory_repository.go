package repository

import (
	"context"
	"strconv"

	"staff-directory/internal/database"
	"staff-directory/internal/directory"

	"github.com/google/uuid"
)

// DirectoryRepository runs the filtered, paginated directory query.
type DirectoryRepository interface {
	// FilterUsers executes the count and the slice for one predicate inside a
	// single repeatable-read transaction, so totalPages can never disagree
	// with the returned rows. Returned users carry their positions.
	FilterUsers(ctx context.Context, pred directory.Predicate, limit, offset int) ([]UserWithPositions, int64, error)
}

type PostgresDirectoryRepository struct {
	db database.DB
}

func NewPostgresDirectoryRepository(db database.DB) *PostgresDirectoryRepository {
	return &PostgresDirectoryRepository{db: db}
}

func (r *PostgresDirectoryRepository) FilterUsers(ctx context.Context, pred directory.Predicate, limit, offset int) ([]UserWithPositions, int64, error) {
	where, args, err := directory.CompileWhere(pred)
	if err != nil {
		return nil, 0, err
	}

	tx, err := r.db.BeginSnapshot(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var total int64
	row := tx.QueryRow(ctx, `SELECT count(*) FROM users u WHERE `+where, args...)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	sliceArgs := append(append([]any{}, args...), limit, offset)
	n := len(args)
	rows, err := tx.Query(ctx,
		`SELECT `+prefixedUserColumns("u")+`
		 FROM users u
		 WHERE `+where+`
		 ORDER BY u.name ASC, u.id ASC
		 LIMIT $`+strconv.Itoa(n+1)+` OFFSET $`+strconv.Itoa(n+2),
		sliceArgs...,
	)
	if err != nil {
		return nil, 0, err
	}
	users, err := collectUsers(rows)
	if err != nil {
		return nil, 0, err
	}

	hydrated, err := attachPositions(ctx, tx, users)
	if err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}
	return hydrated, total, nil
}

// attachPositions loads the positions of every given user in one query and
// distributes them, preserving per-user name order.
func attachPositions(ctx context.Context, db querier, users []User) ([]UserWithPositions, error) {
	out := make([]UserWithPositions, 0, len(users))
	if len(users) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	rows, err := db.Query(ctx,
		`SELECT id, user_id, position_id, name
		 FROM user_positions
		 WHERE user_id = ANY($1)
		 ORDER BY name ASC, id ASC`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byUser := make(map[uuid.UUID][]UserPosition, len(users))
	for rows.Next() {
		var up UserPosition
		if err := rows.Scan(&up.ID, &up.UserID, &up.PositionID, &up.Name); err != nil {
			return nil, err
		}
		byUser[up.UserID] = append(byUser[up.UserID], up)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, u := range users {
		positions := byUser[u.ID]
		if positions == nil {
			positions = make([]UserPosition, 0)
		}
		out = append(out, UserWithPositions{User: u, Positions: positions})
	}
	return out, nil
}
