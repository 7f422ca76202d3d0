package repository

import (
	"context"
	"errors"

	"staff-directory/internal/database"

	"github.com/google/uuid"
)

var (
	ErrManagerLinkNotFound = errors.New("manager link not found")
	ErrSelfManagement      = errors.New("user cannot manage themselves")
)

// ManagerRepository operates on the single user_managers relation table.
// Both read directions (a user's managers, a user's members) are explicit
// queries over the same rows, so the relation is symmetric by construction:
// one inserted row is visible from both sides, one deleted row removes both.
type ManagerRepository interface {
	Connect(ctx context.Context, managerID uuid.UUID, memberID uuid.UUID) error
	Disconnect(ctx context.Context, managerID uuid.UUID, memberID uuid.UUID) error
	ManagersOf(ctx context.Context, userID uuid.UUID) ([]User, error)
	MembersOf(ctx context.Context, userID uuid.UUID) ([]User, error)
	// AllManagers lists every user that has at least one member.
	AllManagers(ctx context.Context) ([]User, error)
}

type PostgresManagerRepository struct {
	db database.DB
}

func NewPostgresManagerRepository(db database.DB) *PostgresManagerRepository {
	return &PostgresManagerRepository{db: db}
}

func (r *PostgresManagerRepository) Connect(ctx context.Context, managerID uuid.UUID, memberID uuid.UUID) error {
	if managerID == memberID {
		return ErrSelfManagement
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_managers (manager_id, member_id)
		 VALUES ($1, $2)
		 ON CONFLICT (manager_id, member_id) DO NOTHING`,
		managerID, memberID,
	)
	return err
}

func (r *PostgresManagerRepository) Disconnect(ctx context.Context, managerID uuid.UUID, memberID uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx,
		`DELETE FROM user_managers WHERE manager_id = $1 AND member_id = $2`,
		managerID, memberID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrManagerLinkNotFound
	}
	return nil
}

func (r *PostgresManagerRepository) ManagersOf(ctx context.Context, userID uuid.UUID) ([]User, error) {
	return queryRelatedUsers(ctx, r.db,
		`SELECT `+prefixedUserColumns("x")+`
		 FROM user_managers um
		 JOIN users x ON x.id = um.manager_id
		 WHERE um.member_id = $1
		 ORDER BY x.name ASC, x.id ASC`, userID)
}

func (r *PostgresManagerRepository) MembersOf(ctx context.Context, userID uuid.UUID) ([]User, error) {
	return queryRelatedUsers(ctx, r.db,
		`SELECT `+prefixedUserColumns("x")+`
		 FROM user_managers um
		 JOIN users x ON x.id = um.member_id
		 WHERE um.manager_id = $1
		 ORDER BY x.name ASC, x.id ASC`, userID)
}

func (r *PostgresManagerRepository) AllManagers(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users u
		 WHERE EXISTS (SELECT 1 FROM user_managers um WHERE um.manager_id = u.id)
		 ORDER BY name ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}
