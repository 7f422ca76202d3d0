package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"staff-directory/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrUserProjectNotFound  = errors.New("user project not found")
	ErrUserProjectForbidden = errors.New("forbidden")
)

type UserProject struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ProjectID   uuid.UUID
	Name        string
	Description string
	StartDate   time.Time
	EndDate     *time.Time
}

type UserProjectUpdate struct {
	Description string
	StartDate   time.Time
	EndDate     *time.Time
}

type UserProjectRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserProject, error)
	FindByProjectAndUser(ctx context.Context, projectID uuid.UUID, userID uuid.UUID) (UserProject, error)
	// Add upserts the master project row by name and creates the assignment,
	// as one transaction.
	Add(ctx context.Context, userID uuid.UUID, name string, in UserProjectUpdate) (UserProject, error)
	Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, in UserProjectUpdate) (UserProject, error)
	// Delete removes the assignment and garbage-collects the master project
	// row when nothing references it anymore, as one transaction.
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type PostgresUserProjectRepository struct {
	db database.DB
}

func NewPostgresUserProjectRepository(db database.DB) *PostgresUserProjectRepository {
	return &PostgresUserProjectRepository{db: db}
}

const userProjectColumns = `id, user_id, project_id, name, COALESCE(description, ''), start_date, end_date`

func (r *PostgresUserProjectRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserProject, error) {
	return queryUserProjects(ctx, r.db, userID)
}

func (r *PostgresUserProjectRepository) FindByProjectAndUser(ctx context.Context, projectID uuid.UUID, userID uuid.UUID) (UserProject, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userProjectColumns+` FROM user_projects WHERE project_id = $1 AND user_id = $2`,
		projectID, userID,
	)
	return scanUserProject(row)
}

func (r *PostgresUserProjectRepository) Add(ctx context.Context, userID uuid.UUID, name string, in UserProjectUpdate) (UserProject, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return UserProject{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var projectID uuid.UUID
	var projectName string
	row := tx.QueryRow(ctx,
		`INSERT INTO projects (id, name) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id, name`,
		uuid.New(), name,
	)
	if err := row.Scan(&projectID, &projectName); err != nil {
		return UserProject{}, err
	}

	up := UserProject{
		ID:          uuid.New(),
		UserID:      userID,
		ProjectID:   projectID,
		Name:        projectName,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO user_projects (id, user_id, project_id, name, description, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		up.ID, up.UserID, up.ProjectID, up.Name, up.Description, up.StartDate, up.EndDate,
	)
	if err != nil {
		return UserProject{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return UserProject{}, err
	}
	return up, nil
}

func (r *PostgresUserProjectRepository) Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, in UserProjectUpdate) (UserProject, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE user_projects
		 SET description = $1, start_date = $2, end_date = $3
		 WHERE id = $4 AND user_id = $5`,
		in.Description, in.StartDate, in.EndDate, id, userID,
	)
	if err != nil {
		return UserProject{}, err
	}
	if rowsAffected == 0 {
		return UserProject{}, ErrUserProjectNotFound
	}

	row := r.db.QueryRow(ctx, `SELECT `+userProjectColumns+` FROM user_projects WHERE id = $1`, id)
	return scanUserProject(row)
}

func (r *PostgresUserProjectRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var owner, projectID uuid.UUID
	row := tx.QueryRow(ctx, `SELECT user_id, project_id FROM user_projects WHERE id = $1`, id)
	if err := row.Scan(&owner, &projectID); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return ErrUserProjectNotFound
		}
		return err
	}
	if owner != userID {
		return ErrUserProjectForbidden
	}

	if _, err := tx.Exec(ctx, `DELETE FROM user_projects WHERE id = $1`, id); err != nil {
		return err
	}

	var remaining int64
	row = tx.QueryRow(ctx, `SELECT count(*) FROM user_projects WHERE project_id = $1`, projectID)
	if err := row.Scan(&remaining); err != nil {
		return err
	}
	if remaining == 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM projects WHERE id = $1`, projectID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func scanUserProject(row database.Row) (UserProject, error) {
	var up UserProject
	if err := row.Scan(&up.ID, &up.UserID, &up.ProjectID, &up.Name, &up.Description, &up.StartDate, &up.EndDate); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return UserProject{}, ErrUserProjectNotFound
		}
		return UserProject{}, err
	}
	return up, nil
}

func queryUserProjects(ctx context.Context, db querier, userID uuid.UUID) ([]UserProject, error) {
	rows, err := db.Query(ctx,
		`SELECT `+userProjectColumns+`
		 FROM user_projects
		 WHERE user_id = $1
		 ORDER BY start_date DESC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserProject, 0)
	for rows.Next() {
		var up UserProject
		if err := rows.Scan(&up.ID, &up.UserID, &up.ProjectID, &up.Name, &up.Description, &up.StartDate, &up.EndDate); err != nil {
			return nil, err
		}
		out = append(out, up)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
