package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"staff-directory/internal/database"
	"staff-directory/internal/directory"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrUserSkillNotFound  = errors.New("user skill not found")
	ErrUserSkillForbidden = errors.New("forbidden")
)

type UserSkill struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	SkillID   uuid.UUID
	Name      string
	Rating    int
	CreatedAt time.Time
}

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkill, error)
	// Add upserts the master skill row by name and creates the join row with
	// the default rating, as one transaction.
	Add(ctx context.Context, userID uuid.UUID, name string) (UserSkill, error)
	// Delete removes the join row and garbage-collects the master skill row
	// when no other join references it, as one transaction.
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	UpdateRating(ctx context.Context, id uuid.UUID, userID uuid.UUID, rating int) (UserSkill, error)
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkill, error) {
	return queryUserSkills(ctx, r.db, userID)
}

func (r *PostgresUserSkillRepository) Add(ctx context.Context, userID uuid.UUID, name string) (UserSkill, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return UserSkill{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var skillID uuid.UUID
	var skillName string
	row := tx.QueryRow(ctx,
		`INSERT INTO skills (id, name) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id, name`,
		uuid.New(), name,
	)
	if err := row.Scan(&skillID, &skillName); err != nil {
		return UserSkill{}, err
	}

	us := UserSkill{
		ID:      uuid.New(),
		UserID:  userID,
		SkillID: skillID,
		Name:    skillName,
		Rating:  directory.DefaultRating,
	}
	row = tx.QueryRow(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, name, rating)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		us.ID, us.UserID, us.SkillID, us.Name, us.Rating,
	)
	if err := row.Scan(&us.CreatedAt); err != nil {
		return UserSkill{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return UserSkill{}, err
	}
	return us, nil
}

func (r *PostgresUserSkillRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var owner, skillID uuid.UUID
	row := tx.QueryRow(ctx, `SELECT user_id, skill_id FROM user_skills WHERE id = $1`, id)
	if err := row.Scan(&owner, &skillID); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return ErrUserSkillNotFound
		}
		return err
	}
	if owner != userID {
		return ErrUserSkillForbidden
	}

	if _, err := tx.Exec(ctx, `DELETE FROM user_skills WHERE id = $1`, id); err != nil {
		return err
	}

	// Master rows never accumulate orphans: drop the skill when the last
	// referencing join row is gone.
	var remaining int64
	row = tx.QueryRow(ctx, `SELECT count(*) FROM user_skills WHERE skill_id = $1`, skillID)
	if err := row.Scan(&remaining); err != nil {
		return err
	}
	if remaining == 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM skills WHERE id = $1`, skillID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresUserSkillRepository) UpdateRating(ctx context.Context, id uuid.UUID, userID uuid.UUID, rating int) (UserSkill, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE user_skills SET rating = $1 WHERE id = $2 AND user_id = $3`,
		rating, id, userID,
	)
	if err != nil {
		return UserSkill{}, err
	}
	if rowsAffected == 0 {
		return UserSkill{}, ErrUserSkillNotFound
	}

	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, skill_id, name, rating, created_at
		 FROM user_skills WHERE id = $1`,
		id,
	)
	var us UserSkill
	if err := row.Scan(&us.ID, &us.UserID, &us.SkillID, &us.Name, &us.Rating, &us.CreatedAt); err != nil {
		return UserSkill{}, err
	}
	return us, nil
}

func queryUserSkills(ctx context.Context, db querier, userID uuid.UUID) ([]UserSkill, error) {
	rows, err := db.Query(ctx,
		`SELECT id, user_id, skill_id, name, rating, created_at
		 FROM user_skills
		 WHERE user_id = $1
		 ORDER BY name ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserSkill, 0)
	for rows.Next() {
		var us UserSkill
		if err := rows.Scan(&us.ID, &us.UserID, &us.SkillID, &us.Name, &us.Rating, &us.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
