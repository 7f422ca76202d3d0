package repository

import (
	"context"
	"errors"

	"staff-directory/internal/database"

	"github.com/google/uuid"
)

var (
	ErrFacetNotFound = errors.New("facet value not found")
	ErrFacetInUse    = errors.New("facet value is in use")
)

// FacetValue is a master lookup row (skill, project or position name).
type FacetValue struct {
	ID   uuid.UUID
	Name string
}

// FacetRepository supplies the distinct value sets behind the filter widgets
// and the upsert-by-name create used when a user adds a shared value.
type FacetRepository interface {
	AllSkills(ctx context.Context) ([]FacetValue, error)
	AllProjects(ctx context.Context) ([]FacetValue, error)
	AllPositions(ctx context.Context) ([]FacetValue, error)

	SearchSkills(ctx context.Context, query string) ([]FacetValue, error)
	SearchProjects(ctx context.Context, query string) ([]FacetValue, error)
	SearchPositions(ctx context.Context, query string) ([]FacetValue, error)

	CreatePosition(ctx context.Context, name string) (FacetValue, error)
	// DeleteSkill removes a master skill row; it fails with ErrFacetInUse
	// while any user still holds the skill.
	DeleteSkill(ctx context.Context, id uuid.UUID) error
}

type PostgresFacetRepository struct {
	db database.DB
}

func NewPostgresFacetRepository(db database.DB) *PostgresFacetRepository {
	return &PostgresFacetRepository{db: db}
}

func (r *PostgresFacetRepository) AllSkills(ctx context.Context) ([]FacetValue, error) {
	return r.listAll(ctx, "skills")
}

func (r *PostgresFacetRepository) AllProjects(ctx context.Context) ([]FacetValue, error) {
	return r.listAll(ctx, "projects")
}

func (r *PostgresFacetRepository) AllPositions(ctx context.Context) ([]FacetValue, error) {
	return r.listAll(ctx, "positions")
}

func (r *PostgresFacetRepository) SearchSkills(ctx context.Context, query string) ([]FacetValue, error) {
	return r.search(ctx, "skills", query)
}

func (r *PostgresFacetRepository) SearchProjects(ctx context.Context, query string) ([]FacetValue, error) {
	return r.search(ctx, "projects", query)
}

func (r *PostgresFacetRepository) SearchPositions(ctx context.Context, query string) ([]FacetValue, error) {
	return r.search(ctx, "positions", query)
}

func (r *PostgresFacetRepository) CreatePosition(ctx context.Context, name string) (FacetValue, error) {
	// Upsert-by-name: creating an existing value hands back the existing row
	// instead of erroring, so shared values never collide.
	row := r.db.QueryRow(ctx,
		`INSERT INTO positions (id, name) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id, name`,
		uuid.New(), name,
	)
	var fv FacetValue
	if err := row.Scan(&fv.ID, &fv.Name); err != nil {
		return FacetValue{}, err
	}
	return fv, nil
}

func (r *PostgresFacetRepository) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	var referenced bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM user_skills WHERE skill_id = $1)`, id)
	if err := row.Scan(&referenced); err != nil {
		return err
	}
	if referenced {
		return ErrFacetInUse
	}

	rowsAffected, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrFacetNotFound
	}
	return nil
}

// table names here are the fixed identifiers above, never caller input.
func (r *PostgresFacetRepository) listAll(ctx context.Context, table string) ([]FacetValue, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM `+table+` ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	return collectFacetValues(rows)
}

func (r *PostgresFacetRepository) search(ctx context.Context, table string, query string) ([]FacetValue, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name FROM `+table+` WHERE name ILIKE '%' || $1 || '%' ORDER BY name ASC`,
		query,
	)
	if err != nil {
		return nil, err
	}
	return collectFacetValues(rows)
}

func collectFacetValues(rows database.Rows) ([]FacetValue, error) {
	defer rows.Close()

	out := make([]FacetValue, 0)
	for rows.Next() {
		var fv FacetValue
		if err := rows.Scan(&fv.ID, &fv.Name); err != nil {
			return nil, err
		}
		out = append(out, fv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
