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

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID             uuid.UUID
	Name           string
	Phone          string
	EmploymentDate *time.Time
	Occupancy      directory.Occupancy
}

// UserWithPositions is the directory list row: the user plus the eagerly
// loaded positions the list view renders.
type UserWithPositions struct {
	User
	Positions []UserPosition
}

// UserProfile is the fully hydrated profile view.
type UserProfile struct {
	User
	Positions []UserPosition
	Skills    []UserSkill
	Projects  []UserProject
	Managers  []User
	Members   []User
}

type UserInfoUpdate struct {
	Phone          string
	EmploymentDate *time.Time
	Occupancy      directory.Occupancy
}

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByName(ctx context.Context, name string) (User, error)
	GetProfile(ctx context.Context, id uuid.UUID) (UserProfile, error)
	ListAll(ctx context.Context) ([]UserWithPositions, error)
	SearchByName(ctx context.Context, query string, excludeID uuid.UUID) ([]User, error)
	UpdateInfo(ctx context.Context, id uuid.UUID, in UserInfoUpdate) (User, error)
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, name, COALESCE(phone, ''), employment_date, occupancy`

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByName(ctx context.Context, name string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE name = $1 ORDER BY id ASC LIMIT 1`, name)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetProfile(ctx context.Context, id uuid.UUID) (UserProfile, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return UserProfile{}, err
	}

	p := UserProfile{User: u}

	p.Positions, err = queryUserPositions(ctx, r.db, id)
	if err != nil {
		return UserProfile{}, err
	}
	p.Skills, err = queryUserSkills(ctx, r.db, id)
	if err != nil {
		return UserProfile{}, err
	}
	p.Projects, err = queryUserProjects(ctx, r.db, id)
	if err != nil {
		return UserProfile{}, err
	}
	p.Managers, err = queryRelatedUsers(ctx, r.db,
		`SELECT `+prefixedUserColumns("x")+`
		 FROM user_managers um
		 JOIN users x ON x.id = um.manager_id
		 WHERE um.member_id = $1
		 ORDER BY x.name ASC, x.id ASC`, id)
	if err != nil {
		return UserProfile{}, err
	}
	p.Members, err = queryRelatedUsers(ctx, r.db,
		`SELECT `+prefixedUserColumns("x")+`
		 FROM user_managers um
		 JOIN users x ON x.id = um.member_id
		 WHERE um.manager_id = $1
		 ORDER BY x.name ASC, x.id ASC`, id)
	if err != nil {
		return UserProfile{}, err
	}

	return p, nil
}

func (r *PostgresUserRepository) ListAll(ctx context.Context) ([]UserWithPositions, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	users, err := collectUsers(rows)
	if err != nil {
		return nil, err
	}
	return attachPositions(ctx, r.db, users)
}

func (r *PostgresUserRepository) SearchByName(ctx context.Context, query string, excludeID uuid.UUID) ([]User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 WHERE name ILIKE '%' || $1 || '%' AND id <> $2
		 ORDER BY name ASC, id ASC`,
		query, excludeID,
	)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *PostgresUserRepository) UpdateInfo(ctx context.Context, id uuid.UUID, in UserInfoUpdate) (User, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE users
		 SET phone = $1, employment_date = $2, occupancy = $3, updated_at = now()
		 WHERE id = $4`,
		in.Phone, in.EmploymentDate, string(in.Occupancy), id,
	)
	if err != nil {
		return User{}, err
	}
	if rowsAffected == 0 {
		return User{}, ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

func scanUser(row database.Row) (User, error) {
	var u User
	var occ string
	if err := row.Scan(&u.ID, &u.Name, &u.Phone, &u.EmploymentDate, &occ); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	u.Occupancy = directory.Occupancy(occ)
	return u, nil
}

func collectUsers(rows database.Rows) ([]User, error) {
	defer rows.Close()

	out := make([]User, 0)
	for rows.Next() {
		var u User
		var occ string
		if err := rows.Scan(&u.ID, &u.Name, &u.Phone, &u.EmploymentDate, &occ); err != nil {
			return nil, err
		}
		u.Occupancy = directory.Occupancy(occ)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func queryRelatedUsers(ctx context.Context, db querier, query string, id uuid.UUID) ([]User, error) {
	rows, err := db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func prefixedUserColumns(alias string) string {
	return alias + `.id, ` + alias + `.name, COALESCE(` + alias + `.phone, ''), ` + alias + `.employment_date, ` + alias + `.occupancy`
}
