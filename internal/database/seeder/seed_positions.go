package seeder

import (
	"context"
	"fmt"

	"staff-directory/internal/database"
)

// PositionsSeeder provides the baseline position catalog. Position masters
// are never created from profile edits, so a fresh database needs this set
// before anyone can join one.
type PositionsSeeder struct{}

func (PositionsSeeder) Name() string { return "positions" }

func (PositionsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "positions", "id", "name", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	names := []string{
		"Software Engineer",
		"Frontend Engineer",
		"Backend Engineer",
		"QA Engineer",
		"DevOps Engineer",
		"Product Manager",
		"Project Manager",
		"UI/UX Designer",
		"Data Analyst",
		"HR Specialist",
	}

	for _, name := range names {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO positions (id, name) VALUES (gen_random_uuid(), $1) ON CONFLICT (name) DO NOTHING`,
			name,
		)
		if err != nil {
			return fmt.Errorf("seed position %q: %w", name, err)
		}
	}

	return tx.Commit(ctx)
}
