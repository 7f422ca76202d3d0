package seeder

import (
	"context"

	"staff-directory/internal/database"
)

// coreTables lists every table the query layer touches with the columns it
// scans. Checked once at boot.
var coreTables = map[string][]string{
	"users":          {"id", "name", "phone", "employment_date", "occupancy"},
	"skills":         {"id", "name", "created_at"},
	"projects":       {"id", "name", "created_at"},
	"positions":      {"id", "name", "created_at"},
	"user_skills":    {"id", "user_id", "skill_id", "rating", "created_at"},
	"user_projects":  {"id", "user_id", "project_id", "description", "start_date", "end_date"},
	"user_positions": {"id", "user_id", "position_id"},
	"user_managers":  {"manager_id", "member_id"},
}

func EnsureCoreSchema(ctx context.Context, db database.DB) error {
	for table, columns := range coreTables {
		if err := EnsureTableColumns(ctx, db, table, columns...); err != nil {
			return err
		}
	}
	return nil
}
