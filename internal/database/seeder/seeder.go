package seeder

import (
	"context"

	"staff-directory/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
