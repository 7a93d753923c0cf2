package seeder

import (
	"context"

	"geostud-api/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
