package seeder

import (
	"context"
	"fmt"

	"geostud-api/internal/database"
)

type LocationsSeeder struct{}

func (LocationsSeeder) Name() string { return "locations" }

func (LocationsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "locations", "id", "name", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		ID   int64
		Name string
	}{
		{ID: 1, Name: "Central Library"},
		{ID: 2, Name: "Riverside Park"},
		{ID: 3, Name: "Old Town Cafe"},
		{ID: 4, Name: "City Gym"},
		{ID: 5, Name: "Art House Cinema"},
		{ID: 6, Name: "Botanical Garden"},
	}

	for _, it := range items {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO locations (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
			it.ID,
			it.Name,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
