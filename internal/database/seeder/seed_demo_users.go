package seeder

import (
	"context"
	"fmt"

	"geostud-api/internal/database"
)

// DemoUsersSeeder loads a handful of complete profiles with favorites so a
// fresh development database has something to discover.
type DemoUsersSeeder struct{}

func (DemoUsersSeeder) Name() string { return "demo_users" }

func (DemoUsersSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users",
		"id", "external_id", "name", "gender", "partner_preference",
		"bio", "photo_urls", "interests", "is_active"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	users := []struct {
		ExternalID int64
		Name       string
		Gender     string
		Preference string
		Bio        string
		Photos     []string
		Interests  []string
		Favorites  []int64
	}{
		{
			ExternalID: 1001, Name: "Mika", Gender: "female", Preference: "any",
			Bio:       "Weekend reader, weekday runner.",
			Photos:    []string{"https://img.example/mika.jpg"},
			Interests: []string{"book: fiction", "sport: running", "music: jazz"},
			Favorites: []int64{1, 2},
		},
		{
			ExternalID: 1002, Name: "Jonas", Gender: "male", Preference: "female",
			Bio:       "Coffee first, plans later.",
			Photos:    []string{"https://img.example/jonas.jpg"},
			Interests: []string{"book: history", "music: jazz", "food: ramen"},
			Favorites: []int64{1, 3},
		},
		{
			ExternalID: 1003, Name: "Sasha", Gender: "female", Preference: "any",
			Bio:       "Gym in the morning, cinema at night.",
			Photos:    []string{"https://img.example/sasha.jpg"},
			Interests: []string{"sport: lifting", "movie: thriller"},
			Favorites: []int64{4, 5},
		},
		{
			ExternalID: 1004, Name: "Tom", Gender: "male", Preference: "any",
			Bio:       "Plant dad and amateur botanist.",
			Photos:    []string{"https://img.example/tom.jpg"},
			Interests: []string{"nature: plants", "book: biography", "sport: hiking"},
			Favorites: []int64{2, 6},
		},
	}

	for _, u := range users {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO users (external_id, name, gender, partner_preference, bio, photo_urls, interests)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (external_id) DO NOTHING`,
			u.ExternalID, u.Name, u.Gender, u.Preference, u.Bio, u.Photos, u.Interests,
		); err != nil {
			return err
		}

		for _, locID := range u.Favorites {
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO favorite_locations (user_id, location_id)
				 SELECT id, $2 FROM users WHERE external_id = $1
				 ON CONFLICT (user_id, location_id) DO NOTHING`,
				u.ExternalID, locID,
			); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
