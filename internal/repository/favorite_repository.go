package repository

import (
	"context"

	"geostud-api/internal/database"
)

type FavoriteLocation struct {
	LocationID int64
	Name       string
}

type FavoriteRepository interface {
	// ListByUser returns the user's non-deleted favorite locations with names.
	ListByUser(ctx context.Context, userID int64) ([]FavoriteLocation, error)
	// ListByUsers batches ListByUser over a candidate pool.
	ListByUsers(ctx context.Context, userIDs []int64) (map[int64][]FavoriteLocation, error)
	// CountUsersAtLocation / ListUsersAtLocation back the companies-by-location
	// listing: active, non-deleted users favoriting the location, name order.
	CountUsersAtLocation(ctx context.Context, locationID, excludeUserID int64) (int, error)
	ListUsersAtLocation(ctx context.Context, locationID, excludeUserID int64, limit, offset int) ([]User, error)
}

type PostgresFavoriteRepository struct {
	db database.DB
}

func NewPostgresFavoriteRepository(db database.DB) *PostgresFavoriteRepository {
	return &PostgresFavoriteRepository{db: db}
}

func (r *PostgresFavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]FavoriteLocation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT fl.location_id, l.name
		 FROM favorite_locations fl
		 JOIN locations l ON l.id = fl.location_id AND l.deleted_at IS NULL
		 WHERE fl.user_id = $1 AND fl.deleted_at IS NULL
		 ORDER BY l.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]FavoriteLocation, 0)
	for rows.Next() {
		var f FavoriteLocation
		if err := rows.Scan(&f.LocationID, &f.Name); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *PostgresFavoriteRepository) ListByUsers(ctx context.Context, userIDs []int64) (map[int64][]FavoriteLocation, error) {
	out := make(map[int64][]FavoriteLocation, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT fl.user_id, fl.location_id, l.name
		 FROM favorite_locations fl
		 JOIN locations l ON l.id = fl.location_id AND l.deleted_at IS NULL
		 WHERE fl.user_id = ANY($1) AND fl.deleted_at IS NULL
		 ORDER BY l.name ASC`,
		userIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var userID int64
		var f FavoriteLocation
		if err := rows.Scan(&userID, &f.LocationID, &f.Name); err != nil {
			return nil, err
		}
		out[userID] = append(out[userID], f)
	}
	return out, rows.Err()
}

func (r *PostgresFavoriteRepository) CountUsersAtLocation(ctx context.Context, locationID, excludeUserID int64) (int, error) {
	var n int
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM favorite_locations fl
		 JOIN users u ON u.id = fl.user_id AND u.deleted_at IS NULL AND u.is_active
		 WHERE fl.location_id = $1 AND fl.deleted_at IS NULL AND fl.user_id <> $2`,
		locationID, excludeUserID,
	)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresFavoriteRepository) ListUsersAtLocation(ctx context.Context, locationID, excludeUserID int64, limit, offset int) ([]User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+prefixedUserColumns("u")+`
		 FROM favorite_locations fl
		 JOIN users u ON u.id = fl.user_id AND u.deleted_at IS NULL AND u.is_active
		 WHERE fl.location_id = $1 AND fl.deleted_at IS NULL AND fl.user_id <> $2
		 ORDER BY u.name ASC, u.id ASC
		 LIMIT $3 OFFSET $4`,
		locationID, excludeUserID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]User, 0, limit)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.ExternalID, &u.Name, &u.Gender, &u.PartnerPreference,
			&u.Bio, &u.PhotoURLs, &u.Interests, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func prefixedUserColumns(alias string) string {
	return alias + `.id, ` + alias + `.external_id, ` + alias + `.name, ` + alias + `.gender, ` +
		alias + `.partner_preference, ` + alias + `.bio, ` + alias + `.photo_urls, ` +
		alias + `.interests, ` + alias + `.is_active, ` + alias + `.created_at`
}
