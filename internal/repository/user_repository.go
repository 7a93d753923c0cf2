package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"geostud-api/internal/database"

	"github.com/jackc/pgx/v5"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID                int64
	ExternalID        int64
	Name              string
	Gender            string
	PartnerPreference string
	Bio               string
	PhotoURLs         []string
	Interests         []string
	IsActive          bool
	CreatedAt         time.Time
}

type UserRepository interface {
	FindByExternalID(ctx context.Context, externalID int64) (User, error)
	// ListEligible returns every active, non-deleted, profile-complete user
	// except the given one. Profile-complete means a non-empty bio and at
	// least one photo.
	ListEligible(ctx context.Context, excludeID int64) ([]User, error)
}

const userColumns = `id, external_id, name, gender, partner_preference, bio, photo_urls, interests, is_active, created_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) FindByExternalID(ctx context.Context, externalID int64) (User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 WHERE external_id = $1 AND deleted_at IS NULL`,
		externalID,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) ListEligible(ctx context.Context, excludeID int64) ([]User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 WHERE deleted_at IS NULL
		   AND is_active
		   AND bio <> ''
		   AND cardinality(photo_urls) > 0
		   AND id <> $1
		 ORDER BY name ASC, id ASC`,
		excludeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]User, 0)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.ExternalID, &u.Name, &u.Gender, &u.PartnerPreference,
			&u.Bio, &u.PhotoURLs, &u.Interests, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanUser(row database.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.ExternalID, &u.Name, &u.Gender, &u.PartnerPreference,
		&u.Bio, &u.PhotoURLs, &u.Interests, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}
