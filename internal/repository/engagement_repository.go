package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"geostud-api/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrMatchNotFound = errors.New("match not found")

type Match struct {
	ID         uuid.UUID
	UserLowID  int64
	UserHighID int64
	CreatedAt  time.Time
}

// EngagementRepository persists the directed like/dislike edges and the
// canonical match rows. Every create is idempotent under the storage unique
// constraints: inserting an edge that already exists reports inserted=false
// instead of failing, which is how concurrent duplicate writes are absorbed.
type EngagementRepository interface {
	LikeExists(ctx context.Context, likerID, targetID int64) (bool, error)
	DislikeExists(ctx context.Context, dislikerID, targetID int64) (bool, error)

	CreateLike(ctx context.Context, likerID, targetID int64, message string) (inserted bool, err error)
	CreateDislike(ctx context.Context, dislikerID, targetID int64) (inserted bool, err error)

	// CreateLikeWithMatch writes the like edge and the canonical match row in
	// one transaction, for the reciprocal-like case.
	CreateLikeWithMatch(ctx context.Context, likerID, targetID int64, message string, match Match) (matchInserted bool, err error)

	FindMatchByPair(ctx context.Context, userLowID, userHighID int64) (Match, error)

	ListLikedTargets(ctx context.Context, likerID int64) ([]int64, error)
	ListDislikedTargets(ctx context.Context, dislikerID int64) ([]int64, error)
	// ListInboundActors returns ids of users who liked or disliked the given
	// user, for the inbound exclusion policy.
	ListInboundActors(ctx context.Context, userID int64) ([]int64, error)
}

type PostgresEngagementRepository struct {
	db database.DB
}

func NewPostgresEngagementRepository(db database.DB) *PostgresEngagementRepository {
	return &PostgresEngagementRepository{db: db}
}

func (r *PostgresEngagementRepository) LikeExists(ctx context.Context, likerID, targetID int64) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM user_likes
			WHERE liker_id = $1 AND target_id = $2 AND deleted_at IS NULL
		)`,
		likerID, targetID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresEngagementRepository) DislikeExists(ctx context.Context, dislikerID, targetID int64) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM user_dislikes
			WHERE disliker_id = $1 AND target_id = $2 AND deleted_at IS NULL
		)`,
		dislikerID, targetID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresEngagementRepository) CreateLike(ctx context.Context, likerID, targetID int64, message string) (bool, error) {
	affected, err := r.db.Exec(ctx,
		`INSERT INTO user_likes (liker_id, target_id, message)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (liker_id, target_id) DO NOTHING`,
		likerID, targetID, message,
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresEngagementRepository) CreateDislike(ctx context.Context, dislikerID, targetID int64) (bool, error) {
	affected, err := r.db.Exec(ctx,
		`INSERT INTO user_dislikes (disliker_id, target_id)
		 VALUES ($1, $2)
		 ON CONFLICT (disliker_id, target_id) DO NOTHING`,
		dislikerID, targetID,
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresEngagementRepository) CreateLikeWithMatch(ctx context.Context, likerID, targetID int64, message string, match Match) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx,
		`INSERT INTO user_likes (liker_id, target_id, message)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (liker_id, target_id) DO NOTHING`,
		likerID, targetID, message,
	); err != nil {
		return false, err
	}

	affected, err := tx.Exec(ctx,
		`INSERT INTO matches (id, user_low_id, user_high_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_low_id, user_high_id) DO NOTHING`,
		match.ID, match.UserLowID, match.UserHighID,
	)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresEngagementRepository) FindMatchByPair(ctx context.Context, userLowID, userHighID int64) (Match, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_low_id, user_high_id, created_at
		 FROM matches
		 WHERE user_low_id = $1 AND user_high_id = $2 AND deleted_at IS NULL`,
		userLowID, userHighID,
	)

	var m Match
	if err := row.Scan(&m.ID, &m.UserLowID, &m.UserHighID, &m.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Match{}, ErrMatchNotFound
		}
		return Match{}, err
	}
	return m, nil
}

func (r *PostgresEngagementRepository) ListLikedTargets(ctx context.Context, likerID int64) ([]int64, error) {
	return r.listIDs(ctx,
		`SELECT target_id FROM user_likes
		 WHERE liker_id = $1 AND deleted_at IS NULL`,
		likerID,
	)
}

func (r *PostgresEngagementRepository) ListDislikedTargets(ctx context.Context, dislikerID int64) ([]int64, error) {
	return r.listIDs(ctx,
		`SELECT target_id FROM user_dislikes
		 WHERE disliker_id = $1 AND deleted_at IS NULL`,
		dislikerID,
	)
}

func (r *PostgresEngagementRepository) ListInboundActors(ctx context.Context, userID int64) ([]int64, error) {
	return r.listIDs(ctx,
		`SELECT liker_id FROM user_likes
		 WHERE target_id = $1 AND deleted_at IS NULL
		 UNION
		 SELECT disliker_id FROM user_dislikes
		 WHERE target_id = $1 AND deleted_at IS NULL`,
		userID,
	)
}

func (r *PostgresEngagementRepository) listIDs(ctx context.Context, query string, args ...any) ([]int64, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
