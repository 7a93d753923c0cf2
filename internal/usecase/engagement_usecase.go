package usecase

import (
	"context"
	"errors"
	"log"
	"time"
	"unicode/utf8"

	"geostud-api/internal/domain/engagement"
	"geostud-api/internal/metrics"
	"geostud-api/internal/repository"

	"github.com/google/uuid"
)

const maxLikeMessageLen = 500

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrSelfTarget     = errors.New("cannot target yourself")
	ErrMessageTooLong = errors.New("message too long")
)

type MatchDetails struct {
	MatchID   uuid.UUID     `json:"match_id"`
	CreatedAt time.Time     `json:"created_at"`
	Requester PublicProfile `json:"requester"`
	Target    PublicProfile `json:"target"`
}

type LikeResult struct {
	IsMatch bool          `json:"is_match"`
	Match   *MatchDetails `json:"match,omitempty"`
}

type EngagementUsecase interface {
	Like(ctx context.Context, requesterExternalID, targetExternalID int64, message string) (LikeResult, error)
	Dislike(ctx context.Context, requesterExternalID, targetExternalID int64) error
}

// Engagement runs the like/dislike state machine. All writes are guarded by
// storage unique constraints, so two racing requests converge on the same
// final state; the loser of a race re-reads and reports it as success.
type Engagement struct {
	users       repository.UserRepository
	engagements repository.EngagementRepository
	notifier    Notifier
	cache       SearchCache
	logger      *log.Logger

	notifyTimeout time.Duration
}

func NewEngagement(
	users repository.UserRepository,
	engagements repository.EngagementRepository,
	notifier Notifier,
	cache SearchCache,
	logger *log.Logger,
) *Engagement {
	if logger == nil {
		logger = log.Default()
	}
	return &Engagement{
		users:         users,
		engagements:   engagements,
		notifier:      notifier,
		cache:         cache,
		logger:        logger,
		notifyTimeout: 5 * time.Second,
	}
}

func (u *Engagement) Like(ctx context.Context, requesterExternalID, targetExternalID int64, message string) (LikeResult, error) {
	if requesterExternalID == targetExternalID {
		return LikeResult{}, ErrSelfTarget
	}
	if utf8.RuneCountInString(message) > maxLikeMessageLen {
		return LikeResult{}, ErrMessageTooLong
	}

	requester, target, err := u.resolvePair(ctx, requesterExternalID, targetExternalID)
	if err != nil {
		return LikeResult{}, err
	}

	state, match, err := u.pairState(ctx, requester.ID, target.ID)
	if err != nil {
		return LikeResult{}, ErrInternal
	}

	switch state {
	case engagement.StateMatched:
		// Re-liking a matched pair changes nothing and re-reports the match.
		metrics.LikesTotal.WithLabelValues("duplicate").Inc()
		return u.matchResult(match, requester, target), nil
	case engagement.StateLiked:
		metrics.LikesTotal.WithLabelValues("duplicate").Inc()
		return LikeResult{IsMatch: false}, nil
	}

	reciprocal, err := u.engagements.LikeExists(ctx, target.ID, requester.ID)
	if err != nil {
		return LikeResult{}, ErrInternal
	}

	if !reciprocal {
		return u.likeOneWay(ctx, requester, target, message)
	}
	return u.likeReciprocal(ctx, requester, target, message)
}

func (u *Engagement) likeOneWay(ctx context.Context, requester, target repository.User, message string) (LikeResult, error) {
	inserted, err := u.engagements.CreateLike(ctx, requester.ID, target.ID, message)
	if err != nil {
		return LikeResult{}, ErrInternal
	}
	if !inserted {
		// A concurrent identical like won; report whatever state it left.
		state, match, err := u.pairState(ctx, requester.ID, target.ID)
		if err != nil {
			return LikeResult{}, ErrInternal
		}
		metrics.LikesTotal.WithLabelValues("duplicate").Inc()
		if state == engagement.StateMatched {
			return u.matchResult(match, requester, target), nil
		}
		return LikeResult{IsMatch: false}, nil
	}

	// The reverse like may have committed between the reciprocity check and
	// this insert. Re-check now that our edge is durable; if both edges
	// exist, the guarded match insert settles which writer creates the row.
	reciprocal, err := u.engagements.LikeExists(ctx, target.ID, requester.ID)
	if err != nil {
		return LikeResult{}, ErrInternal
	}
	if reciprocal {
		return u.likeReciprocal(ctx, requester, target, message)
	}

	metrics.LikesTotal.WithLabelValues("liked").Inc()
	// The target's cache goes too: under the inbound exclusion policy their
	// result set depends on who has acted on them.
	u.invalidateSearches(requester.ExternalID)
	u.invalidateSearches(target.ExternalID)
	u.dispatch("like", func(ctx context.Context) error {
		return u.notifier.NotifyLike(ctx, publicProfile(target), publicProfile(requester), message)
	})
	return LikeResult{IsMatch: false}, nil
}

func (u *Engagement) likeReciprocal(ctx context.Context, requester, target repository.User, message string) (LikeResult, error) {
	low, high := engagement.CanonicalPair(requester.ID, target.ID)
	matchInserted, err := u.engagements.CreateLikeWithMatch(ctx, requester.ID, target.ID, message, repository.Match{
		ID:         uuid.New(),
		UserLowID:  low,
		UserHighID: high,
	})
	if err != nil {
		return LikeResult{}, ErrInternal
	}

	match, err := u.engagements.FindMatchByPair(ctx, low, high)
	if err != nil {
		return LikeResult{}, ErrInternal
	}

	u.invalidateSearches(requester.ExternalID)
	u.invalidateSearches(target.ExternalID)

	if matchInserted {
		// Only the writer that actually created the match row notifies, so
		// the mutual-like race cannot fan out twice.
		metrics.LikesTotal.WithLabelValues("matched").Inc()
		metrics.MatchesTotal.Inc()
		u.dispatch("match", func(ctx context.Context) error {
			return u.notifier.NotifyMatch(ctx, publicProfile(target), publicProfile(requester))
		})
		u.dispatch("match", func(ctx context.Context) error {
			return u.notifier.NotifyMatch(ctx, publicProfile(requester), publicProfile(target))
		})
	} else {
		metrics.LikesTotal.WithLabelValues("duplicate").Inc()
	}

	return u.matchResult(match, requester, target), nil
}

func (u *Engagement) Dislike(ctx context.Context, requesterExternalID, targetExternalID int64) error {
	if requesterExternalID == targetExternalID {
		return ErrSelfTarget
	}

	requester, target, err := u.resolvePair(ctx, requesterExternalID, targetExternalID)
	if err != nil {
		return err
	}

	exists, err := u.engagements.DislikeExists(ctx, requester.ID, target.ID)
	if err != nil {
		return ErrInternal
	}
	if exists {
		return nil
	}

	if _, err := u.engagements.CreateDislike(ctx, requester.ID, target.ID); err != nil {
		return ErrInternal
	}

	metrics.DislikesTotal.Inc()
	u.invalidateSearches(requester.ExternalID)
	u.invalidateSearches(target.ExternalID)
	return nil
}

func (u *Engagement) resolvePair(ctx context.Context, requesterExternalID, targetExternalID int64) (repository.User, repository.User, error) {
	requester, err := u.users.FindByExternalID(ctx, requesterExternalID)
	if err != nil {
		return repository.User{}, repository.User{}, mapUserErr(err)
	}
	target, err := u.users.FindByExternalID(ctx, targetExternalID)
	if err != nil {
		return repository.User{}, repository.User{}, mapUserErr(err)
	}
	return requester, target, nil
}

func (u *Engagement) pairState(ctx context.Context, requesterID, targetID int64) (engagement.PairState, repository.Match, error) {
	forward, err := u.engagements.LikeExists(ctx, requesterID, targetID)
	if err != nil {
		return engagement.StateNoSignal, repository.Match{}, err
	}

	low, high := engagement.CanonicalPair(requesterID, targetID)
	match, err := u.engagements.FindMatchByPair(ctx, low, high)
	matched := err == nil
	if err != nil && !errors.Is(err, repository.ErrMatchNotFound) {
		return engagement.StateNoSignal, repository.Match{}, err
	}

	return engagement.DeriveState(forward, matched), match, nil
}

func (u *Engagement) matchResult(match repository.Match, requester, target repository.User) LikeResult {
	return LikeResult{
		IsMatch: true,
		Match: &MatchDetails{
			MatchID:   match.ID,
			CreatedAt: match.CreatedAt,
			Requester: publicProfile(requester),
			Target:    publicProfile(target),
		},
	}
}

// dispatch fires a notification after the engagement write committed. It is
// deliberately detached from the request context: the caller's response must
// not wait for, or fail because of, notification delivery.
func (u *Engagement) dispatch(kind string, fn func(ctx context.Context) error) {
	if u.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), u.notifyTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			metrics.NotificationFailures.Inc()
			u.logger.Printf("[Notify] %s dispatch failed: %v", kind, err)
		}
	}()
}

func (u *Engagement) invalidateSearches(externalID int64) {
	if u.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := u.cache.DeleteByPattern(ctx, searchCachePattern(externalID)); err != nil {
		u.logger.Printf("[Search] cache invalidation failed: %v", err)
	}
}

func publicProfile(u repository.User) PublicProfile {
	return PublicProfile{ExternalID: u.ExternalID, Name: u.Name}
}

func mapUserErr(err error) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrUserNotFound
	}
	return ErrInternal
}
