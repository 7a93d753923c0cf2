package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"geostud-api/internal/repository"

	"github.com/stretchr/testify/require"
)

func engagementFixture() (*Engagement, *memUsers, *memEngagements, *memNotifier, *memCache) {
	users := newMemUsers(
		repository.User{ID: 1, ExternalID: 101, Name: "Alice", IsActive: true},
		repository.User{ID: 2, ExternalID: 102, Name: "Bob", IsActive: true},
		repository.User{ID: 3, ExternalID: 103, Name: "Carol", IsActive: true},
	)
	engagements := newMemEngagements()
	notifier := &memNotifier{}
	cache := newMemCache()
	uc := NewEngagement(users, engagements, notifier, cache, nil)
	return uc, users, engagements, notifier, cache
}

func TestLikeRejectsSelfTarget(t *testing.T) {
	uc, _, _, _, _ := engagementFixture()

	_, err := uc.Like(context.Background(), 101, 101, "")
	require.ErrorIs(t, err, ErrSelfTarget)
}

func TestLikeRejectsOverlongMessage(t *testing.T) {
	uc, _, engagements, _, _ := engagementFixture()

	_, err := uc.Like(context.Background(), 101, 102, strings.Repeat("a", 501))
	require.ErrorIs(t, err, ErrMessageTooLong)
	require.Zero(t, engagements.likeCount())
}

func TestLikeAcceptsMessageAtLimit(t *testing.T) {
	uc, _, engagements, _, _ := engagementFixture()

	res, err := uc.Like(context.Background(), 101, 102, strings.Repeat("ä", 500))
	require.NoError(t, err)
	require.False(t, res.IsMatch)
	require.Equal(t, 1, engagements.likeCount())
}

func TestLikeUnknownUser(t *testing.T) {
	uc, _, _, _, _ := engagementFixture()

	_, err := uc.Like(context.Background(), 999, 102, "")
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = uc.Like(context.Background(), 101, 999, "")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestLikeOneWayNotifiesTarget(t *testing.T) {
	uc, _, engagements, notifier, _ := engagementFixture()

	res, err := uc.Like(context.Background(), 101, 102, "hello")
	require.NoError(t, err)
	require.False(t, res.IsMatch)
	require.Nil(t, res.Match)
	require.Equal(t, 1, engagements.likeCount())

	require.Eventually(t, func() bool {
		return notifier.likeCount() == 1
	}, time.Second, 10*time.Millisecond)
	require.Zero(t, notifier.matchCount())
}

func TestLikeIsIdempotent(t *testing.T) {
	uc, _, engagements, notifier, _ := engagementFixture()

	_, err := uc.Like(context.Background(), 101, 102, "hello")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return notifier.likeCount() == 1
	}, time.Second, 10*time.Millisecond)

	res, err := uc.Like(context.Background(), 101, 102, "hello again")
	require.NoError(t, err)
	require.False(t, res.IsMatch)
	require.Equal(t, 1, engagements.likeCount())

	// The duplicate must not fan out a second notification.
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 1, notifier.likeCount())
}

func TestReciprocalLikeCreatesOneMatch(t *testing.T) {
	uc, _, engagements, notifier, _ := engagementFixture()

	_, err := uc.Like(context.Background(), 102, 101, "hi alice")
	require.NoError(t, err)

	res, err := uc.Like(context.Background(), 101, 102, "hi bob")
	require.NoError(t, err)
	require.True(t, res.IsMatch)
	require.NotNil(t, res.Match)
	require.Equal(t, int64(101), res.Match.Requester.ExternalID)
	require.Equal(t, int64(102), res.Match.Target.ExternalID)
	require.Equal(t, 1, engagements.matchCount())

	// Both parties get a match notification, and only the first like
	// produced a like notification.
	require.Eventually(t, func() bool {
		return notifier.matchCount() == 2
	}, time.Second, 10*time.Millisecond)
	require.Equal(t, []string{"101->102", "102->101"}, notifier.matchRecipients())
	require.Eventually(t, func() bool {
		return notifier.likeCount() == 1
	}, time.Second, 10*time.Millisecond)
}

// staleReadEngagements serves one stale LikeExists answer per marked edge,
// reproducing a reciprocity check that ran before the reverse like committed.
type staleReadEngagements struct {
	*memEngagements
	staleMu   sync.Mutex
	staleOnce map[pair]bool
}

func (s *staleReadEngagements) markStale(likerID, targetID int64) {
	s.staleMu.Lock()
	defer s.staleMu.Unlock()
	s.staleOnce[pair{likerID, targetID}] = true
}

func (s *staleReadEngagements) LikeExists(ctx context.Context, likerID, targetID int64) (bool, error) {
	s.staleMu.Lock()
	if s.staleOnce[pair{likerID, targetID}] {
		delete(s.staleOnce, pair{likerID, targetID})
		s.staleMu.Unlock()
		return false, nil
	}
	s.staleMu.Unlock()
	return s.memEngagements.LikeExists(ctx, likerID, targetID)
}

func TestCrossingLikesStillProduceMatch(t *testing.T) {
	users := newMemUsers(
		repository.User{ID: 1, ExternalID: 101, Name: "Alice", IsActive: true},
		repository.User{ID: 2, ExternalID: 102, Name: "Bob", IsActive: true},
	)
	engagements := &staleReadEngagements{
		memEngagements: newMemEngagements(),
		staleOnce:      make(map[pair]bool),
	}
	notifier := &memNotifier{}
	uc := NewEngagement(users, engagements, notifier, newMemCache(), nil)
	ctx := context.Background()

	_, err := uc.Like(ctx, 101, 102, "first")
	require.NoError(t, err)

	// Bob's reciprocity check misses Alice's already-committed like, as if
	// both calls passed their reverse-edge checks before either insert.
	engagements.markStale(1, 2)

	res, err := uc.Like(ctx, 102, 101, "second")
	require.NoError(t, err)
	require.True(t, res.IsMatch)
	require.NotNil(t, res.Match)
	require.Equal(t, 1, engagements.matchCount())

	require.Eventually(t, func() bool {
		return notifier.matchCount() == 2
	}, time.Second, 10*time.Millisecond)

	// Both directions report the match afterwards.
	res, err = uc.Like(ctx, 101, 102, "")
	require.NoError(t, err)
	require.True(t, res.IsMatch)
	require.Equal(t, 1, engagements.matchCount())
}

func TestReLikeAfterMatchReportsMatch(t *testing.T) {
	uc, _, engagements, notifier, _ := engagementFixture()

	_, err := uc.Like(context.Background(), 102, 101, "")
	require.NoError(t, err)
	_, err = uc.Like(context.Background(), 101, 102, "")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return notifier.matchCount() == 2
	}, time.Second, 10*time.Millisecond)

	res, err := uc.Like(context.Background(), 101, 102, "")
	require.NoError(t, err)
	require.True(t, res.IsMatch)
	require.Equal(t, 1, engagements.matchCount())

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 2, notifier.matchCount())
}

func TestLikeInvalidatesCachedSearches(t *testing.T) {
	uc, _, _, _, cache := engagementFixture()
	ctx := context.Background()

	key := searchCacheKey(101, StrategyCombined, 1, 20, false)
	require.NoError(t, cache.SetJSON(ctx, key, SearchResult{}, 0))
	require.Equal(t, 1, cache.size())

	_, err := uc.Like(ctx, 101, 102, "")
	require.NoError(t, err)
	require.Zero(t, cache.keysWithPrefix("companions:search:101:"))
}

func TestMatchInvalidatesBothCaches(t *testing.T) {
	uc, _, _, _, cache := engagementFixture()
	ctx := context.Background()

	require.NoError(t, cache.SetJSON(ctx, searchCacheKey(101, StrategyAll, 1, 20, false), SearchResult{}, 0))
	require.NoError(t, cache.SetJSON(ctx, searchCacheKey(102, StrategyAll, 1, 20, false), SearchResult{}, 0))

	_, err := uc.Like(ctx, 102, 101, "")
	require.NoError(t, err)
	_, err = uc.Like(ctx, 101, 102, "")
	require.NoError(t, err)

	require.Zero(t, cache.keysWithPrefix("companions:search:101:"))
	require.Zero(t, cache.keysWithPrefix("companions:search:102:"))
}

func TestDislike(t *testing.T) {
	uc, _, engagements, notifier, _ := engagementFixture()
	ctx := context.Background()

	require.ErrorIs(t, uc.Dislike(ctx, 101, 101), ErrSelfTarget)
	require.ErrorIs(t, uc.Dislike(ctx, 101, 999), ErrUserNotFound)

	require.NoError(t, uc.Dislike(ctx, 101, 103))
	require.Equal(t, 1, engagements.dislikeCount())

	// Idempotent and silent.
	require.NoError(t, uc.Dislike(ctx, 101, 103))
	require.Equal(t, 1, engagements.dislikeCount())
	time.Sleep(50 * time.Millisecond)
	require.Zero(t, notifier.likeCount())
	require.Zero(t, notifier.matchCount())
}
