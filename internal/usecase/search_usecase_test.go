package usecase

import (
	"context"
	"testing"

	"geostud-api/internal/pkg/pagination"
	"geostud-api/internal/repository"

	"github.com/stretchr/testify/require"
)

func profile(id, externalID int64, name, gender string, interests ...string) repository.User {
	return repository.User{
		ID:                id,
		ExternalID:        externalID,
		Name:              name,
		Gender:            gender,
		PartnerPreference: "any",
		Bio:               "hello",
		PhotoURLs:         []string{"https://img.example/" + name + ".jpg"},
		Interests:         interests,
		IsActive:          true,
	}
}

func searchFixture() (*CompanionSearch, *memUsers, *memFavorites, *memEngagements, *memCache) {
	users := newMemUsers(
		profile(1, 101, "Alice", "female", "music: rock", "sport: climbing", "food: sushi"),
		profile(2, 102, "Bob", "male", "history: maps"),
		profile(3, 103, "Carol", "female", "art: film"),
		profile(4, 104, "Dave", "male", "music: jazz", "sport: running"),
		profile(5, 105, "Erin", "female", "music: pop"),
		profile(6, 106, "Frank", "male", "music: metal", "food: ramen"),
	)
	favorites := newMemFavorites(users)
	favorites.set(1,
		repository.FavoriteLocation{LocationID: 10, Name: "Library"},
		repository.FavoriteLocation{LocationID: 11, Name: "Park"},
	)
	favorites.set(2, repository.FavoriteLocation{LocationID: 10, Name: "Library"})
	favorites.set(3,
		repository.FavoriteLocation{LocationID: 10, Name: "Library"},
		repository.FavoriteLocation{LocationID: 11, Name: "Park"},
	)
	favorites.set(4, repository.FavoriteLocation{LocationID: 12, Name: "Pool"})
	favorites.set(5, repository.FavoriteLocation{LocationID: 13, Name: "Gym"})
	favorites.set(6, repository.FavoriteLocation{LocationID: 11, Name: "Park"})

	engagements := newMemEngagements()
	cache := newMemCache()
	uc := NewCompanionSearch(users, favorites, engagements, cache, nil)
	return uc, users, favorites, engagements, cache
}

func externalIDs(data []ProfileWithLocations) []int64 {
	out := make([]int64, 0, len(data))
	for _, p := range data {
		out = append(out, p.ExternalID)
	}
	return out
}

func TestSearchRejectsUnknownStrategy(t *testing.T) {
	uc, _, _, _, _ := searchFixture()

	_, err := uc.Search(context.Background(), 101, SearchStrategy("nearest"), pagination.Params{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSearchUnknownRequesterReturnsEmptyPage(t *testing.T) {
	uc, _, _, _, _ := searchFixture()

	res, err := uc.Search(context.Background(), 999, StrategyCombined, pagination.Params{})
	require.NoError(t, err)
	require.Empty(t, res.Data)
	require.Zero(t, res.Meta.TotalCount)
	require.Equal(t, 1, res.Meta.Page)
}

func TestSearchCombinedOrdersLocationBlockFirst(t *testing.T) {
	uc, _, _, _, _ := searchFixture()

	res, err := uc.Search(context.Background(), 101, StrategyCombined, pagination.Params{})
	require.NoError(t, err)

	// Location block by overlap size then name (Carol 2, Bob 1, Frank 1),
	// then the interest block over the remainder (Dave, two shared
	// categories). Erin shares only one category and is out.
	require.Equal(t, []int64{103, 102, 106, 104}, externalIDs(res.Data))
	require.Equal(t, 2, res.Data[0].Score)
	require.Equal(t, []string{"Library", "Park"}, res.Data[0].OverlapLocations)
	require.Equal(t, 4, res.Meta.TotalCount)
}

func TestSearchByLocationsOnly(t *testing.T) {
	uc, _, _, _, _ := searchFixture()

	res, err := uc.Search(context.Background(), 101, StrategyLocations, pagination.Params{})
	require.NoError(t, err)
	require.Equal(t, []int64{103, 102, 106}, externalIDs(res.Data))
}

func TestSearchByInterestsOnly(t *testing.T) {
	uc, _, _, _, _ := searchFixture()

	res, err := uc.Search(context.Background(), 101, StrategyInterests, pagination.Params{})
	require.NoError(t, err)

	// Dave and Frank each share two interest categories with Alice.
	require.Equal(t, []int64{104, 106}, externalIDs(res.Data))
}

func TestSearchExcludesLikedAndDisliked(t *testing.T) {
	uc, _, _, engagements, _ := searchFixture()
	ctx := context.Background()

	_, err := engagements.CreateLike(ctx, 1, 3, "")
	require.NoError(t, err)
	_, err = engagements.CreateDislike(ctx, 1, 2)
	require.NoError(t, err)

	res, err := uc.Search(ctx, 101, StrategyCombined, pagination.Params{})
	require.NoError(t, err)
	require.Equal(t, []int64{106, 104}, externalIDs(res.Data))
}

func TestSearchInboundExclusionIsOptIn(t *testing.T) {
	uc, _, _, engagements, _ := searchFixture()
	ctx := context.Background()

	// Bob liked Alice; by default he stays discoverable to her.
	_, err := engagements.CreateLike(ctx, 2, 1, "")
	require.NoError(t, err)

	res, err := uc.Search(ctx, 101, StrategyLocations, pagination.Params{})
	require.NoError(t, err)
	require.Contains(t, externalIDs(res.Data), int64(102))

	uc.excludeInbound = true
	res, err = uc.Search(ctx, 101, StrategyLocations, pagination.Params{})
	require.NoError(t, err)
	require.NotContains(t, externalIDs(res.Data), int64(102))
}

func TestSearchAllPaginates(t *testing.T) {
	uc, _, _, _, _ := searchFixture()
	ctx := context.Background()

	res, err := uc.Search(ctx, 101, StrategyAll, pagination.Params{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, []int64{102, 103}, externalIDs(res.Data))
	require.Equal(t, 5, res.Meta.TotalCount)
	require.Equal(t, 3, res.Meta.TotalPages)
	require.True(t, res.Meta.HasNextPage)
	require.False(t, res.Meta.HasPreviousPage)

	res, err = uc.Search(ctx, 101, StrategyAll, pagination.Params{Page: 3, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, []int64{106}, externalIDs(res.Data))
	require.False(t, res.Meta.HasNextPage)
	require.True(t, res.Meta.HasPreviousPage)
}

func TestSearchServesCachedPages(t *testing.T) {
	uc, _, favorites, _, cache := searchFixture()
	ctx := context.Background()

	first, err := uc.Search(ctx, 101, StrategyLocations, pagination.Params{})
	require.NoError(t, err)
	require.Equal(t, 1, cache.size())

	// Dropping Carol's favorites would change a fresh result, but the page
	// is served from cache until an engagement write invalidates it.
	favorites.set(3)
	cached, err := uc.Search(ctx, 101, StrategyLocations, pagination.Params{})
	require.NoError(t, err)
	require.Equal(t, externalIDs(first.Data), externalIDs(cached.Data))
}

func TestSearchSkipsIncompatibleCandidates(t *testing.T) {
	uc, users, favorites, _, _ := searchFixture()
	ctx := context.Background()

	// Grace favorites Alice's library but wants to be left alone.
	grace := profile(7, 107, "Grace", "female")
	grace.PartnerPreference = "alone"
	users.users = append(users.users, grace)
	favorites.set(7, repository.FavoriteLocation{LocationID: 10, Name: "Library"})

	res, err := uc.Search(ctx, 101, StrategyLocations, pagination.Params{})
	require.NoError(t, err)
	require.NotContains(t, externalIDs(res.Data), int64(107))
}
