package usecase

import (
	"context"
	"testing"

	"geostud-api/internal/pkg/pagination"

	"github.com/stretchr/testify/require"
)

func TestLocationCompanionsListsEveryoneAtLocation(t *testing.T) {
	_, users, favorites, _, _ := searchFixture()
	uc := NewLocationCompanions(users, favorites, nil)

	// Library (10): Alice, Bob, Carol favorite it; Alice asks, so she is
	// excluded and compatibility plays no part.
	res, err := uc.ListByLocation(context.Background(), 101, 10, pagination.Params{})
	require.NoError(t, err)
	require.Equal(t, []int64{102, 103}, externalIDs(res.Data))
	require.Equal(t, 2, res.Meta.TotalCount)
}

func TestLocationCompanionsPaginates(t *testing.T) {
	_, users, favorites, _, _ := searchFixture()
	uc := NewLocationCompanions(users, favorites, nil)
	ctx := context.Background()

	res, err := uc.ListByLocation(ctx, 102, 10, pagination.Params{Page: 1, PageSize: 1})
	require.NoError(t, err)
	require.Equal(t, []int64{101}, externalIDs(res.Data))
	require.Equal(t, 2, res.Meta.TotalCount)
	require.True(t, res.Meta.HasNextPage)

	res, err = uc.ListByLocation(ctx, 102, 10, pagination.Params{Page: 2, PageSize: 1})
	require.NoError(t, err)
	require.Equal(t, []int64{103}, externalIDs(res.Data))
	require.False(t, res.Meta.HasNextPage)
}

func TestLocationCompanionsUnknownRequester(t *testing.T) {
	_, users, favorites, _, _ := searchFixture()
	uc := NewLocationCompanions(users, favorites, nil)

	res, err := uc.ListByLocation(context.Background(), 999, 10, pagination.Params{})
	require.NoError(t, err)
	require.Empty(t, res.Data)
	require.Zero(t, res.Meta.TotalCount)
}

func TestLocationCompanionsEmptyLocation(t *testing.T) {
	_, users, favorites, _, _ := searchFixture()
	uc := NewLocationCompanions(users, favorites, nil)

	res, err := uc.ListByLocation(context.Background(), 101, 99, pagination.Params{})
	require.NoError(t, err)
	require.Empty(t, res.Data)
	require.Zero(t, res.Meta.TotalCount)
	require.Zero(t, res.Meta.TotalPages)
}
