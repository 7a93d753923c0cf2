package usecase

import (
	"context"
	"errors"
	"log"

	"geostud-api/internal/metrics"
	"geostud-api/internal/pkg/pagination"
	"geostud-api/internal/repository"
)

type LocationCompanionsUsecase interface {
	ListByLocation(ctx context.Context, requesterExternalID, locationID int64, p pagination.Params) (SearchResult, error)
}

// LocationCompanions lists every active user who favorited a given location,
// paged at the storage level. Unlike the ranked search it applies no
// compatibility or exclusion filtering; it answers "who goes here", not
// "who should you meet".
type LocationCompanions struct {
	users     repository.UserRepository
	favorites repository.FavoriteRepository
	logger    *log.Logger
}

func NewLocationCompanions(
	users repository.UserRepository,
	favorites repository.FavoriteRepository,
	logger *log.Logger,
) *LocationCompanions {
	if logger == nil {
		logger = log.Default()
	}
	return &LocationCompanions{users: users, favorites: favorites, logger: logger}
}

func (u *LocationCompanions) ListByLocation(ctx context.Context, requesterExternalID, locationID int64, p pagination.Params) (SearchResult, error) {
	p = p.Normalize()
	metrics.SearchesTotal.WithLabelValues("location_companions").Inc()

	requester, err := u.users.FindByExternalID(ctx, requesterExternalID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return SearchResult{Data: []ProfileWithLocations{}, Meta: pagination.MetaFor(0, p)}, nil
		}
		return SearchResult{}, ErrInternal
	}

	total, err := u.favorites.CountUsersAtLocation(ctx, locationID, requester.ID)
	if err != nil {
		return SearchResult{}, ErrInternal
	}

	users, err := u.favorites.ListUsersAtLocation(ctx, locationID, requester.ID, p.PageSize, p.Offset())
	if err != nil {
		return SearchResult{}, ErrInternal
	}

	out := make([]ProfileWithLocations, 0, len(users))
	for _, c := range users {
		out = append(out, ProfileWithLocations{
			ExternalID: c.ExternalID,
			Name:       c.Name,
			Gender:     c.Gender,
			Bio:        c.Bio,
			PhotoURLs:  c.PhotoURLs,
			Interests:  c.Interests,
		})
	}
	return SearchResult{Data: out, Meta: pagination.MetaFor(total, p)}, nil
}
