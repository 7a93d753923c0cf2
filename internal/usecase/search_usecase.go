package usecase

import (
	"context"
	"errors"
	"log"

	"geostud-api/internal/domain/discovery"
	"geostud-api/internal/metrics"
	"geostud-api/internal/pkg/pagination"
	"geostud-api/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

type SearchStrategy string

const (
	StrategyCombined  SearchStrategy = "combined"
	StrategyLocations SearchStrategy = "locations"
	StrategyInterests SearchStrategy = "interests"
	StrategyAll       SearchStrategy = "all"
)

// ProfileWithLocations is one ranked search hit: the candidate's public
// profile fields plus the favorite-location names shared with the requester.
type ProfileWithLocations struct {
	ExternalID       int64    `json:"external_id"`
	Name             string   `json:"name"`
	Gender           string   `json:"gender"`
	Bio              string   `json:"bio"`
	PhotoURLs        []string `json:"photo_urls"`
	Interests        []string `json:"interests"`
	Score            int      `json:"score"`
	OverlapLocations []string `json:"overlap_locations"`
}

type SearchResult struct {
	Data []ProfileWithLocations `json:"data"`
	Meta pagination.Meta        `json:"meta"`
}

type SearchUsecase interface {
	Search(ctx context.Context, requesterExternalID int64, strategy SearchStrategy, p pagination.Params) (SearchResult, error)
}

type CompanionSearch struct {
	users       repository.UserRepository
	favorites   repository.FavoriteRepository
	engagements repository.EngagementRepository
	cache       SearchCache
	logger      *log.Logger

	// excludeInbound additionally hides users who already liked or disliked
	// the requester. Off by default so inbound likers stay discoverable.
	excludeInbound bool
}

func NewCompanionSearch(
	users repository.UserRepository,
	favorites repository.FavoriteRepository,
	engagements repository.EngagementRepository,
	cache SearchCache,
	logger *log.Logger,
) *CompanionSearch {
	if logger == nil {
		logger = log.Default()
	}
	return &CompanionSearch{
		users:       users,
		favorites:   favorites,
		engagements: engagements,
		cache:       cache,
		logger:      logger,
	}
}

func (u *CompanionSearch) Search(ctx context.Context, requesterExternalID int64, strategy SearchStrategy, p pagination.Params) (SearchResult, error) {
	switch strategy {
	case StrategyCombined, StrategyLocations, StrategyInterests, StrategyAll:
	default:
		return SearchResult{}, ErrInvalidInput
	}

	p = p.Normalize()
	metrics.SearchesTotal.WithLabelValues(string(strategy)).Inc()

	requester, err := u.users.FindByExternalID(ctx, requesterExternalID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Discovery is best-effort: an unresolvable requester gets an
			// empty page, not an error.
			return SearchResult{Data: []ProfileWithLocations{}, Meta: pagination.MetaFor(0, p)}, nil
		}
		return SearchResult{}, ErrInternal
	}

	cacheKey := searchCacheKey(requesterExternalID, strategy, p.Page, p.PageSize, u.excludeInbound)
	if u.cache != nil {
		var cached SearchResult
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	ranked, err := u.rank(ctx, requester, strategy)
	if err != nil {
		return SearchResult{}, err
	}

	page, meta := pagination.Slice(rankedToProfiles(ranked), p)
	result := SearchResult{Data: page, Meta: meta}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, result, 0); err != nil {
			u.logger.Printf("[Search] cache set failed: %v", err)
		}
	}
	return result, nil
}

func (u *CompanionSearch) rank(ctx context.Context, requester repository.User, strategy SearchStrategy) ([]discovery.RankedCandidate, error) {
	requesterCand, pool, err := u.loadCandidates(ctx, requester)
	if err != nil {
		return nil, ErrInternal
	}

	excluded, err := u.exclusionsFor(ctx, requester.ID)
	if err != nil {
		return nil, ErrInternal
	}

	switch strategy {
	case StrategyLocations:
		return discovery.RankByLocations(requesterCand, pool, excluded), nil
	case StrategyInterests:
		return discovery.RankByInterests(requesterCand, pool, excluded), nil
	case StrategyAll:
		return discovery.RankAll(requesterCand, pool, excluded), nil
	default:
		return discovery.SearchCombined(requesterCand, pool, excluded), nil
	}
}

func (u *CompanionSearch) loadCandidates(ctx context.Context, requester repository.User) (discovery.Candidate, []discovery.Candidate, error) {
	requesterFavs, err := u.favorites.ListByUser(ctx, requester.ID)
	if err != nil {
		return discovery.Candidate{}, nil, err
	}

	eligible, err := u.users.ListEligible(ctx, requester.ID)
	if err != nil {
		return discovery.Candidate{}, nil, err
	}

	ids := make([]int64, 0, len(eligible))
	for _, c := range eligible {
		ids = append(ids, c.ID)
	}
	favsByUser, err := u.favorites.ListByUsers(ctx, ids)
	if err != nil {
		return discovery.Candidate{}, nil, err
	}

	pool := make([]discovery.Candidate, 0, len(eligible))
	for _, c := range eligible {
		pool = append(pool, toCandidate(c, favsByUser[c.ID]))
	}
	return toCandidate(requester, requesterFavs), pool, nil
}

// exclusionsFor builds the requester's exclusion set: self plus every user
// the requester has already liked or disliked, and inbound actors when the
// inbound policy is on.
func (u *CompanionSearch) exclusionsFor(ctx context.Context, requesterID int64) (discovery.Exclusions, error) {
	excluded := discovery.NewExclusions(requesterID)

	liked, err := u.engagements.ListLikedTargets(ctx, requesterID)
	if err != nil {
		return discovery.Exclusions{}, err
	}
	excluded.Add(liked...)

	disliked, err := u.engagements.ListDislikedTargets(ctx, requesterID)
	if err != nil {
		return discovery.Exclusions{}, err
	}
	excluded.Add(disliked...)

	if u.excludeInbound {
		inbound, err := u.engagements.ListInboundActors(ctx, requesterID)
		if err != nil {
			return discovery.Exclusions{}, err
		}
		excluded.Add(inbound...)
	}

	return excluded, nil
}

func toCandidate(u repository.User, favs []repository.FavoriteLocation) discovery.Candidate {
	locs := make([]discovery.Location, 0, len(favs))
	for _, f := range favs {
		locs = append(locs, discovery.Location{ID: f.LocationID, Name: f.Name})
	}
	return discovery.Candidate{
		Profile: discovery.Profile{
			ID:                u.ID,
			ExternalID:        u.ExternalID,
			Name:              u.Name,
			Gender:            u.Gender,
			PartnerPreference: u.PartnerPreference,
			Bio:               u.Bio,
			PhotoURLs:         u.PhotoURLs,
			Interests:         u.Interests,
		},
		Favorites: locs,
	}
}

func rankedToProfiles(ranked []discovery.RankedCandidate) []ProfileWithLocations {
	out := make([]ProfileWithLocations, 0, len(ranked))
	for _, rc := range ranked {
		out = append(out, ProfileWithLocations{
			ExternalID:       rc.ExternalID,
			Name:             rc.Name,
			Gender:           rc.Gender,
			Bio:              rc.Bio,
			PhotoURLs:        rc.PhotoURLs,
			Interests:        rc.Interests,
			Score:            rc.Score,
			OverlapLocations: rc.OverlapLocations,
		})
	}
	return out
}
