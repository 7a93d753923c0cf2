package handler

import (
	"errors"

	"geostud-api/internal/delivery/http/dto"
	"geostud-api/internal/delivery/http/middleware"
	"geostud-api/internal/pkg/response"
	"geostud-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CompanionSearchHandler struct {
	uc usecase.SearchUsecase
}

func NewCompanionSearchHandler(uc usecase.SearchUsecase) *CompanionSearchHandler {
	return &CompanionSearchHandler{uc: uc}
}

func (h *CompanionSearchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/companions")
	grp.Get("/search", h.searchWith(usecase.StrategyCombined))
	grp.Get("/search/locations", h.searchWith(usecase.StrategyLocations))
	grp.Get("/search/interests", h.searchWith(usecase.StrategyInterests))
	grp.Get("/search/all", h.searchWith(usecase.StrategyAll))
}

func (h *CompanionSearchHandler) searchWith(strategy usecase.SearchStrategy) fiber.Handler {
	return func(c fiber.Ctx) error {
		externalID, ok := middleware.ExternalIDFromCtx(c)
		if !ok {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		res, err := h.uc.Search(c.Context(), externalID, strategy, dto.PaginationFromQuery(c))
		if err != nil {
			return mapSearchUsecaseError(err)
		}

		return response.Success(c, fiber.StatusOK, response.MessageOK, companionList(res))
	}
}

func companionList(res usecase.SearchResult) dto.CompanionListResponse {
	out := dto.CompanionListResponse{
		Companions: make([]dto.CompanionProfile, 0, len(res.Data)),
		Meta:       res.Meta,
	}
	for _, p := range res.Data {
		out.Companions = append(out.Companions, dto.CompanionProfile{
			ExternalID:       p.ExternalID,
			Name:             p.Name,
			Gender:           p.Gender,
			Bio:              p.Bio,
			PhotoURLs:        p.PhotoURLs,
			Interests:        p.Interests,
			Score:            p.Score,
			OverlapLocations: p.OverlapLocations,
		})
	}
	return out
}

func mapSearchUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
