package handler

import (
	"strconv"

	"geostud-api/internal/delivery/http/dto"
	"geostud-api/internal/delivery/http/middleware"
	"geostud-api/internal/pkg/response"
	"geostud-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type LocationCompanionsHandler struct {
	uc usecase.LocationCompanionsUsecase
}

func NewLocationCompanionsHandler(uc usecase.LocationCompanionsUsecase) *LocationCompanionsHandler {
	return &LocationCompanionsHandler{uc: uc}
}

func (h *LocationCompanionsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/locations")
	grp.Get("/:location_id/companions", h.List)
}

func (h *LocationCompanionsHandler) List(c fiber.Ctx) error {
	externalID, ok := middleware.ExternalIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	locationID, err := strconv.ParseInt(c.Params("location_id"), 10, 64)
	if err != nil || locationID <= 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.ListByLocation(c.Context(), externalID, locationID, dto.PaginationFromQuery(c))
	if err != nil {
		return mapSearchUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, companionList(res))
}
