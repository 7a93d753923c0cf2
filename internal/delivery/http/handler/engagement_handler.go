package handler

import (
	"errors"
	"time"

	"geostud-api/internal/delivery/http/dto"
	"geostud-api/internal/delivery/http/middleware"
	"geostud-api/internal/pkg/response"
	"geostud-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type EngagementHandler struct {
	uc usecase.EngagementUsecase
}

func NewEngagementHandler(uc usecase.EngagementUsecase) *EngagementHandler {
	return &EngagementHandler{uc: uc}
}

func (h *EngagementHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/engagement")
	grp.Post("/like", h.Like)
	grp.Post("/dislike", h.Dislike)
}

func (h *EngagementHandler) Like(c fiber.Ctx) error {
	externalID, ok := middleware.ExternalIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.LikeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.TargetExternalID == 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "target_external_id is required", nil, nil)
	}

	res, err := h.uc.Like(c.Context(), externalID, req.TargetExternalID, req.Message)
	if err != nil {
		return mapEngagementUsecaseError(err)
	}

	out := dto.LikeResponse{IsMatch: res.IsMatch}
	if res.Match != nil {
		out.Match = &dto.MatchResponse{
			MatchID:   res.Match.MatchID.String(),
			CreatedAt: res.Match.CreatedAt.UTC().Format(time.RFC3339),
			Requester: dto.CompanionSummary{ExternalID: res.Match.Requester.ExternalID, Name: res.Match.Requester.Name},
			Target:    dto.CompanionSummary{ExternalID: res.Match.Target.ExternalID, Name: res.Match.Target.Name},
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *EngagementHandler) Dislike(c fiber.Ctx) error {
	externalID, ok := middleware.ExternalIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.DislikeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.TargetExternalID == 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "target_external_id is required", nil, nil)
	}

	if err := h.uc.Dislike(c.Context(), externalID, req.TargetExternalID); err != nil {
		return mapEngagementUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapEngagementUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSelfTarget):
		return middleware.NewAppError(fiber.StatusBadRequest, "Cannot target yourself", nil, err)
	case errors.Is(err, usecase.ErrMessageTooLong):
		return middleware.NewAppError(fiber.StatusBadRequest, "Message too long", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
