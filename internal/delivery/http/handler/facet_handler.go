package handler

import (
	"context"

	"staff-directory/internal/delivery/http/dto"
	"staff-directory/internal/delivery/http/middleware"
	"staff-directory/internal/pkg/response"
	"staff-directory/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// FacetHandler serves the global skill, project, position and manager lists
// the filter panel is built from.
type FacetHandler struct {
	uc usecase.FacetUsecase
}

type createPositionRequest struct {
	Name string `json:"name"`
}

func NewFacetHandler(uc usecase.FacetUsecase) *FacetHandler {
	return &FacetHandler{uc: uc}
}

func (h *FacetHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/skills", h.list(h.uc.AllSkills))
	r.Get("/skills/search", h.search(h.uc.SearchSkills))
	r.Delete("/skills/:id", h.DeleteSkill)

	r.Get("/projects", h.list(h.uc.AllProjects))
	r.Get("/projects/search", h.search(h.uc.SearchProjects))

	r.Get("/positions", h.list(h.uc.AllPositions))
	r.Get("/positions/search", h.search(h.uc.SearchPositions))
	r.Post("/positions", h.CreatePosition)

	r.Get("/managers", h.list(h.uc.AllManagers))
}

func (h *FacetHandler) list(load func(context.Context) ([]usecase.FacetValueItem, error)) fiber.Handler {
	return func(c fiber.Ctx) error {
		if _, err := requestUserID(c); err != nil {
			return err
		}

		values, err := load(c.Context())
		if err != nil {
			return mapUsecaseError(err, "")
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewFacetValueResponses(values))
	}
}

func (h *FacetHandler) search(find func(context.Context, string) ([]usecase.FacetValueItem, error)) fiber.Handler {
	return func(c fiber.Ctx) error {
		if _, err := requestUserID(c); err != nil {
			return err
		}

		values, err := find(c.Context(), c.Query("q"))
		if err != nil {
			return mapUsecaseError(err, "")
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewFacetValueResponses(values))
	}
}

func (h *FacetHandler) CreatePosition(c fiber.Ctx) error {
	if _, err := requestUserID(c); err != nil {
		return err
	}

	var req createPositionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.CreatePosition(c.Context(), req.Name)
	if err != nil {
		return mapUsecaseError(err, "Position already exists")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewFacetValueResponse(created))
}

func (h *FacetHandler) DeleteSkill(c fiber.Ctx) error {
	if _, err := requestUserID(c); err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteSkill(c.Context(), id); err != nil {
		return mapUsecaseError(err, "Skill is in use and cannot be deleted")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
