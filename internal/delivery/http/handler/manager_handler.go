package handler

import (
	"staff-directory/internal/delivery/http/dto"
	"staff-directory/internal/delivery/http/middleware"
	"staff-directory/internal/pkg/response"
	"staff-directory/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// ManagerHandler exposes both directions of the reporting relation for the
// authenticated user: the managers above them and the members below them.
type ManagerHandler struct {
	uc usecase.ManagerUsecase
}

type addByNameRequest struct {
	Name string `json:"name"`
}

func NewManagerHandler(uc usecase.ManagerUsecase) *ManagerHandler {
	return &ManagerHandler{uc: uc}
}

func (h *ManagerHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	managers := r.Group("/me/managers")
	managers.Get("/", h.ListManagers)
	managers.Post("/", h.AddManager)
	managers.Delete("/:id", h.DeleteManager)

	members := r.Group("/me/members")
	members.Get("/", h.ListMembers)
	members.Post("/", h.AddMember)
	members.Delete("/:id", h.DeleteMember)
}

func (h *ManagerHandler) ListManagers(c fiber.Ctx) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	refs, err := h.uc.ListManagers(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserRefResponses(refs))
}

func (h *ManagerHandler) AddManager(c fiber.Ctx) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	var req addByNameRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.AddManager(c.Context(), userID, req.Name); err != nil {
		return mapUsecaseError(err, "Manager already added")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ManagerHandler) DeleteManager(c fiber.Ctx) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteManager(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ManagerHandler) ListMembers(c fiber.Ctx) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	refs, err := h.uc.ListMembers(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserRefResponses(refs))
}

func (h *ManagerHandler) AddMember(c fiber.Ctx) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	var req addByNameRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.AddMember(c.Context(), userID, req.Name); err != nil {
		return mapUsecaseError(err, "Member already added")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ManagerHandler) DeleteMember(c fiber.Ctx) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteMember(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
