package handler

import (
	"staff-directory/internal/delivery/http/dto"
	"staff-directory/internal/delivery/http/middleware"
	"staff-directory/internal/pkg/response"
	"staff-directory/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserPositionHandler struct {
	uc usecase.UserPositionUsecase
}

type addUserPositionRequest struct {
	Name string `json:"name"`
}

func NewUserPositionHandler(uc usecase.UserPositionUsecase) *UserPositionHandler {
	return &UserPositionHandler{uc: uc}
}

func (h *UserPositionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/positions")
	grp.Get("/", h.List)
	grp.Post("/", h.Add)
	grp.Delete("/:id", h.Delete)
}

func (h *UserPositionHandler) List(c fiber.Ctx) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListUserPositions(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err, "")
	}

	res := make([]dto.PositionResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.PositionResponse{ID: it.ID, Name: it.Name})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *UserPositionHandler) Add(c fiber.Ctx) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	var req addUserPositionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.AddUserPosition(c.Context(), userID, req.Name)
	if err != nil {
		return mapUsecaseError(err, "Position already added")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.PositionResponse{ID: created.ID, Name: created.Name})
}

func (h *UserPositionHandler) Delete(c fiber.Ctx) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteUserPosition(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
