package handler

import (
	"time"

	"staff-directory/internal/delivery/http/dto"
	"staff-directory/internal/delivery/http/middleware"
	"staff-directory/internal/directory"
	"staff-directory/internal/pkg/response"
	"staff-directory/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

type updateUserInfoRequest struct {
	Phone          string     `json:"phone"`
	EmploymentDate *time.Time `json:"employment_date"`
	Occupancy      string     `json:"occupancy"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/users/:id", h.GetByID)
	r.Get("/me", h.Me)
	r.Put("/me/info", h.UpdateInfo)
}

func (h *UserHandler) GetByID(c fiber.Ctx) error {
	if _, err := requestUserID(c); err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	profile, err := h.uc.GetProfile(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProfileResponse(profile))
}

func (h *UserHandler) Me(c fiber.Ctx) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProfileResponse(profile))
}

func (h *UserHandler) UpdateInfo(c fiber.Ctx) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	var req updateUserInfoRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	profile, err := h.uc.UpdateInfo(c.Context(), userID, usecase.UpdateUserInfoInput{
		Phone:          req.Phone,
		EmploymentDate: req.EmploymentDate,
		Occupancy:      directory.Occupancy(req.Occupancy),
	})
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProfileResponse(profile))
}
