package handler

import (
	"time"

	"staff-directory/internal/delivery/http/dto"
	"staff-directory/internal/delivery/http/middleware"
	"staff-directory/internal/pkg/response"
	"staff-directory/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserProjectHandler struct {
	uc usecase.UserProjectUsecase
}

type addUserProjectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type updateUserProjectRequest struct {
	Description string     `json:"description"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

func NewUserProjectHandler(uc usecase.UserProjectUsecase) *UserProjectHandler {
	return &UserProjectHandler{uc: uc}
}

func (h *UserProjectHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/projects")
	grp.Get("/", h.List)
	grp.Get("/:projectId", h.GetByProject)
	grp.Post("/", h.Add)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *UserProjectHandler) List(c fiber.Ctx) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListUserProjects(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err, "")
	}

	res := make([]dto.UserProjectResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.NewUserProjectResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *UserProjectHandler) GetByProject(c fiber.Ctx) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}

	item, err := h.uc.GetByProject(c.Context(), userID, projectID)
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProjectResponse(item))
}

func (h *UserProjectHandler) Add(c fiber.Ctx) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	var req addUserProjectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.AddUserProject(c.Context(), userID, usecase.AddUserProjectInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		return mapUsecaseError(err, "Project already added")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProjectResponse(created))
}

func (h *UserProjectHandler) Update(c fiber.Ctx) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateUserProjectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.UpdateUserProject(c.Context(), userID, id, usecase.UpdateUserProjectInput{
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProjectResponse(updated))
}

func (h *UserProjectHandler) Delete(c fiber.Ctx) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteUserProject(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
