package handler

import (
	"staff-directory/internal/delivery/http/dto"
	"staff-directory/internal/delivery/http/middleware"
	"staff-directory/internal/directory"
	"staff-directory/internal/pkg/response"
	"staff-directory/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DirectoryHandler struct {
	uc usecase.DirectoryUsecase
}

type skillFilterRequest struct {
	Name        string `json:"name"`
	RatingRange []int  `json:"ratingRange"`
}

type filterUsersRequest struct {
	SearchQuery string               `json:"searchQuery"`
	Page        int                  `json:"page"`
	PerPage     int                  `json:"perPage"`
	Occupancy   []string             `json:"occupancy"`
	Skills      []skillFilterRequest `json:"skills"`
	Projects    []string             `json:"projects"`
	Managers    []string             `json:"managers"`
	Positions   []string             `json:"positions"`
	RatingRange []int                `json:"ratingRange"`
}

func NewDirectoryHandler(uc usecase.DirectoryUsecase) *DirectoryHandler {
	return &DirectoryHandler{uc: uc}
}

func (h *DirectoryHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/directory")
	grp.Get("/", h.List)
	grp.Get("/search", h.Search)
	grp.Post("/filter", h.Filter)
}

func (h *DirectoryHandler) List(c fiber.Ctx) error {
	if _, err := requestUserID(c); err != nil {
		return err
	}

	users, err := h.uc.ListAll(c.Context())
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserListResponse(users))
}

func (h *DirectoryHandler) Search(c fiber.Ctx) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	refs, err := h.uc.Search(c.Context(), userID, c.Query("q"))
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserRefResponses(refs))
}

func (h *DirectoryHandler) Filter(c fiber.Ctx) error {
	if _, err := requestUserID(c); err != nil {
		return err
	}

	var req filterUsersRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.Filter(c.Context(), toFilterRequest(req))
	if err != nil {
		return mapUsecaseError(err, "")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewFilterUsersResponse(res))
}

func toFilterRequest(req filterUsersRequest) directory.FilterRequest {
	occupancy := make([]directory.Occupancy, 0, len(req.Occupancy))
	for _, o := range req.Occupancy {
		occupancy = append(occupancy, directory.Occupancy(o))
	}
	skills := make([]directory.SkillFilter, 0, len(req.Skills))
	for _, s := range req.Skills {
		skills = append(skills, directory.SkillFilter{Name: s.Name, RatingRange: s.RatingRange})
	}
	return directory.FilterRequest{
		SearchQuery: req.SearchQuery,
		Page:        req.Page,
		PerPage:     req.PerPage,
		Occupancy:   occupancy,
		Skills:      skills,
		Projects:    req.Projects,
		Managers:    req.Managers,
		Positions:   req.Positions,
		RatingRange: req.RatingRange,
	}
}
