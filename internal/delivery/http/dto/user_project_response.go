package dto

import (
	"time"

	"staff-directory/internal/usecase"

	"github.com/google/uuid"
)

type UserProjectResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

func NewUserProjectResponse(p usecase.UserProjectItem) UserProjectResponse {
	return UserProjectResponse{
		ID:          p.ID,
		ProjectID:   p.ProjectID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
	}
}
