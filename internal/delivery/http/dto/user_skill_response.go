package dto

import (
	"time"

	"staff-directory/internal/usecase"

	"github.com/google/uuid"
)

type UserSkillResponse struct {
	ID        uuid.UUID `json:"id"`
	SkillID   uuid.UUID `json:"skill_id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserSkillResponse(s usecase.UserSkillItem) UserSkillResponse {
	return UserSkillResponse{
		ID:        s.ID,
		SkillID:   s.SkillID,
		Name:      s.Name,
		Rating:    s.Rating,
		CreatedAt: s.CreatedAt,
	}
}
