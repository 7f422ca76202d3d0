package dto

import (
	"staff-directory/internal/usecase"

	"github.com/google/uuid"
)

type FacetValueResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func NewFacetValueResponse(v usecase.FacetValueItem) FacetValueResponse {
	return FacetValueResponse{ID: v.ID, Name: v.Name}
}

func NewFacetValueResponses(values []usecase.FacetValueItem) []FacetValueResponse {
	out := make([]FacetValueResponse, 0, len(values))
	for _, v := range values {
		out = append(out, NewFacetValueResponse(v))
	}
	return out
}
