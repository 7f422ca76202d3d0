package dto

import (
	"time"

	"staff-directory/internal/usecase"

	"github.com/google/uuid"
)

type PositionResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type UserRefResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// UserListItemResponse is one directory row.
type UserListItemResponse struct {
	ID             uuid.UUID          `json:"id"`
	Name           string             `json:"name"`
	Phone          string             `json:"phone"`
	EmploymentDate *time.Time         `json:"employment_date"`
	Occupancy      string             `json:"occupancy"`
	Positions      []PositionResponse `json:"positions"`
}

// UserProfileResponse is the fully hydrated profile view.
type UserProfileResponse struct {
	ID             uuid.UUID             `json:"id"`
	Name           string                `json:"name"`
	Phone          string                `json:"phone"`
	EmploymentDate *time.Time            `json:"employment_date"`
	Occupancy      string                `json:"occupancy"`
	Positions      []PositionResponse    `json:"positions"`
	Skills         []UserSkillResponse   `json:"skills"`
	Projects       []UserProjectResponse `json:"projects"`
	Managers       []UserRefResponse     `json:"managers"`
	Members        []UserRefResponse     `json:"members"`
}

func NewUserListItemResponse(u usecase.UserItem) UserListItemResponse {
	positions := make([]PositionResponse, 0, len(u.Positions))
	for _, p := range u.Positions {
		positions = append(positions, PositionResponse{ID: p.ID, Name: p.Name})
	}
	return UserListItemResponse{
		ID:             u.ID,
		Name:           u.Name,
		Phone:          u.Phone,
		EmploymentDate: u.EmploymentDate,
		Occupancy:      string(u.Occupancy),
		Positions:      positions,
	}
}

func NewUserListResponse(users []usecase.UserItem) []UserListItemResponse {
	out := make([]UserListItemResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserListItemResponse(u))
	}
	return out
}

func NewUserRefResponses(refs []usecase.UserRef) []UserRefResponse {
	out := make([]UserRefResponse, 0, len(refs))
	for _, r := range refs {
		out = append(out, UserRefResponse{ID: r.ID, Name: r.Name})
	}
	return out
}

func NewUserProfileResponse(p usecase.UserProfileView) UserProfileResponse {
	positions := make([]PositionResponse, 0, len(p.Positions))
	for _, pos := range p.Positions {
		positions = append(positions, PositionResponse{ID: pos.ID, Name: pos.Name})
	}
	skills := make([]UserSkillResponse, 0, len(p.Skills))
	for _, s := range p.Skills {
		skills = append(skills, NewUserSkillResponse(s))
	}
	projects := make([]UserProjectResponse, 0, len(p.Projects))
	for _, pr := range p.Projects {
		projects = append(projects, NewUserProjectResponse(pr))
	}
	return UserProfileResponse{
		ID:             p.ID,
		Name:           p.Name,
		Phone:          p.Phone,
		EmploymentDate: p.EmploymentDate,
		Occupancy:      string(p.Occupancy),
		Positions:      positions,
		Skills:         skills,
		Projects:       projects,
		Managers:       NewUserRefResponses(p.Managers),
		Members:        NewUserRefResponses(p.Members),
	}
}
