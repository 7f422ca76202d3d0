package usecase

import (
	"context"
	"errors"
	"regexp"
	"time"

	"staff-directory/internal/directory"
	"staff-directory/internal/repository"

	"github.com/google/uuid"
)

// phone format is a local nine-digit number starting with 0.
var phonePattern = regexp.MustCompile(`^0[0-9]{8}$`)

type UserSkillItem struct {
	ID        uuid.UUID
	SkillID   uuid.UUID
	Name      string
	Rating    int
	CreatedAt time.Time
}

type UserProjectItem struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Name        string
	Description string
	StartDate   time.Time
	EndDate     *time.Time
}

// UserProfileView is the fully hydrated profile: every facet collection
// loaded and deterministically ordered.
type UserProfileView struct {
	ID             uuid.UUID
	Name           string
	Phone          string
	EmploymentDate *time.Time
	Occupancy      directory.Occupancy
	Positions      []PositionItem
	Skills         []UserSkillItem
	Projects       []UserProjectItem
	Managers       []UserRef
	Members        []UserRef
}

type UpdateUserInfoInput struct {
	Phone          string
	EmploymentDate *time.Time
	Occupancy      directory.Occupancy
}

type UserUsecase interface {
	GetProfile(ctx context.Context, id uuid.UUID) (UserProfileView, error)
	UpdateInfo(ctx context.Context, id uuid.UUID, in UpdateUserInfoInput) (UserProfileView, error)
}

type Users struct {
	repo     repository.UserRepository
	notifier DirectoryNotifier
}

func NewUserUsecase(repo repository.UserRepository, notifier DirectoryNotifier) *Users {
	return &Users{repo: repo, notifier: notifierOrNop(notifier)}
}

func (u *Users) GetProfile(ctx context.Context, id uuid.UUID) (UserProfileView, error) {
	if id == uuid.Nil {
		return UserProfileView{}, ErrInvalidInput
	}
	p, err := u.repo.GetProfile(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return UserProfileView{}, ErrNotFound
		}
		return UserProfileView{}, ErrInternal
	}
	return toProfileView(p), nil
}

func (u *Users) UpdateInfo(ctx context.Context, id uuid.UUID, in UpdateUserInfoInput) (UserProfileView, error) {
	if id == uuid.Nil {
		return UserProfileView{}, ErrInvalidInput
	}
	if !phonePattern.MatchString(in.Phone) {
		return UserProfileView{}, ErrInvalidInput
	}
	if !directory.ValidOccupancy(in.Occupancy) {
		return UserProfileView{}, ErrInvalidInput
	}

	_, err := u.repo.UpdateInfo(ctx, id, repository.UserInfoUpdate{
		Phone:          in.Phone,
		EmploymentDate: in.EmploymentDate,
		Occupancy:      in.Occupancy,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return UserProfileView{}, ErrNotFound
		}
		return UserProfileView{}, ErrInternal
	}

	u.notifier.DirectoryChanged(ChangeProfile, id)
	return u.GetProfile(ctx, id)
}

func toProfileView(p repository.UserProfile) UserProfileView {
	v := UserProfileView{
		ID:             p.ID,
		Name:           p.Name,
		Phone:          p.Phone,
		EmploymentDate: p.EmploymentDate,
		Occupancy:      p.Occupancy,
		Positions:      make([]PositionItem, 0, len(p.Positions)),
		Skills:         make([]UserSkillItem, 0, len(p.Skills)),
		Projects:       make([]UserProjectItem, 0, len(p.Projects)),
		Managers:       make([]UserRef, 0, len(p.Managers)),
		Members:        make([]UserRef, 0, len(p.Members)),
	}
	for _, pos := range p.Positions {
		v.Positions = append(v.Positions, PositionItem{ID: pos.ID, Name: pos.Name})
	}
	for _, s := range p.Skills {
		v.Skills = append(v.Skills, UserSkillItem{
			ID: s.ID, SkillID: s.SkillID, Name: s.Name, Rating: s.Rating, CreatedAt: s.CreatedAt,
		})
	}
	for _, pr := range p.Projects {
		v.Projects = append(v.Projects, UserProjectItem{
			ID: pr.ID, ProjectID: pr.ProjectID, Name: pr.Name,
			Description: pr.Description, StartDate: pr.StartDate, EndDate: pr.EndDate,
		})
	}
	for _, m := range p.Managers {
		v.Managers = append(v.Managers, UserRef{ID: m.ID, Name: m.Name})
	}
	for _, m := range p.Members {
		v.Members = append(v.Members, UserRef{ID: m.ID, Name: m.Name})
	}
	return v
}
