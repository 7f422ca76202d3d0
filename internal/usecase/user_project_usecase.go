package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"staff-directory/internal/directory"
	"staff-directory/internal/repository"

	"github.com/google/uuid"
)

const maxProjectDescriptionLen = 350

type AddUserProjectInput struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     *time.Time
}

type UpdateUserProjectInput struct {
	Description string
	StartDate   time.Time
	EndDate     *time.Time
}

type UserProjectUsecase interface {
	ListUserProjects(ctx context.Context, userID uuid.UUID) ([]UserProjectItem, error)
	// GetByProject returns the caller's own assignment row for a project.
	GetByProject(ctx context.Context, userID uuid.UUID, projectID uuid.UUID) (UserProjectItem, error)
	AddUserProject(ctx context.Context, userID uuid.UUID, in AddUserProjectInput) (UserProjectItem, error)
	UpdateUserProject(ctx context.Context, userID uuid.UUID, userProjectID uuid.UUID, in UpdateUserProjectInput) (UserProjectItem, error)
	DeleteUserProject(ctx context.Context, userID uuid.UUID, userProjectID uuid.UUID) error
}

type UserProjects struct {
	repo     repository.UserProjectRepository
	facets   FacetUsecase
	notifier DirectoryNotifier
}

func NewUserProjectUsecase(repo repository.UserProjectRepository, facets FacetUsecase, notifier DirectoryNotifier) *UserProjects {
	return &UserProjects{repo: repo, facets: facets, notifier: notifierOrNop(notifier)}
}

func (u *UserProjects) ListUserProjects(ctx context.Context, userID uuid.UUID) ([]UserProjectItem, error) {
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]UserProjectItem, 0, len(items))
	for _, it := range items {
		out = append(out, toUserProjectItem(it))
	}
	return out, nil
}

func (u *UserProjects) GetByProject(ctx context.Context, userID uuid.UUID, projectID uuid.UUID) (UserProjectItem, error) {
	if projectID == uuid.Nil {
		return UserProjectItem{}, ErrInvalidInput
	}
	it, err := u.repo.FindByProjectAndUser(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserProjectNotFound) {
			return UserProjectItem{}, ErrNotFound
		}
		return UserProjectItem{}, ErrInternal
	}
	return toUserProjectItem(it), nil
}

func (u *UserProjects) AddUserProject(ctx context.Context, userID uuid.UUID, in AddUserProjectInput) (UserProjectItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > directory.MaxQueryLen {
		return UserProjectItem{}, ErrInvalidInput
	}
	if err := validateProjectDates(in.Description, in.StartDate, in.EndDate); err != nil {
		return UserProjectItem{}, err
	}

	created, err := u.repo.Add(ctx, userID, name, repository.UserProjectUpdate{
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return UserProjectItem{}, ErrAlreadyExists
		}
		return UserProjectItem{}, ErrInternal
	}

	u.invalidateFacets(ctx)
	u.notifier.DirectoryChanged(ChangeProject, userID)
	return toUserProjectItem(created), nil
}

func (u *UserProjects) UpdateUserProject(ctx context.Context, userID uuid.UUID, userProjectID uuid.UUID, in UpdateUserProjectInput) (UserProjectItem, error) {
	if userProjectID == uuid.Nil {
		return UserProjectItem{}, ErrInvalidInput
	}
	if err := validateProjectDates(in.Description, in.StartDate, in.EndDate); err != nil {
		return UserProjectItem{}, err
	}

	updated, err := u.repo.Update(ctx, userProjectID, userID, repository.UserProjectUpdate{
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserProjectNotFound) {
			return UserProjectItem{}, ErrNotFound
		}
		return UserProjectItem{}, ErrInternal
	}

	u.notifier.DirectoryChanged(ChangeProject, userID)
	return toUserProjectItem(updated), nil
}

func (u *UserProjects) DeleteUserProject(ctx context.Context, userID uuid.UUID, userProjectID uuid.UUID) error {
	if userProjectID == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, userProjectID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserProjectNotFound):
			return ErrNotFound
		case errors.Is(err, repository.ErrUserProjectForbidden):
			return ErrForbidden
		default:
			return ErrInternal
		}
	}

	u.invalidateFacets(ctx)
	u.notifier.DirectoryChanged(ChangeProject, userID)
	return nil
}

func (u *UserProjects) invalidateFacets(ctx context.Context) {
	if u.facets != nil {
		u.facets.InvalidateLists(ctx)
	}
}

func validateProjectDates(description string, startDate time.Time, endDate *time.Time) error {
	if len(description) > maxProjectDescriptionLen {
		return ErrInvalidInput
	}
	if startDate.IsZero() {
		return ErrInvalidInput
	}
	if endDate != nil && endDate.Before(startDate) {
		return ErrInvalidInput
	}
	return nil
}

func toUserProjectItem(up repository.UserProject) UserProjectItem {
	return UserProjectItem{
		ID:          up.ID,
		ProjectID:   up.ProjectID,
		Name:        up.Name,
		Description: up.Description,
		StartDate:   up.StartDate,
		EndDate:     up.EndDate,
	}
}
