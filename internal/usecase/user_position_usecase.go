package usecase

import (
	"context"
	"errors"
	"strings"

	"staff-directory/internal/directory"
	"staff-directory/internal/repository"

	"github.com/google/uuid"
)

type UserPositionUsecase interface {
	ListUserPositions(ctx context.Context, userID uuid.UUID) ([]PositionItem, error)
	// AddUserPosition joins the user to an existing master position by name;
	// unknown position names are rejected.
	AddUserPosition(ctx context.Context, userID uuid.UUID, name string) (PositionItem, error)
	DeleteUserPosition(ctx context.Context, userID uuid.UUID, userPositionID uuid.UUID) error
}

type UserPositions struct {
	repo     repository.UserPositionRepository
	facets   FacetUsecase
	notifier DirectoryNotifier
}

func NewUserPositionUsecase(repo repository.UserPositionRepository, facets FacetUsecase, notifier DirectoryNotifier) *UserPositions {
	return &UserPositions{repo: repo, facets: facets, notifier: notifierOrNop(notifier)}
}

func (u *UserPositions) ListUserPositions(ctx context.Context, userID uuid.UUID) ([]PositionItem, error) {
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]PositionItem, 0, len(items))
	for _, it := range items {
		out = append(out, PositionItem{ID: it.ID, Name: it.Name})
	}
	return out, nil
}

func (u *UserPositions) AddUserPosition(ctx context.Context, userID uuid.UUID, name string) (PositionItem, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > directory.MaxQueryLen {
		return PositionItem{}, ErrInvalidInput
	}

	created, err := u.repo.Add(ctx, userID, name)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPositionNotFound):
			return PositionItem{}, ErrNotFound
		case isUniqueViolation(err):
			return PositionItem{}, ErrAlreadyExists
		default:
			return PositionItem{}, ErrInternal
		}
	}

	u.notifier.DirectoryChanged(ChangePosition, userID)
	return PositionItem{ID: created.ID, Name: created.Name}, nil
}

func (u *UserPositions) DeleteUserPosition(ctx context.Context, userID uuid.UUID, userPositionID uuid.UUID) error {
	if userPositionID == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, userPositionID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserPositionNotFound):
			return ErrNotFound
		case errors.Is(err, repository.ErrUserPositionForbidden):
			return ErrForbidden
		default:
			return ErrInternal
		}
	}

	if u.facets != nil {
		u.facets.InvalidateLists(ctx)
	}
	u.notifier.DirectoryChanged(ChangePosition, userID)
	return nil
}
