package usecase

import (
	"context"
	"errors"
	"strings"

	"staff-directory/internal/directory"
	"staff-directory/internal/repository"

	"github.com/google/uuid"
)

type UserSkillUsecase interface {
	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]UserSkillItem, error)
	// AddUserSkill upserts the master skill by trimmed name and attaches it to
	// the user at the default rating. Adding a skill the user already has is
	// a conflict, not a second join row.
	AddUserSkill(ctx context.Context, userID uuid.UUID, name string) (UserSkillItem, error)
	UpdateRating(ctx context.Context, userID uuid.UUID, userSkillID uuid.UUID, rating int) (UserSkillItem, error)
	DeleteUserSkill(ctx context.Context, userID uuid.UUID, userSkillID uuid.UUID) error
}

type UserSkills struct {
	repo     repository.UserSkillRepository
	facets   FacetUsecase
	notifier DirectoryNotifier
}

func NewUserSkillUsecase(repo repository.UserSkillRepository, facets FacetUsecase, notifier DirectoryNotifier) *UserSkills {
	return &UserSkills{repo: repo, facets: facets, notifier: notifierOrNop(notifier)}
}

func (u *UserSkills) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]UserSkillItem, error) {
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]UserSkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, toUserSkillItem(it))
	}
	return out, nil
}

func (u *UserSkills) AddUserSkill(ctx context.Context, userID uuid.UUID, name string) (UserSkillItem, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > directory.MaxQueryLen {
		return UserSkillItem{}, ErrInvalidInput
	}

	created, err := u.repo.Add(ctx, userID, name)
	if err != nil {
		if isUniqueViolation(err) {
			return UserSkillItem{}, ErrAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return UserSkillItem{}, ErrNotFound
		}
		return UserSkillItem{}, ErrInternal
	}

	u.invalidateFacets(ctx)
	u.notifier.DirectoryChanged(ChangeSkill, userID)
	return toUserSkillItem(created), nil
}

func (u *UserSkills) UpdateRating(ctx context.Context, userID uuid.UUID, userSkillID uuid.UUID, rating int) (UserSkillItem, error) {
	if userSkillID == uuid.Nil {
		return UserSkillItem{}, ErrInvalidInput
	}
	if rating < directory.MinRating || rating > directory.MaxRating {
		return UserSkillItem{}, ErrInvalidInput
	}

	updated, err := u.repo.UpdateRating(ctx, userSkillID, userID, rating)
	if err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return UserSkillItem{}, ErrNotFound
		}
		return UserSkillItem{}, ErrInternal
	}

	u.notifier.DirectoryChanged(ChangeSkill, userID)
	return toUserSkillItem(updated), nil
}

func (u *UserSkills) DeleteUserSkill(ctx context.Context, userID uuid.UUID, userSkillID uuid.UUID) error {
	if userSkillID == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, userSkillID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserSkillNotFound):
			return ErrNotFound
		case errors.Is(err, repository.ErrUserSkillForbidden):
			return ErrForbidden
		default:
			return ErrInternal
		}
	}

	u.invalidateFacets(ctx)
	u.notifier.DirectoryChanged(ChangeSkill, userID)
	return nil
}

func (u *UserSkills) invalidateFacets(ctx context.Context) {
	if u.facets != nil {
		u.facets.InvalidateLists(ctx)
	}
}

func toUserSkillItem(us repository.UserSkill) UserSkillItem {
	return UserSkillItem{
		ID:        us.ID,
		SkillID:   us.SkillID,
		Name:      us.Name,
		Rating:    us.Rating,
		CreatedAt: us.CreatedAt,
	}
}
