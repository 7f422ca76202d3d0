package usecase

import (
	"context"
	"errors"
	"strings"

	"staff-directory/internal/directory"
	"staff-directory/internal/repository"

	"github.com/google/uuid"
)

type ManagerUsecase interface {
	// AddManager makes the named user a manager of userID. The single
	// relation row makes both sides visible atomically: the manager gains a
	// member the instant the member gains the manager.
	AddManager(ctx context.Context, userID uuid.UUID, managerName string) error
	DeleteManager(ctx context.Context, userID uuid.UUID, managerID uuid.UUID) error

	// AddMember is the inverse write on the same relation.
	AddMember(ctx context.Context, userID uuid.UUID, memberName string) error
	DeleteMember(ctx context.Context, userID uuid.UUID, memberID uuid.UUID) error

	ListManagers(ctx context.Context, userID uuid.UUID) ([]UserRef, error)
	ListMembers(ctx context.Context, userID uuid.UUID) ([]UserRef, error)
}

type Managers struct {
	repo     repository.ManagerRepository
	users    repository.UserRepository
	facets   FacetUsecase
	notifier DirectoryNotifier
}

func NewManagerUsecase(repo repository.ManagerRepository, users repository.UserRepository, facets FacetUsecase, notifier DirectoryNotifier) *Managers {
	return &Managers{repo: repo, users: users, facets: facets, notifier: notifierOrNop(notifier)}
}

func (u *Managers) AddManager(ctx context.Context, userID uuid.UUID, managerName string) error {
	manager, err := u.findByName(ctx, managerName)
	if err != nil {
		return err
	}
	return u.connect(ctx, manager.ID, userID)
}

func (u *Managers) DeleteManager(ctx context.Context, userID uuid.UUID, managerID uuid.UUID) error {
	if managerID == uuid.Nil {
		return ErrInvalidInput
	}
	return u.disconnect(ctx, managerID, userID)
}

func (u *Managers) AddMember(ctx context.Context, userID uuid.UUID, memberName string) error {
	member, err := u.findByName(ctx, memberName)
	if err != nil {
		return err
	}
	return u.connect(ctx, userID, member.ID)
}

func (u *Managers) DeleteMember(ctx context.Context, userID uuid.UUID, memberID uuid.UUID) error {
	if memberID == uuid.Nil {
		return ErrInvalidInput
	}
	return u.disconnect(ctx, userID, memberID)
}

func (u *Managers) ListManagers(ctx context.Context, userID uuid.UUID) ([]UserRef, error) {
	rows, err := u.repo.ManagersOf(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return toUserRefs(rows), nil
}

func (u *Managers) ListMembers(ctx context.Context, userID uuid.UUID) ([]UserRef, error) {
	rows, err := u.repo.MembersOf(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return toUserRefs(rows), nil
}

func (u *Managers) findByName(ctx context.Context, name string) (repository.User, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > directory.MaxQueryLen {
		return repository.User{}, ErrInvalidInput
	}
	found, err := u.users.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return repository.User{}, ErrNotFound
		}
		return repository.User{}, ErrInternal
	}
	return found, nil
}

func (u *Managers) connect(ctx context.Context, managerID uuid.UUID, memberID uuid.UUID) error {
	if err := u.repo.Connect(ctx, managerID, memberID); err != nil {
		if errors.Is(err, repository.ErrSelfManagement) {
			return ErrInvalidInput
		}
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return ErrInternal
	}
	u.afterChange(ctx, memberID)
	return nil
}

func (u *Managers) disconnect(ctx context.Context, managerID uuid.UUID, memberID uuid.UUID) error {
	if err := u.repo.Disconnect(ctx, managerID, memberID); err != nil {
		if errors.Is(err, repository.ErrManagerLinkNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	u.afterChange(ctx, memberID)
	return nil
}

func (u *Managers) afterChange(ctx context.Context, memberID uuid.UUID) {
	// Who counts as "a manager" can change with every connect/disconnect.
	if u.facets != nil {
		u.facets.InvalidateLists(ctx)
	}
	u.notifier.DirectoryChanged(ChangeManager, memberID)
}

func toUserRefs(rows []repository.User) []UserRef {
	out := make([]UserRef, 0, len(rows))
	for _, r := range rows {
		out = append(out, UserRef{ID: r.ID, Name: r.Name})
	}
	return out
}
