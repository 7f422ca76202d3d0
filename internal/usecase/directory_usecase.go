package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staff-directory/internal/directory"
	"staff-directory/internal/repository"

	"github.com/google/uuid"
)

// PositionItem is a position assignment as rendered in the directory list.
type PositionItem struct {
	ID   uuid.UUID
	Name string
}

// UserItem is one directory row: the user with the positions the list shows.
type UserItem struct {
	ID             uuid.UUID
	Name           string
	Phone          string
	EmploymentDate *time.Time
	Occupancy      directory.Occupancy
	Positions      []PositionItem
}

// UserRef is the minimal shape returned by the quick-add name search.
type UserRef struct {
	ID   uuid.UUID
	Name string
}

type FilterResult struct {
	Users      []UserItem
	Pagination directory.Page
}

type DirectoryUsecase interface {
	// Filter runs the faceted, paginated directory query. The requester's own
	// row is not excluded here; browsing the directory includes yourself.
	Filter(ctx context.Context, req directory.FilterRequest) (FilterResult, error)
	ListAll(ctx context.Context) ([]UserItem, error)
	// Search is the quick-add typeahead: name contains, requester excluded,
	// empty query returns nothing.
	Search(ctx context.Context, requesterID uuid.UUID, query string) ([]UserRef, error)
}

type Directory struct {
	dir   repository.DirectoryRepository
	users repository.UserRepository
}

func NewDirectoryUsecase(dir repository.DirectoryRepository, users repository.UserRepository) *Directory {
	return &Directory{dir: dir, users: users}
}

func (u *Directory) Filter(ctx context.Context, req directory.FilterRequest) (FilterResult, error) {
	if err := req.Validate(); err != nil {
		return FilterResult{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	pred := directory.BuildPredicate(req)
	rows, total, err := u.dir.FilterUsers(ctx, pred, req.PerPage, directory.Offset(req.Page, req.PerPage))
	if err != nil {
		return FilterResult{}, ErrInternal
	}

	return FilterResult{
		Users:      toUserItems(rows),
		Pagination: directory.NewPage(req.Page, req.PerPage, total),
	}, nil
}

func (u *Directory) ListAll(ctx context.Context) ([]UserItem, error) {
	rows, err := u.users.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return toUserItems(rows), nil
}

func (u *Directory) Search(ctx context.Context, requesterID uuid.UUID, query string) ([]UserRef, error) {
	if len(query) > directory.MaxQueryLen {
		return nil, fmt.Errorf("%w: search query cannot be longer than %d characters", ErrInvalidInput, directory.MaxQueryLen)
	}
	if query == "" {
		return []UserRef{}, nil
	}

	rows, err := u.users.SearchByName(ctx, query, requesterID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return []UserRef{}, nil
		}
		return nil, ErrInternal
	}

	out := make([]UserRef, 0, len(rows))
	for _, r := range rows {
		out = append(out, UserRef{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

func toUserItems(rows []repository.UserWithPositions) []UserItem {
	out := make([]UserItem, 0, len(rows))
	for _, r := range rows {
		positions := make([]PositionItem, 0, len(r.Positions))
		for _, p := range r.Positions {
			positions = append(positions, PositionItem{ID: p.ID, Name: p.Name})
		}
		out = append(out, UserItem{
			ID:             r.ID,
			Name:           r.Name,
			Phone:          r.Phone,
			EmploymentDate: r.EmploymentDate,
			Occupancy:      r.Occupancy,
			Positions:      positions,
		})
	}
	return out
}
