package usecase

import (
	"context"
	"errors"
	"testing"

	"staff-directory/internal/directory"
	"staff-directory/internal/repository"

	"github.com/google/uuid"
)

type mockDirectoryRepo struct {
	rows  []repository.UserWithPositions
	total int64
	err   error

	gotPred   directory.Predicate
	gotLimit  int
	gotOffset int
}

func (m *mockDirectoryRepo) FilterUsers(_ context.Context, pred directory.Predicate, limit, offset int) ([]repository.UserWithPositions, int64, error) {
	m.gotPred = pred
	m.gotLimit = limit
	m.gotOffset = offset
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.rows, m.total, nil
}

type mockUserRepo struct {
	users []repository.User
	err   error

	gotQuery   string
	gotExclude uuid.UUID
}

func (m *mockUserRepo) GetByID(context.Context, uuid.UUID) (repository.User, error) {
	return repository.User{}, repository.ErrUserNotFound
}
func (m *mockUserRepo) GetByName(context.Context, string) (repository.User, error) {
	return repository.User{}, repository.ErrUserNotFound
}
func (m *mockUserRepo) GetProfile(context.Context, uuid.UUID) (repository.UserProfile, error) {
	return repository.UserProfile{}, repository.ErrUserNotFound
}
func (m *mockUserRepo) ListAll(context.Context) ([]repository.UserWithPositions, error) {
	return nil, nil
}
func (m *mockUserRepo) SearchByName(_ context.Context, query string, excludeID uuid.UUID) ([]repository.User, error) {
	m.gotQuery = query
	m.gotExclude = excludeID
	return m.users, m.err
}
func (m *mockUserRepo) UpdateInfo(context.Context, uuid.UUID, repository.UserInfoUpdate) (repository.User, error) {
	return repository.User{}, repository.ErrUserNotFound
}

func TestDirectoryFilter_RejectsInvalidPaging(t *testing.T) {
	uc := NewDirectoryUsecase(&mockDirectoryRepo{}, &mockUserRepo{})

	for _, req := range []directory.FilterRequest{
		{Page: 0, PerPage: 10},
		{Page: 1, PerPage: 0},
	} {
		if _, err := uc.Filter(context.Background(), req); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", req, err)
		}
	}
}

func TestDirectoryFilter_PaginationMetadata(t *testing.T) {
	repo := &mockDirectoryRepo{total: 25}
	uc := NewDirectoryUsecase(repo, &mockUserRepo{})

	res, err := uc.Filter(context.Background(), directory.FilterRequest{Page: 3, PerPage: 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.gotLimit != 12 || repo.gotOffset != 24 {
		t.Fatalf("limit/offset = %d/%d, want 12/24", repo.gotLimit, repo.gotOffset)
	}
	if res.Pagination.TotalPages != 3 {
		t.Fatalf("totalPages = %d, want 3", res.Pagination.TotalPages)
	}
	if len(res.Users) != 0 {
		t.Fatalf("page past the end must be empty, got %d rows", len(res.Users))
	}
}

func TestDirectoryFilter_EmptyRequestBuildsMatchAllPredicate(t *testing.T) {
	repo := &mockDirectoryRepo{total: 2}
	uc := NewDirectoryUsecase(repo, &mockUserRepo{})

	if _, err := uc.Filter(context.Background(), directory.FilterRequest{Page: 1, PerPage: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	root, ok := repo.gotPred.(directory.And)
	if !ok {
		t.Fatalf("expected And predicate, got %T", repo.gotPred)
	}
	if len(root.Preds) != 1 {
		t.Fatalf("empty facets must be omitted, got %d clauses", len(root.Preds))
	}
}

func TestDirectoryFilter_StorageErrorIsAtomic(t *testing.T) {
	uc := NewDirectoryUsecase(&mockDirectoryRepo{err: errors.New("connection refused")}, &mockUserRepo{})

	res, err := uc.Filter(context.Background(), directory.FilterRequest{Page: 1, PerPage: 10})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if res.Users != nil || res.Pagination.TotalPages != 0 {
		t.Fatalf("no partial result on storage failure, got %+v", res)
	}
}

func TestDirectorySearch_EmptyQueryReturnsNothing(t *testing.T) {
	users := &mockUserRepo{users: []repository.User{{ID: uuid.New(), Name: "Alice"}}}
	uc := NewDirectoryUsecase(&mockDirectoryRepo{}, users)

	got, err := uc.Search(context.Background(), uuid.New(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("empty query must return an empty list, got %d", len(got))
	}
	if users.gotQuery != "" && len(users.gotQuery) > 0 {
		t.Fatal("empty query must not reach storage")
	}
}

func TestDirectorySearch_ExcludesRequester(t *testing.T) {
	me := uuid.New()
	users := &mockUserRepo{users: []repository.User{{ID: uuid.New(), Name: "Alice Smith"}}}
	uc := NewDirectoryUsecase(&mockDirectoryRepo{}, users)

	got, err := uc.Search(context.Background(), me, "Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users.gotExclude != me {
		t.Fatalf("requester id must be passed for exclusion, got %s", users.gotExclude)
	}
	if len(got) != 1 || got[0].Name != "Alice Smith" {
		t.Fatalf("unexpected result: %+v", got)
	}
}
