package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"staff-directory/internal/repository"

	"github.com/google/uuid"
)

type mockFacetRepo struct {
	skills    []repository.FacetValue
	positions []repository.FacetValue
	deleteErr error

	searchCalls int
	listCalls   int
}

func (m *mockFacetRepo) AllSkills(context.Context) ([]repository.FacetValue, error) {
	m.listCalls++
	return m.skills, nil
}
func (m *mockFacetRepo) AllProjects(context.Context) ([]repository.FacetValue, error) {
	m.listCalls++
	return nil, nil
}
func (m *mockFacetRepo) AllPositions(context.Context) ([]repository.FacetValue, error) {
	m.listCalls++
	return m.positions, nil
}
func (m *mockFacetRepo) SearchSkills(_ context.Context, _ string) ([]repository.FacetValue, error) {
	m.searchCalls++
	return m.skills, nil
}
func (m *mockFacetRepo) SearchProjects(context.Context, string) ([]repository.FacetValue, error) {
	m.searchCalls++
	return nil, nil
}
func (m *mockFacetRepo) SearchPositions(context.Context, string) ([]repository.FacetValue, error) {
	m.searchCalls++
	return m.positions, nil
}
func (m *mockFacetRepo) CreatePosition(_ context.Context, name string) (repository.FacetValue, error) {
	return repository.FacetValue{ID: uuid.New(), Name: name}, nil
}
func (m *mockFacetRepo) DeleteSkill(context.Context, uuid.UUID) error {
	return m.deleteErr
}

type mockManagerRepo struct {
	managers map[uuid.UUID]map[uuid.UUID]bool // manager -> members
	names    map[uuid.UUID]string
}

func newMockManagerRepo() *mockManagerRepo {
	return &mockManagerRepo{
		managers: make(map[uuid.UUID]map[uuid.UUID]bool),
		names:    make(map[uuid.UUID]string),
	}
}

func (m *mockManagerRepo) Connect(_ context.Context, managerID, memberID uuid.UUID) error {
	if managerID == memberID {
		return repository.ErrSelfManagement
	}
	if m.managers[managerID] == nil {
		m.managers[managerID] = make(map[uuid.UUID]bool)
	}
	m.managers[managerID][memberID] = true
	return nil
}

func (m *mockManagerRepo) Disconnect(_ context.Context, managerID, memberID uuid.UUID) error {
	if !m.managers[managerID][memberID] {
		return repository.ErrManagerLinkNotFound
	}
	delete(m.managers[managerID], memberID)
	return nil
}

func (m *mockManagerRepo) ManagersOf(_ context.Context, userID uuid.UUID) ([]repository.User, error) {
	var out []repository.User
	for managerID, members := range m.managers {
		if members[userID] {
			out = append(out, repository.User{ID: managerID, Name: m.names[managerID]})
		}
	}
	return out, nil
}

func (m *mockManagerRepo) MembersOf(_ context.Context, userID uuid.UUID) ([]repository.User, error) {
	var out []repository.User
	for memberID := range m.managers[userID] {
		out = append(out, repository.User{ID: memberID, Name: m.names[memberID]})
	}
	return out, nil
}

func (m *mockManagerRepo) AllManagers(context.Context) ([]repository.User, error) {
	var out []repository.User
	for managerID, members := range m.managers {
		if len(members) > 0 {
			out = append(out, repository.User{ID: managerID, Name: m.names[managerID]})
		}
	}
	return out, nil
}

type mapCache struct {
	data map[string][]FacetValueItem
}

func (c *mapCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	p, ok := out.(*[]FacetValueItem)
	if !ok {
		return false, nil
	}
	*p = v
	return true, nil
}

func (c *mapCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	if v, ok := value.([]FacetValueItem); ok {
		if c.data == nil {
			c.data = make(map[string][]FacetValueItem)
		}
		c.data[key] = v
	}
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func TestFacetSearch_EmptyQueryReturnsEmpty(t *testing.T) {
	repo := &mockFacetRepo{skills: []repository.FacetValue{{ID: uuid.New(), Name: "Go"}}}
	uc := NewFacetUsecase(repo, newMockManagerRepo(), nil, 0, nil)

	got, err := uc.SearchSkills(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("empty query must not match all, got %d values", len(got))
	}
	if repo.searchCalls != 0 {
		t.Fatal("empty query must not reach storage")
	}
}

func TestFacetAllSkills_CachesSecondRead(t *testing.T) {
	repo := &mockFacetRepo{skills: []repository.FacetValue{{ID: uuid.New(), Name: "Go"}}}
	uc := NewFacetUsecase(repo, newMockManagerRepo(), &mapCache{}, time.Minute, nil)

	for i := 0; i < 2; i++ {
		got, err := uc.AllSkills(context.Background())
		if err != nil {
			t.Fatalf("read %d: unexpected error: %v", i, err)
		}
		if len(got) != 1 || got[0].Name != "Go" {
			t.Fatalf("read %d: unexpected values: %+v", i, got)
		}
	}
	if repo.listCalls != 1 {
		t.Fatalf("expected 1 storage read, got %d", repo.listCalls)
	}
}

func TestFacetDeleteSkill_InUse(t *testing.T) {
	repo := &mockFacetRepo{deleteErr: repository.ErrFacetInUse}
	uc := NewFacetUsecase(repo, newMockManagerRepo(), nil, 0, nil)

	if err := uc.DeleteSkill(context.Background(), uuid.New()); !errors.Is(err, ErrInUse) {
		t.Fatalf("expected ErrInUse, got %v", err)
	}
}

func TestFacetAllManagers_OnlyUsersWithMembers(t *testing.T) {
	repo := newMockManagerRepo()
	alice, bob := uuid.New(), uuid.New()
	repo.names[alice] = "Alice"
	repo.names[bob] = "Bob"
	if err := repo.Connect(context.Background(), alice, bob); err != nil {
		t.Fatalf("connect: %v", err)
	}

	uc := NewFacetUsecase(&mockFacetRepo{}, repo, nil, 0, nil)
	got, err := uc.AllManagers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Alice" {
		t.Fatalf("expected only Alice, got %+v", got)
	}
}
