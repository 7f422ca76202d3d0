package usecase

import (
	"context"
	"errors"
	"testing"

	"staff-directory/internal/repository"

	"github.com/google/uuid"
)

type userLookupRepo struct {
	mockUserRepo
	byName map[string]repository.User
}

func (r *userLookupRepo) GetByName(_ context.Context, name string) (repository.User, error) {
	u, ok := r.byName[name]
	if !ok {
		return repository.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func TestManagers_AddManagerSymmetry(t *testing.T) {
	rel := newMockManagerRepo()
	alice := repository.User{ID: uuid.New(), Name: "Alice"}
	bob := repository.User{ID: uuid.New(), Name: "Bob"}
	rel.names[alice.ID] = alice.Name
	rel.names[bob.ID] = bob.Name
	users := &userLookupRepo{byName: map[string]repository.User{"Bob": bob}}

	uc := NewManagerUsecase(rel, users, nil, nil)

	// Alice adds Bob as her manager.
	if err := uc.AddManager(context.Background(), alice.ID, "Bob"); err != nil {
		t.Fatalf("AddManager: %v", err)
	}

	managers, err := uc.ListManagers(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("ListManagers: %v", err)
	}
	if len(managers) != 1 || managers[0].ID != bob.ID {
		t.Fatalf("Bob must appear in Alice's managers: %+v", managers)
	}

	members, err := uc.ListMembers(context.Background(), bob.ID)
	if err != nil {
		t.Fatalf("ListMembers: %v", err)
	}
	if len(members) != 1 || members[0].ID != alice.ID {
		t.Fatalf("Alice must appear in Bob's members: %+v", members)
	}

	// Removing the link clears both directions.
	if err := uc.DeleteManager(context.Background(), alice.ID, bob.ID); err != nil {
		t.Fatalf("DeleteManager: %v", err)
	}
	managers, _ = uc.ListManagers(context.Background(), alice.ID)
	members, _ = uc.ListMembers(context.Background(), bob.ID)
	if len(managers) != 0 || len(members) != 0 {
		t.Fatalf("both sides must be removed, got managers=%+v members=%+v", managers, members)
	}
}

func TestManagers_AddManagerUnknownName(t *testing.T) {
	uc := NewManagerUsecase(newMockManagerRepo(), &userLookupRepo{byName: map[string]repository.User{}}, nil, nil)

	if err := uc.AddManager(context.Background(), uuid.New(), "Nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestManagers_SelfManagementRejected(t *testing.T) {
	rel := newMockManagerRepo()
	me := repository.User{ID: uuid.New(), Name: "Me"}
	rel.names[me.ID] = me.Name
	users := &userLookupRepo{byName: map[string]repository.User{"Me": me}}

	uc := NewManagerUsecase(rel, users, nil, nil)
	if err := uc.AddManager(context.Background(), me.ID, "Me"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestManagers_DeleteMissingLink(t *testing.T) {
	uc := NewManagerUsecase(newMockManagerRepo(), &userLookupRepo{}, nil, nil)

	if err := uc.DeleteManager(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
