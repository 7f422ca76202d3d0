package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"staff-directory/internal/directory"
	"staff-directory/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// memSkillRepo mimics the storage contract: one master row per skill name,
// garbage-collected when its last join row is deleted.
type memSkillRepo struct {
	masters map[string]uuid.UUID            // name -> skill id
	joins   map[uuid.UUID]repository.UserSkill // user_skill id -> row
}

func newMemSkillRepo() *memSkillRepo {
	return &memSkillRepo{
		masters: make(map[string]uuid.UUID),
		joins:   make(map[uuid.UUID]repository.UserSkill),
	}
}

func (r *memSkillRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]repository.UserSkill, error) {
	var out []repository.UserSkill
	for _, j := range r.joins {
		if j.UserID == userID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *memSkillRepo) Add(_ context.Context, userID uuid.UUID, name string) (repository.UserSkill, error) {
	skillID, ok := r.masters[name]
	if !ok {
		skillID = uuid.New()
		r.masters[name] = skillID
	}
	for _, j := range r.joins {
		if j.UserID == userID && j.SkillID == skillID {
			return repository.UserSkill{}, &pgconn.PgError{Code: "23505"}
		}
	}
	us := repository.UserSkill{
		ID:      uuid.New(),
		UserID:  userID,
		SkillID: skillID,
		Name:    name,
		Rating:  directory.DefaultRating,
		CreatedAt: time.Now(),
	}
	r.joins[us.ID] = us
	return us, nil
}

func (r *memSkillRepo) Delete(_ context.Context, id uuid.UUID, userID uuid.UUID) error {
	j, ok := r.joins[id]
	if !ok {
		return repository.ErrUserSkillNotFound
	}
	if j.UserID != userID {
		return repository.ErrUserSkillForbidden
	}
	delete(r.joins, id)
	for _, other := range r.joins {
		if other.SkillID == j.SkillID {
			return nil
		}
	}
	delete(r.masters, j.Name)
	return nil
}

func (r *memSkillRepo) UpdateRating(_ context.Context, id uuid.UUID, userID uuid.UUID, rating int) (repository.UserSkill, error) {
	j, ok := r.joins[id]
	if !ok || j.UserID != userID {
		return repository.UserSkill{}, repository.ErrUserSkillNotFound
	}
	j.Rating = rating
	r.joins[id] = j
	return j, nil
}

func TestUserSkills_AddDefaultsRating(t *testing.T) {
	uc := NewUserSkillUsecase(newMemSkillRepo(), nil, nil)

	created, err := uc.AddUserSkill(context.Background(), uuid.New(), "  Go  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Name != "Go" {
		t.Fatalf("name must be trimmed, got %q", created.Name)
	}
	if created.Rating != directory.DefaultRating {
		t.Fatalf("rating = %d, want default %d", created.Rating, directory.DefaultRating)
	}
}

func TestUserSkills_DuplicateAddIsConflict(t *testing.T) {
	repo := newMemSkillRepo()
	uc := NewUserSkillUsecase(repo, nil, nil)
	userID := uuid.New()

	if _, err := uc.AddUserSkill(context.Background(), userID, "Go"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := uc.AddUserSkill(context.Background(), userID, "Go"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if len(repo.masters) != 1 {
		t.Fatalf("expected exactly one master row, got %d", len(repo.masters))
	}
}

func TestUserSkills_SharedMasterSurvivesOtherHolders(t *testing.T) {
	repo := newMemSkillRepo()
	uc := NewUserSkillUsecase(repo, nil, nil)
	first, second := uuid.New(), uuid.New()

	a, err := uc.AddUserSkill(context.Background(), first, "Go")
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	b, err := uc.AddUserSkill(context.Background(), second, "Go")
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if a.SkillID != b.SkillID {
		t.Fatal("both users must share one master skill row")
	}

	// Not the last reference: the master stays.
	if err := uc.DeleteUserSkill(context.Background(), first, a.ID); err != nil {
		t.Fatalf("delete first: %v", err)
	}
	if len(repo.masters) != 1 {
		t.Fatal("master must survive while another join references it")
	}

	// Last reference gone: the master goes with it.
	if err := uc.DeleteUserSkill(context.Background(), second, b.ID); err != nil {
		t.Fatalf("delete second: %v", err)
	}
	if len(repo.masters) != 0 {
		t.Fatal("orphaned master must be garbage-collected")
	}
}

func TestUserSkills_UpdateRatingBounds(t *testing.T) {
	repo := newMemSkillRepo()
	uc := NewUserSkillUsecase(repo, nil, nil)
	userID := uuid.New()

	created, err := uc.AddUserSkill(context.Background(), userID, "Go")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	for _, rating := range []int{directory.MinRating - 1, directory.MaxRating + 1, 0} {
		if _, err := uc.UpdateRating(context.Background(), userID, created.ID, rating); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("rating %d: expected ErrInvalidInput, got %v", rating, err)
		}
	}

	updated, err := uc.UpdateRating(context.Background(), userID, created.ID, 80)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Rating != 80 {
		t.Fatalf("rating = %d, want 80", updated.Rating)
	}
}

func TestUserSkills_DeleteForeignRowForbidden(t *testing.T) {
	repo := newMemSkillRepo()
	uc := NewUserSkillUsecase(repo, nil, nil)

	created, err := uc.AddUserSkill(context.Background(), uuid.New(), "Go")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := uc.DeleteUserSkill(context.Background(), uuid.New(), created.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
