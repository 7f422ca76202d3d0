package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"staff-directory/internal/directory"
	"staff-directory/internal/repository"

	"github.com/google/uuid"
)

type profileUserRepo struct {
	mockUserRepo

	profile repository.UserProfile

	gotUpdate   repository.UserInfoUpdate
	updateCalls int
}

func (m *profileUserRepo) GetProfile(_ context.Context, id uuid.UUID) (repository.UserProfile, error) {
	if id != m.profile.ID {
		return repository.UserProfile{}, repository.ErrUserNotFound
	}
	return m.profile, nil
}

func (m *profileUserRepo) UpdateInfo(_ context.Context, id uuid.UUID, in repository.UserInfoUpdate) (repository.User, error) {
	if id != m.profile.ID {
		return repository.User{}, repository.ErrUserNotFound
	}
	m.gotUpdate = in
	m.updateCalls++
	m.profile.Phone = in.Phone
	m.profile.EmploymentDate = in.EmploymentDate
	m.profile.Occupancy = in.Occupancy
	return m.profile.User, nil
}

type recordingNotifier struct {
	kinds []string
	ids   []uuid.UUID
}

func (n *recordingNotifier) DirectoryChanged(kind string, userID uuid.UUID) {
	n.kinds = append(n.kinds, kind)
	n.ids = append(n.ids, userID)
}

func newProfileRepo() *profileUserRepo {
	return &profileUserRepo{
		profile: repository.UserProfile{
			User: repository.User{
				ID:        uuid.New(),
				Name:      "Alice",
				Phone:     "012345678",
				Occupancy: directory.OccupancyFull,
			},
		},
	}
}

func TestUserGetProfile(t *testing.T) {
	repo := newProfileRepo()
	repo.profile.Skills = []repository.UserSkill{
		{ID: uuid.New(), SkillID: uuid.New(), Name: "Go", Rating: 80},
	}
	uc := NewUserUsecase(repo, nil)

	got, err := uc.GetProfile(context.Background(), repo.profile.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.Name != "Alice" || len(got.Skills) != 1 || got.Skills[0].Name != "Go" {
		t.Fatalf("unexpected profile: %+v", got)
	}
	// Empty collections come back as empty slices, never nil.
	if got.Projects == nil || got.Managers == nil || got.Members == nil {
		t.Fatal("expected empty slices for missing collections")
	}
}

func TestUserGetProfileNotFound(t *testing.T) {
	uc := NewUserUsecase(newProfileRepo(), nil)
	if _, err := uc.GetProfile(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUserUpdateInfo(t *testing.T) {
	repo := newProfileRepo()
	notifier := &recordingNotifier{}
	uc := NewUserUsecase(repo, notifier)

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	got, err := uc.UpdateInfo(context.Background(), repo.profile.ID, UpdateUserInfoInput{
		Phone:          "098765432",
		EmploymentDate: &date,
		Occupancy:      directory.OccupancyPart,
	})
	if err != nil {
		t.Fatalf("UpdateInfo: %v", err)
	}
	if got.Phone != "098765432" || got.Occupancy != directory.OccupancyPart {
		t.Fatalf("unexpected view after update: %+v", got)
	}
	if repo.updateCalls != 1 {
		t.Fatalf("updateCalls = %d, want 1", repo.updateCalls)
	}
	if len(notifier.kinds) != 1 || notifier.kinds[0] != ChangeProfile || notifier.ids[0] != repo.profile.ID {
		t.Fatalf("unexpected notifications: %v %v", notifier.kinds, notifier.ids)
	}
}

func TestUserUpdateInfoValidation(t *testing.T) {
	repo := newProfileRepo()
	uc := NewUserUsecase(repo, nil)

	cases := []UpdateUserInfoInput{
		{Phone: "12345678", Occupancy: directory.OccupancyFull},   // no leading zero
		{Phone: "0123456789", Occupancy: directory.OccupancyFull}, // too long
		{Phone: "01234567", Occupancy: directory.OccupancyFull},   // too short
		{Phone: "0abcdefgh", Occupancy: directory.OccupancyFull},  // non-digits
		{Phone: "012345678", Occupancy: "HALF"},                   // bad occupancy
	}
	for _, in := range cases {
		if _, err := uc.UpdateInfo(context.Background(), repo.profile.ID, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
	if repo.updateCalls != 0 {
		t.Fatalf("updateCalls = %d, want 0", repo.updateCalls)
	}
}
