package usecase

import "github.com/google/uuid"

// DirectoryNotifier fans a change event out to connected directory views.
// Implementations must not block the mutating request.
type DirectoryNotifier interface {
	DirectoryChanged(kind string, userID uuid.UUID)
}

// Change kinds broadcast after mutations.
const (
	ChangeProfile  = "profile"
	ChangeSkill    = "skill"
	ChangeProject  = "project"
	ChangePosition = "position"
	ChangeManager  = "manager"
)

type nopNotifier struct{}

func (nopNotifier) DirectoryChanged(string, uuid.UUID) {}

func notifierOrNop(n DirectoryNotifier) DirectoryNotifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
