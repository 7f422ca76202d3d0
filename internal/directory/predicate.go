package directory

// Predicate is a storage-agnostic boolean condition over a user row.
// Trees built from these variants are compiled to SQL by CompileWhere.
type Predicate interface {
	isPredicate()
}

// Field identifies a column the predicate variants can reference. User-level
// fields resolve against the users table; relation-level fields resolve
// against the join table of the enclosing Some.
type Field string

const (
	FieldName      Field = "name"
	FieldOccupancy Field = "occupancy"
	FieldRating    Field = "rating"
)

// Relation identifies a facet collection reachable from a user row.
type Relation string

const (
	RelSkills    Relation = "skills"
	RelProjects  Relation = "projects"
	RelPositions Relation = "positions"
	RelManagers  Relation = "managers"
)

// Equals matches rows whose field equals the value exactly.
type Equals struct {
	Field Field
	Value string
}

// Contains matches rows whose field contains the value, case-insensitive.
// An empty value matches every row.
type Contains struct {
	Field Field
	Value string
}

// In matches rows whose field equals any of the values.
type In struct {
	Field  Field
	Values []string
}

// GTE matches rows whose integer field is at least the value.
type GTE struct {
	Field Field
	Value int
}

// Some matches users that have at least one related row satisfying Where.
// A nil Where matches users that have any related row at all.
type Some struct {
	Relation Relation
	Where    Predicate
}

// And matches when every child matches. An empty And matches everything.
type And struct {
	Preds []Predicate
}

// Or matches when at least one child matches.
type Or struct {
	Preds []Predicate
}

func (Equals) isPredicate()   {}
func (Contains) isPredicate() {}
func (In) isPredicate()       {}
func (GTE) isPredicate()      {}
func (Some) isPredicate()     {}
func (And) isPredicate()      {}
func (Or) isPredicate()       {}
