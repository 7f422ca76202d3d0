package directory

import (
	"fmt"
	"strings"
)

const (
	MaxQueryLen = 50

	MinRating     = 5
	MaxRating     = 100
	DefaultRating = 5
)

// Occupancy is the user's employment status.
type Occupancy string

const (
	OccupancyFull Occupancy = "FULL"
	OccupancyPart Occupancy = "PART"
	OccupancyNot  Occupancy = "NOT"
)

func ValidOccupancy(o Occupancy) bool {
	switch o {
	case OccupancyFull, OccupancyPart, OccupancyNot:
		return true
	}
	return false
}

// SkillFilter requires a skill by exact name with a minimum rating.
// RatingRange holds zero to two values; only the lower bound is applied.
type SkillFilter struct {
	Name        string
	RatingRange []int
}

// FilterRequest is the input of the directory filter operation. Empty
// collections impose no constraint on their dimension.
type FilterRequest struct {
	SearchQuery string
	Page        int
	PerPage     int
	Occupancy   []Occupancy
	Skills      []SkillFilter
	Projects    []string
	Managers    []string
	Positions   []string
	RatingRange []int
}

// ValidationError points at the request field that failed its bound.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalidField(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate checks every field bound. It never touches storage.
func (r FilterRequest) Validate() error {
	if len(r.SearchQuery) > MaxQueryLen {
		return invalidField("searchQuery", "cannot be longer than %d characters", MaxQueryLen)
	}
	if r.Page < 1 {
		return invalidField("page", "must be at least 1")
	}
	if r.PerPage < 1 {
		return invalidField("perPage", "must be at least 1")
	}
	for _, o := range r.Occupancy {
		if !ValidOccupancy(o) {
			return invalidField("occupancy", "unknown value %q", string(o))
		}
	}
	for i, s := range r.Skills {
		if s.Name == "" || len(s.Name) > MaxQueryLen {
			return invalidField(fmt.Sprintf("skills[%d].name", i), "must be 1-%d characters", MaxQueryLen)
		}
		if len(s.RatingRange) > 2 {
			return invalidField(fmt.Sprintf("skills[%d].ratingRange", i), "holds at most 2 values")
		}
		for _, v := range s.RatingRange {
			if v < MinRating || v > MaxRating {
				return invalidField(fmt.Sprintf("skills[%d].ratingRange", i), "values must be between %d and %d", MinRating, MaxRating)
			}
		}
	}
	if err := validateNames("projects", r.Projects); err != nil {
		return err
	}
	if err := validateNames("managers", r.Managers); err != nil {
		return err
	}
	if err := validateNames("positions", r.Positions); err != nil {
		return err
	}
	switch len(r.RatingRange) {
	case 0:
	case 2:
		for _, v := range r.RatingRange {
			if v < MinRating || v > MaxRating {
				return invalidField("ratingRange", "values must be between %d and %d", MinRating, MaxRating)
			}
		}
	default:
		return invalidField("ratingRange", "must be empty or hold exactly 2 values")
	}
	return nil
}

// BuildPredicate maps a validated filter request onto a predicate tree.
// All facet clauses are ANDed at the top level; the free-text search is the
// only OR-group. Empty selections are omitted rather than made vacuous, so an
// all-empty request compiles to a match-everything tree.
func BuildPredicate(r FilterRequest) Predicate {
	var preds []Predicate

	if len(r.Occupancy) > 0 {
		vals := make([]string, 0, len(r.Occupancy))
		for _, o := range r.Occupancy {
			vals = append(vals, string(o))
		}
		preds = append(preds, In{Field: FieldOccupancy, Values: vals})
	}

	if len(r.Projects) > 0 {
		preds = append(preds, Some{Relation: RelProjects, Where: In{Field: FieldName, Values: r.Projects}})
	}
	if len(r.Managers) > 0 {
		preds = append(preds, Some{Relation: RelManagers, Where: In{Field: FieldName, Values: r.Managers}})
	}
	if len(r.Positions) > 0 {
		preds = append(preds, Some{Relation: RelPositions, Where: In{Field: FieldName, Values: r.Positions}})
	}

	// Conjunctive: each requested skill must be held, each at its own
	// minimum rating. The upper bound is accepted on input but not applied.
	for _, s := range r.Skills {
		where := And{Preds: []Predicate{
			Equals{Field: FieldName, Value: strings.TrimSpace(s.Name)},
		}}
		if len(s.RatingRange) > 0 {
			where.Preds = append(where.Preds, GTE{Field: FieldRating, Value: s.RatingRange[0]})
		}
		preds = append(preds, Some{Relation: RelSkills, Where: where})
	}

	// The text search is additive, not a gate: an empty query contains-matches
	// every row, so the OR-group is always present.
	preds = append(preds, Or{Preds: []Predicate{
		Contains{Field: FieldName, Value: r.SearchQuery},
		Some{Relation: RelSkills, Where: Contains{Field: FieldName, Value: r.SearchQuery}},
		Some{Relation: RelPositions, Where: Contains{Field: FieldName, Value: r.SearchQuery}},
		Some{Relation: RelProjects, Where: Contains{Field: FieldName, Value: r.SearchQuery}},
	}})

	return And{Preds: preds}
}

func validateNames(field string, names []string) error {
	for i, n := range names {
		if len(n) > MaxQueryLen {
			return invalidField(fmt.Sprintf("%s[%d]", field, i), "cannot be longer than %d characters", MaxQueryLen)
		}
	}
	return nil
}
