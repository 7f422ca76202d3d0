package directory

import (
	"strconv"
	"strings"
	"testing"
)

func TestCompileWhere_EmptyAnd(t *testing.T) {
	clause, args, err := CompileWhere(And{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clause != "TRUE" {
		t.Fatalf("expected TRUE, got %q", clause)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestCompileWhere_OccupancyIn(t *testing.T) {
	clause, args, err := CompileWhere(In{Field: FieldOccupancy, Values: []string{"FULL", "PART"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clause != "u.occupancy = ANY($1)" {
		t.Fatalf("unexpected clause: %q", clause)
	}
	vals, ok := args[0].([]string)
	if !ok || len(vals) != 2 {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestCompileWhere_SkillSome(t *testing.T) {
	p := Some{Relation: RelSkills, Where: And{Preds: []Predicate{
		Equals{Field: FieldName, Value: "Go"},
		GTE{Field: FieldRating, Value: 50},
	}}}

	clause, args, err := CompileWhere(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "EXISTS (SELECT 1 FROM user_skills r WHERE r.user_id = u.id AND (r.name = $1 AND r.rating >= $2))"
	if clause != want {
		t.Fatalf("unexpected clause:\n got %q\nwant %q", clause, want)
	}
	if args[0] != "Go" || args[1] != 50 {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestCompileWhere_ManagersGoThroughUsers(t *testing.T) {
	p := Some{Relation: RelManagers, Where: In{Field: FieldName, Values: []string{"Alice"}}}

	clause, _, err := CompileWhere(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(clause, "JOIN users m ON m.id = um.manager_id") {
		t.Fatalf("manager subquery must join the managing user: %q", clause)
	}
	if !strings.Contains(clause, "m.name = ANY($1)") {
		t.Fatalf("manager name must resolve to m.name: %q", clause)
	}
}

func TestCompileWhere_ContainsIsCaseInsensitiveLike(t *testing.T) {
	clause, args, err := CompileWhere(Contains{Field: FieldName, Value: ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clause != "u.name ILIKE '%' || $1 || '%'" {
		t.Fatalf("unexpected clause: %q", clause)
	}
	// Empty search compiles to ILIKE '%%', which matches every row.
	if args[0] != "" {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestCompileWhere_FullFilterPlaceholdersSequential(t *testing.T) {
	p := BuildPredicate(FilterRequest{
		Page: 1, PerPage: 10,
		SearchQuery: "go",
		Occupancy:   []Occupancy{OccupancyFull},
		Skills:      []SkillFilter{{Name: "Go", RatingRange: []int{50}}},
		Projects:    []string{"Apollo"},
		Managers:    []string{"Alice"},
		Positions:   []string{"Backend"},
	})

	clause, args, err := CompileWhere(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range args {
		ph := "$" + strconv.Itoa(i+1)
		if !strings.Contains(clause, ph) {
			t.Fatalf("missing placeholder %s in %q", ph, clause)
		}
	}
	if strings.Contains(clause, "$0") {
		t.Fatalf("placeholders must start at $1: %q", clause)
	}
}

func TestCompileWhere_FieldOutOfScope(t *testing.T) {
	// rating is a join-table column; it has no meaning on the user row.
	if _, _, err := CompileWhere(GTE{Field: FieldRating, Value: 10}); err == nil {
		t.Fatal("expected scope error for rating on users")
	}
	// occupancy is a user column; it has no meaning inside a skills subquery.
	p := Some{Relation: RelSkills, Where: In{Field: FieldOccupancy, Values: []string{"FULL"}}}
	if _, _, err := CompileWhere(p); err == nil {
		t.Fatal("expected scope error for occupancy inside a relation")
	}
}
