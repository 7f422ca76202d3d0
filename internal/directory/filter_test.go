package directory

import (
	"strings"
	"testing"
)

func TestFilterRequest_Validate(t *testing.T) {
	base := FilterRequest{Page: 1, PerPage: 12}

	cases := []struct {
		name    string
		mutate  func(*FilterRequest)
		wantErr string
	}{
		{"ok empty", func(r *FilterRequest) {}, ""},
		{"long query", func(r *FilterRequest) { r.SearchQuery = strings.Repeat("x", 51) }, "searchQuery"},
		{"zero page", func(r *FilterRequest) { r.Page = 0 }, "page"},
		{"zero perPage", func(r *FilterRequest) { r.PerPage = 0 }, "perPage"},
		{"bad occupancy", func(r *FilterRequest) { r.Occupancy = []Occupancy{"HALF"} }, "occupancy"},
		{"skill name missing", func(r *FilterRequest) { r.Skills = []SkillFilter{{Name: ""}} }, "skills[0].name"},
		{"skill rating low", func(r *FilterRequest) {
			r.Skills = []SkillFilter{{Name: "Go", RatingRange: []int{4}}}
		}, "skills[0].ratingRange"},
		{"skill range too long", func(r *FilterRequest) {
			r.Skills = []SkillFilter{{Name: "Go", RatingRange: []int{5, 50, 100}}}
		}, "skills[0].ratingRange"},
		{"long project name", func(r *FilterRequest) { r.Projects = []string{strings.Repeat("p", 51)} }, "projects[0]"},
		{"rating range one value", func(r *FilterRequest) { r.RatingRange = []int{50} }, "ratingRange"},
		{"rating range out of bounds", func(r *FilterRequest) { r.RatingRange = []int{5, 101} }, "ratingRange"},
		{"rating range ok", func(r *FilterRequest) { r.RatingRange = []int{5, 100} }, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := base
			tc.mutate(&r)
			err := r.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *ValidationError
			if err == nil {
				t.Fatalf("expected error on field %s", tc.wantErr)
			}
			var ok bool
			verr, ok = err.(*ValidationError)
			if !ok {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if verr.Field != tc.wantErr {
				t.Fatalf("expected field %q, got %q", tc.wantErr, verr.Field)
			}
		})
	}
}

func TestBuildPredicate_EmptyRequestMatchesAll(t *testing.T) {
	p := BuildPredicate(FilterRequest{Page: 1, PerPage: 10})

	root, ok := p.(And)
	if !ok {
		t.Fatalf("expected And root, got %T", p)
	}
	// Only the always-present text OR-group remains.
	if len(root.Preds) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(root.Preds))
	}
	if _, ok := root.Preds[0].(Or); !ok {
		t.Fatalf("expected text Or-group, got %T", root.Preds[0])
	}
}

func TestBuildPredicate_SkillsAreConjunctive(t *testing.T) {
	p := BuildPredicate(FilterRequest{
		Page: 1, PerPage: 10,
		Skills: []SkillFilter{
			{Name: "Go", RatingRange: []int{50}},
			{Name: "Rust", RatingRange: []int{50, 90}},
		},
	})

	root := p.(And)
	var somes []Some
	for _, c := range root.Preds {
		if s, ok := c.(Some); ok && s.Relation == RelSkills {
			somes = append(somes, s)
		}
	}
	if len(somes) != 2 {
		t.Fatalf("expected one Some per skill, got %d", len(somes))
	}
	for i, s := range somes {
		where, ok := s.Where.(And)
		if !ok {
			t.Fatalf("skill %d: expected And, got %T", i, s.Where)
		}
		if len(where.Preds) != 2 {
			t.Fatalf("skill %d: expected name+rating clauses, got %d", i, len(where.Preds))
		}
		gte, ok := where.Preds[1].(GTE)
		if !ok || gte.Value != 50 {
			t.Fatalf("skill %d: expected rating >= 50, got %#v", i, where.Preds[1])
		}
	}
}

func TestBuildPredicate_EmptyFacetsOmitted(t *testing.T) {
	p := BuildPredicate(FilterRequest{
		Page: 1, PerPage: 10,
		Occupancy: []Occupancy{OccupancyFull},
		Projects:  []string{"Apollo"},
	})

	root := p.(And)
	// occupancy + projects + text group, nothing for managers/positions/skills.
	if len(root.Preds) != 3 {
		t.Fatalf("expected 3 clauses, got %d", len(root.Preds))
	}
	in, ok := root.Preds[0].(In)
	if !ok || in.Field != FieldOccupancy || len(in.Values) != 1 {
		t.Fatalf("expected occupancy In, got %#v", root.Preds[0])
	}
	some, ok := root.Preds[1].(Some)
	if !ok || some.Relation != RelProjects {
		t.Fatalf("expected projects Some, got %#v", root.Preds[1])
	}
}

func TestBuildPredicate_TextGroupCoversAllDimensions(t *testing.T) {
	p := BuildPredicate(FilterRequest{Page: 1, PerPage: 10, SearchQuery: "go"})

	root := p.(And)
	or := root.Preds[len(root.Preds)-1].(Or)
	if len(or.Preds) != 4 {
		t.Fatalf("expected 4 text branches, got %d", len(or.Preds))
	}
	if c, ok := or.Preds[0].(Contains); !ok || c.Field != FieldName || c.Value != "go" {
		t.Fatalf("expected name Contains, got %#v", or.Preds[0])
	}
	wantRels := []Relation{RelSkills, RelPositions, RelProjects}
	for i, rel := range wantRels {
		s, ok := or.Preds[i+1].(Some)
		if !ok || s.Relation != rel {
			t.Fatalf("branch %d: expected Some(%s), got %#v", i+1, rel, or.Preds[i+1])
		}
	}
}
