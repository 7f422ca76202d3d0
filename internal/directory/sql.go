package directory

import (
	"fmt"
	"strconv"
	"strings"
)

// relation subquery shapes, keyed by Relation. Facet relations are plain join
// tables off users; managers go through the relation table to the managing
// user's row, so "name" there is the manager's user name.
var relationSQL = map[Relation]struct {
	from string
	cols map[Field]string
}{
	RelSkills: {
		from: `user_skills r WHERE r.user_id = u.id`,
		cols: map[Field]string{FieldName: "r.name", FieldRating: "r.rating"},
	},
	RelProjects: {
		from: `user_projects r WHERE r.user_id = u.id`,
		cols: map[Field]string{FieldName: "r.name"},
	},
	RelPositions: {
		from: `user_positions r WHERE r.user_id = u.id`,
		cols: map[Field]string{FieldName: "r.name"},
	},
	RelManagers: {
		from: `user_managers um JOIN users m ON m.id = um.manager_id WHERE um.member_id = u.id`,
		cols: map[Field]string{FieldName: "m.name"},
	},
}

var userCols = map[Field]string{
	FieldName:      "u.name",
	FieldOccupancy: "u.occupancy",
}

// CompileWhere translates a predicate tree into a parameterized WHERE clause
// over the users table aliased as u. Placeholders start at $1.
func CompileWhere(p Predicate) (string, []any, error) {
	c := &compiler{}
	clause, err := c.compile(p, userCols)
	if err != nil {
		return "", nil, err
	}
	return clause, c.args, nil
}

type compiler struct {
	args []any
}

func (c *compiler) placeholder(v any) string {
	c.args = append(c.args, v)
	return "$" + strconv.Itoa(len(c.args))
}

func (c *compiler) compile(p Predicate, cols map[Field]string) (string, error) {
	switch t := p.(type) {
	case Equals:
		col, err := column(cols, t.Field)
		if err != nil {
			return "", err
		}
		return col + " = " + c.placeholder(t.Value), nil

	case Contains:
		col, err := column(cols, t.Field)
		if err != nil {
			return "", err
		}
		return col + " ILIKE '%' || " + c.placeholder(t.Value) + " || '%'", nil

	case In:
		col, err := column(cols, t.Field)
		if err != nil {
			return "", err
		}
		return col + " = ANY(" + c.placeholder(t.Values) + ")", nil

	case GTE:
		col, err := column(cols, t.Field)
		if err != nil {
			return "", err
		}
		return col + " >= " + c.placeholder(t.Value), nil

	case Some:
		rel, ok := relationSQL[t.Relation]
		if !ok {
			return "", fmt.Errorf("unknown relation %q", t.Relation)
		}
		inner := "TRUE"
		if t.Where != nil {
			var err error
			inner, err = c.compile(t.Where, rel.cols)
			if err != nil {
				return "", err
			}
		}
		return "EXISTS (SELECT 1 FROM " + rel.from + " AND " + inner + ")", nil

	case And:
		return c.compileGroup(t.Preds, cols, " AND ", "TRUE")

	case Or:
		return c.compileGroup(t.Preds, cols, " OR ", "FALSE")

	default:
		return "", fmt.Errorf("unknown predicate %T", p)
	}
}

func (c *compiler) compileGroup(preds []Predicate, cols map[Field]string, sep, empty string) (string, error) {
	if len(preds) == 0 {
		return empty, nil
	}
	parts := make([]string, 0, len(preds))
	for _, p := range preds {
		s, err := c.compile(p, cols)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

func column(cols map[Field]string, f Field) (string, error) {
	col, ok := cols[f]
	if !ok {
		return "", fmt.Errorf("field %q not available in this scope", f)
	}
	return col, nil
}
