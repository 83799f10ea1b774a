package storage

import (
	"fmt"
	"strings"

	"github.com/cuongbtq/jobboard-be/internal/api/filter"
	"github.com/lib/pq"
)

// columns whitelists the fields a predicate may reference
var columns = map[filter.Field]string{
	filter.FieldID:                 "j.id",
	filter.FieldUserID:             "j.user_id",
	filter.FieldCompanyID:          "j.company_id",
	filter.FieldType:               "j.type",
	filter.FieldCategory:           "j.category",
	filter.FieldWorkMode:           "j.work_mode",
	filter.FieldCity:               "j.city",
	filter.FieldHasSalaryRange:     "j.has_salary_range",
	filter.FieldMinSalary:          "j.min_salary",
	filter.FieldHasExperienceRange: "j.has_experience_range",
	filter.FieldMinExperience:      "j.min_experience",
	filter.FieldHasExpiryDate:      "j.has_expiry_date",
	filter.FieldExpiryDate:         "j.expiry_date",
	filter.FieldVerified:           "j.is_verified_job",
	filter.FieldExpired:            "j.expired",
	filter.FieldPostedAt:           "j.posted_at",
}

var nullable = map[filter.Field]bool{
	filter.FieldMinSalary:     true,
	filter.FieldMinExperience: true,
	filter.FieldExpiryDate:    true,
}

// queryBuilder renders predicates into Postgres SQL with numbered placeholders
type queryBuilder struct {
	args []interface{}
}

func (b *queryBuilder) arg(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func column(f filter.Field) (string, error) {
	col, ok := columns[f]
	if !ok {
		return "", fmt.Errorf("unknown filter field %q", f)
	}
	return col, nil
}

// where renders pred as a WHERE clause, empty for an empty predicate
func (b *queryBuilder) where(pred filter.Predicate) (string, error) {
	if len(pred) == 0 {
		return "", nil
	}

	conds := make([]string, 0, len(pred))
	for _, c := range pred {
		cond, err := b.clause(c)
		if err != nil {
			return "", err
		}
		conds = append(conds, cond)
	}
	return " WHERE " + strings.Join(conds, " AND "), nil
}

func (b *queryBuilder) clause(c filter.Clause) (string, error) {
	col, err := column(c.Field)
	if err != nil {
		return "", err
	}

	var cond string
	switch c.Op {
	case filter.OpEq:
		cond = fmt.Sprintf("%s = %s", col, b.arg(c.Value))
	case filter.OpNeq:
		cond = fmt.Sprintf("%s <> %s", col, b.arg(c.Value))
	case filter.OpLt:
		cond = fmt.Sprintf("%s < %s", col, b.arg(c.Value))
	case filter.OpIn:
		cond = fmt.Sprintf("%s = ANY(%s)", col, b.arg(pq.Array(c.Values)))
	case filter.OpRangeAny:
		if len(c.Ranges) == 0 {
			return "", fmt.Errorf("range clause on %q has no ranges", c.Field)
		}
		parts := make([]string, 0, len(c.Ranges))
		for _, r := range c.Ranges {
			if r.Unbounded {
				parts = append(parts, fmt.Sprintf("%s >= %s", col, b.arg(r.Min)))
				continue
			}
			parts = append(parts, fmt.Sprintf("(%s >= %s AND %s < %s)", col, b.arg(r.Min), col, b.arg(r.Max)))
		}
		cond = strings.Join(parts, " OR ")
		if len(parts) > 1 {
			cond = "(" + cond + ")"
		}
	default:
		return "", fmt.Errorf("unsupported operator %q", c.Op)
	}

	if c.Gate != "" {
		gate, err := column(c.Gate)
		if err != nil {
			return "", err
		}
		cond = fmt.Sprintf("(%s = FALSE OR %s)", gate, cond)
	}
	return cond, nil
}

// orderBy renders sort keys as an ORDER BY clause
func orderBy(order []filter.OrderBy) (string, error) {
	if len(order) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(order))
	for _, o := range order {
		col, err := column(o.Field)
		if err != nil {
			return "", err
		}
		key := col + " ASC"
		if o.Desc {
			key = col + " DESC"
		}
		if nullable[o.Field] {
			key += " NULLS LAST"
		}
		keys = append(keys, key)
	}
	return " ORDER BY " + strings.Join(keys, ", "), nil
}

func (b *queryBuilder) window(w filter.Window) string {
	if w.Limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %s OFFSET %s", b.arg(w.Limit), b.arg(w.Offset))
}
