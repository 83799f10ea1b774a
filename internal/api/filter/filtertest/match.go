// Package filtertest evaluates filter predicates in memory so store fakes
// behave like the SQL rendering in storage.
package filtertest

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/cuongbtq/jobboard-be/internal/api/filter"
	"github.com/cuongbtq/jobboard-be/internal/api/model"
)

// Record exposes column values to in-memory evaluation. Implementations
// return string, int, bool or time.Time values and nil for NULL columns.
type Record interface {
	FieldValue(f filter.Field) any
}

// Match reports whether r satisfies every clause of p
func Match(p filter.Predicate, r Record) bool {
	for _, c := range p {
		if !matchClause(c, r) {
			return false
		}
	}
	return true
}

// matchClause evaluates a single clause with SQL semantics: a NULL value
// never satisfies a comparison.
func matchClause(c filter.Clause, r Record) bool {
	if c.Gate != "" {
		if gate, _ := r.FieldValue(c.Gate).(bool); !gate {
			return true
		}
	}

	v := r.FieldValue(c.Field)
	if v == nil {
		return false
	}

	switch c.Op {
	case filter.OpEq:
		n, ok := compare(v, c.Value)
		return ok && n == 0
	case filter.OpNeq:
		n, ok := compare(v, c.Value)
		return ok && n != 0
	case filter.OpLt:
		n, ok := compare(v, c.Value)
		return ok && n < 0
	case filter.OpIn:
		s, ok := v.(string)
		return ok && slices.Contains(c.Values, s)
	case filter.OpRangeAny:
		n, ok := v.(int)
		if !ok {
			return false
		}
		for _, rg := range c.Ranges {
			if rg.Contains(n) {
				return true
			}
		}
		return false
	}
	return false
}

// Less reports whether a sorts before b. NULL values sort last in both
// directions.
func Less(order []filter.OrderBy, a, b Record) bool {
	for _, o := range order {
		av, bv := a.FieldValue(o.Field), b.FieldValue(o.Field)
		switch {
		case av == nil && bv == nil:
			continue
		case av == nil:
			return false
		case bv == nil:
			return true
		}

		n, ok := compare(av, bv)
		if !ok || n == 0 {
			continue
		}
		if o.Desc {
			return n > 0
		}
		return n < 0
	}
	return false
}

func compare(a, b any) (int, bool) {
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case int:
		y, ok := b.(int)
		if !ok {
			return 0, false
		}
		return cmp.Compare(x, y), true
	case bool:
		y, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		default:
			return 1, true
		}
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return x.Compare(y), true
	}
	return 0, false
}

// Job adapts a job row to Record
func Job(j *model.Job) Record {
	return jobRecord{j}
}

type jobRecord struct {
	j *model.Job
}

func (r jobRecord) FieldValue(f filter.Field) any {
	j := r.j
	switch f {
	case filter.FieldID:
		return j.ID
	case filter.FieldUserID:
		return j.UserID
	case filter.FieldCompanyID:
		return j.CompanyID
	case filter.FieldType:
		return j.Type
	case filter.FieldCategory:
		return j.Category
	case filter.FieldWorkMode:
		return j.WorkMode
	case filter.FieldCity:
		return j.City
	case filter.FieldHasSalaryRange:
		return j.HasSalaryRange
	case filter.FieldMinSalary:
		return intOrNil(j.MinSalary)
	case filter.FieldHasExperienceRange:
		return j.HasExperienceRange
	case filter.FieldMinExperience:
		return intOrNil(j.MinExperience)
	case filter.FieldHasExpiryDate:
		return j.HasExpiryDate
	case filter.FieldExpiryDate:
		if j.ExpiryDate == nil {
			return nil
		}
		return *j.ExpiryDate
	case filter.FieldVerified:
		return j.IsVerifiedJob
	case filter.FieldExpired:
		return j.Expired
	case filter.FieldPostedAt:
		return j.PostedAt
	}
	return nil
}

func intOrNil(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
