package filter

// Field names a filterable or sortable job column
type Field string

const (
	FieldID                 Field = "id"
	FieldUserID             Field = "user_id"
	FieldCompanyID          Field = "company_id"
	FieldType               Field = "type"
	FieldCategory           Field = "category"
	FieldWorkMode           Field = "work_mode"
	FieldCity               Field = "city"
	FieldHasSalaryRange     Field = "has_salary_range"
	FieldMinSalary          Field = "min_salary"
	FieldHasExperienceRange Field = "has_experience_range"
	FieldMinExperience      Field = "min_experience"
	FieldHasExpiryDate      Field = "has_expiry_date"
	FieldExpiryDate         Field = "expiry_date"
	FieldVerified           Field = "is_verified_job"
	FieldExpired            Field = "expired"
	FieldPostedAt           Field = "posted_at"
)

// Op is a clause operator
type Op string

const (
	OpEq       Op = "eq"
	OpNeq      Op = "neq"
	OpIn       Op = "in"
	OpLt       Op = "lt"
	OpRangeAny Op = "range_any"
)

// Clause is a single condition on one field.
//
// Value is used by eq, neq and lt; Values by in; Ranges by range_any.
// When Gate is set the clause only constrains rows whose Gate column is true,
// rows with a false gate always pass.
type Clause struct {
	Field  Field
	Op     Op
	Value  any
	Values []string
	Ranges []Range
	Gate   Field
}

// Predicate is a conjunction of clauses. An empty predicate matches everything.
type Predicate []Clause

// And returns a new predicate holding p followed by clauses
func (p Predicate) And(clauses ...Clause) Predicate {
	out := make(Predicate, 0, len(p)+len(clauses))
	out = append(out, p...)
	return append(out, clauses...)
}

func Eq(f Field, v any) Clause  { return Clause{Field: f, Op: OpEq, Value: v} }
func Neq(f Field, v any) Clause { return Clause{Field: f, Op: OpNeq, Value: v} }
func Lt(f Field, v any) Clause  { return Clause{Field: f, Op: OpLt, Value: v} }

func In(f Field, values []string) Clause {
	return Clause{Field: f, Op: OpIn, Values: values}
}

// AnyRange matches when the field falls in at least one of ranges, for rows
// where gate is true
func AnyRange(f Field, gate Field, ranges []Range) Clause {
	return Clause{Field: f, Op: OpRangeAny, Ranges: ranges, Gate: gate}
}

// Visible restricts a query to jobs shown in public listings
func Visible() []Clause {
	return []Clause{
		Eq(FieldVerified, true),
		Eq(FieldExpired, false),
	}
}

// OrderBy is one sort key
type OrderBy struct {
	Field Field
	Desc  bool
}

// Window is an offset/limit pagination window
type Window struct {
	Offset int
	Limit  int
}
