package filter

// Sort directives accepted from callers
const (
	SortNewest     = "newest"
	SortOldest     = "oldest"
	SortSalaryAsc  = "salary_asc"
	SortSalaryDesc = "salary_desc"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 50
	// MaxPage keeps (page-1)*MaxPageSize far inside the int range
	MaxPage = 1_000_000
)

// Query is a validated filter request. Zero values mean "not supplied".
type Query struct {
	WorkModes       []string
	EmploymentTypes []string
	SalaryRanges    []string
	Cities          []string
	Experience      string
	SortBy          string
	Page            int
	PageSize        int
}

// Compiled is the store independent form of a Query
type Compiled struct {
	Predicate Predicate
	OrderBy   []OrderBy
	Window    Window
}

// Compile translates q into a predicate, a sort order and a pagination
// window. Fields are ANDed, values inside one field are ORed and empty lists
// add no constraint. Unknown bucket labels are skipped; validation rejects
// them before this point.
func Compile(q Query) Compiled {
	var pred Predicate

	if len(q.WorkModes) > 0 {
		pred = append(pred, In(FieldWorkMode, q.WorkModes))
	}
	if len(q.EmploymentTypes) > 0 {
		pred = append(pred, In(FieldType, q.EmploymentTypes))
	}
	if len(q.Cities) > 0 {
		pred = append(pred, In(FieldCity, q.Cities))
	}

	var salary []Range
	for _, label := range q.SalaryRanges {
		if r, ok := LookupSalary(label); ok {
			salary = append(salary, r)
		}
	}
	if len(salary) > 0 {
		pred = append(pred, AnyRange(FieldMinSalary, FieldHasSalaryRange, salary))
	}

	if q.Experience != "" {
		if r, ok := LookupExperience(q.Experience); ok {
			pred = append(pred, AnyRange(FieldMinExperience, FieldHasExperienceRange, []Range{r}))
		}
	}

	return Compiled{
		Predicate: pred,
		OrderBy:   SortOrder(q.SortBy),
		Window:    Paginate(q.Page, q.PageSize),
	}
}

// SortOrder maps a sort directive to sort keys. Unknown or empty directives
// sort newest first. The id key keeps pages stable between requests.
func SortOrder(sortBy string) []OrderBy {
	var primary OrderBy
	switch sortBy {
	case SortOldest:
		primary = OrderBy{Field: FieldPostedAt}
	case SortSalaryAsc:
		primary = OrderBy{Field: FieldMinSalary}
	case SortSalaryDesc:
		primary = OrderBy{Field: FieldMinSalary, Desc: true}
	default:
		primary = OrderBy{Field: FieldPostedAt, Desc: true}
	}
	return []OrderBy{primary, {Field: FieldID, Desc: primary.Desc}}
}

// Paginate returns the window for a 1-based page. Zero values take defaults
// and values past MaxPage or MaxPageSize are clamped.
func Paginate(page, pageSize int) Window {
	if page <= 0 {
		page = DefaultPage
	}
	page = min(page, MaxPage)
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pageSize = min(pageSize, MaxPageSize)
	return Window{Offset: (page - 1) * pageSize, Limit: pageSize}
}

// Newest is the order used by recommendation and recent listings
func Newest() []OrderBy {
	return SortOrder(SortNewest)
}
