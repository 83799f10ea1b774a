package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Predicate(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  Predicate
	}{
		{
			name:  "empty query adds no constraint",
			query: Query{WorkModes: []string{}, Cities: []string{}},
			want:  nil,
		},
		{
			name: "list fields become in clauses",
			query: Query{
				WorkModes:       []string{"remote", "hybrid"},
				EmploymentTypes: []string{"contract"},
				Cities:          []string{"Pune"},
			},
			want: Predicate{
				In(FieldWorkMode, []string{"remote", "hybrid"}),
				In(FieldType, []string{"contract"}),
				In(FieldCity, []string{"Pune"}),
			},
		},
		{
			name:  "salary buckets are ORed under the salary flag",
			query: Query{SalaryRanges: []string{"0-3L", "20L+"}},
			want: Predicate{
				AnyRange(FieldMinSalary, FieldHasSalaryRange, []Range{
					{Min: 0, Max: 300_000},
					{Min: 2_000_000, Unbounded: true},
				}),
			},
		},
		{
			name:  "experience bucket under the experience flag",
			query: Query{Experience: "5-10"},
			want: Predicate{
				AnyRange(FieldMinExperience, FieldHasExperienceRange, []Range{{Min: 5, Max: 10}}),
			},
		},
		{
			name:  "unknown bucket labels are skipped",
			query: Query{SalaryRanges: []string{"1-2L"}, Experience: "forever"},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compile(tt.query).Predicate)
		})
	}
}

func TestSortOrder(t *testing.T) {
	tests := []struct {
		sortBy string
		want   []OrderBy
	}{
		{"", []OrderBy{{Field: FieldPostedAt, Desc: true}, {Field: FieldID, Desc: true}}},
		{SortNewest, []OrderBy{{Field: FieldPostedAt, Desc: true}, {Field: FieldID, Desc: true}}},
		{SortOldest, []OrderBy{{Field: FieldPostedAt}, {Field: FieldID}}},
		{SortSalaryAsc, []OrderBy{{Field: FieldMinSalary}, {Field: FieldID}}},
		{SortSalaryDesc, []OrderBy{{Field: FieldMinSalary, Desc: true}, {Field: FieldID, Desc: true}}},
		{"popularity", []OrderBy{{Field: FieldPostedAt, Desc: true}, {Field: FieldID, Desc: true}}},
	}

	for _, tt := range tests {
		t.Run("sort "+tt.sortBy, func(t *testing.T) {
			assert.Equal(t, tt.want, SortOrder(tt.sortBy))
		})
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     Window
	}{
		{name: "defaults", want: Window{Offset: 0, Limit: DefaultPageSize}},
		{name: "first page", page: 1, pageSize: 20, want: Window{Offset: 0, Limit: 20}},
		{name: "third page", page: 3, pageSize: 10, want: Window{Offset: 20, Limit: 10}},
		{name: "page without size", page: 2, want: Window{Offset: 10, Limit: 10}},
		{name: "last allowed page", page: MaxPage, pageSize: MaxPageSize, want: Window{Offset: (MaxPage - 1) * MaxPageSize, Limit: MaxPageSize}},
		{name: "huge page is clamped", page: math.MaxInt, pageSize: 2, want: Window{Offset: (MaxPage - 1) * 2, Limit: 2}},
		{name: "huge page size is clamped", page: 2, pageSize: math.MaxInt, want: Window{Offset: MaxPageSize, Limit: MaxPageSize}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paginate(tt.page, tt.pageSize))
		})
	}
}

func TestCompile_Window(t *testing.T) {
	c := Compile(Query{Page: 2, PageSize: 5, SortBy: SortOldest})

	assert.Equal(t, Window{Offset: 5, Limit: 5}, c.Window)
	require.Len(t, c.OrderBy, 2)
	assert.Equal(t, FieldPostedAt, c.OrderBy[0].Field)
	assert.False(t, c.OrderBy[0].Desc)
}

func TestBuckets(t *testing.T) {
	t.Run("salary buckets tile the axis", func(t *testing.T) {
		for i := 1; i < len(SalaryBuckets); i++ {
			assert.Equal(t, SalaryBuckets[i-1].Range.Max, SalaryBuckets[i].Range.Min, SalaryBuckets[i].Label)
		}
		assert.True(t, SalaryBuckets[len(SalaryBuckets)-1].Range.Unbounded)
	})

	t.Run("experience buckets tile the axis", func(t *testing.T) {
		for i := 1; i < len(ExperienceBuckets); i++ {
			assert.Equal(t, ExperienceBuckets[i-1].Range.Max, ExperienceBuckets[i].Range.Min, ExperienceBuckets[i].Label)
		}
		assert.True(t, ExperienceBuckets[len(ExperienceBuckets)-1].Range.Unbounded)
	})

	tests := []struct {
		name  string
		r     Range
		value int
		want  bool
	}{
		{name: "lower bound is inclusive", r: Range{Min: 300_000, Max: 600_000}, value: 300_000, want: true},
		{name: "upper bound is exclusive", r: Range{Min: 300_000, Max: 600_000}, value: 600_000, want: false},
		{name: "below range", r: Range{Min: 1, Max: 3}, value: 0, want: false},
		{name: "unbounded", r: Range{Min: 10, Unbounded: true}, value: 45, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Contains(tt.value))
		})
	}

	r, ok := LookupSalary("6-10L")
	require.True(t, ok)
	assert.Equal(t, "[600000,1000000)", r.String())

	_, ok = LookupExperience("3-6")
	assert.False(t, ok)
}
