package filter

import "fmt"

// Range is a half-open numeric interval [Min, Max). When Unbounded is set
// the interval is [Min, +inf).
type Range struct {
	Min       int
	Max       int
	Unbounded bool
}

// Contains reports whether v lies inside the range
func (r Range) Contains(v int) bool {
	if v < r.Min {
		return false
	}
	return r.Unbounded || v < r.Max
}

func (r Range) String() string {
	if r.Unbounded {
		return fmt.Sprintf("[%d,inf)", r.Min)
	}
	return fmt.Sprintf("[%d,%d)", r.Min, r.Max)
}

// Bucket names a range for UI and query purposes
type Bucket struct {
	Label string
	Range Range
}

// SalaryBuckets are yearly salary bands in rupees, keyed by lakh labels
var SalaryBuckets = []Bucket{
	{Label: "0-3L", Range: Range{Min: 0, Max: 300_000}},
	{Label: "3-6L", Range: Range{Min: 300_000, Max: 600_000}},
	{Label: "6-10L", Range: Range{Min: 600_000, Max: 1_000_000}},
	{Label: "10-15L", Range: Range{Min: 1_000_000, Max: 1_500_000}},
	{Label: "15-20L", Range: Range{Min: 1_500_000, Max: 2_000_000}},
	{Label: "20L+", Range: Range{Min: 2_000_000, Unbounded: true}},
}

// ExperienceBuckets are bands of years of experience
var ExperienceBuckets = []Bucket{
	{Label: "0-1", Range: Range{Min: 0, Max: 1}},
	{Label: "1-3", Range: Range{Min: 1, Max: 3}},
	{Label: "3-5", Range: Range{Min: 3, Max: 5}},
	{Label: "5-10", Range: Range{Min: 5, Max: 10}},
	{Label: "10+", Range: Range{Min: 10, Unbounded: true}},
}

// LookupSalary returns the range of a salary bucket label
func LookupSalary(label string) (Range, bool) {
	return lookup(SalaryBuckets, label)
}

// LookupExperience returns the range of an experience bucket label
func LookupExperience(label string) (Range, bool) {
	return lookup(ExperienceBuckets, label)
}

func lookup(buckets []Bucket, label string) (Range, bool) {
	for _, b := range buckets {
		if b.Label == label {
			return b.Range, true
		}
	}
	return Range{}, false
}
