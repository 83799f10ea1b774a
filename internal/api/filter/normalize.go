package filter

import "fmt"

// Keys of the raw filter payload that may hold one or many values
const (
	KeyWorkMode    = "workmode"
	KeyEmpType     = "EmpType"
	KeySalaryRange = "salaryrange"
	KeyCity        = "city"
)

// ListKeys are the filter keys a transport may collapse from a one element
// list into a bare scalar.
var ListKeys = []string{KeyWorkMode, KeyEmpType, KeySalaryRange, KeyCity}

// Normalize returns a copy of raw where every list key holds a []string.
// Absent keys, nil and the empty string become an empty list; a scalar
// becomes a one element list. Empty entries inside a list are dropped. Other keys are copied untouched.
func Normalize(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw)+len(ListKeys))
	for k, v := range raw {
		out[k] = v
	}
	for _, key := range ListKeys {
		out[key] = toStrings(raw[key])
	}
	return out
}

func toStrings(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case string:
		if t == "" {
			return []string{}
		}
		return []string{t}
	case []string:
		out := make([]string, 0, len(t))
		for _, s := range t {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			switch s := item.(type) {
			case nil:
			case string:
				if s != "" {
					out = append(out, s)
				}
			default:
				out = append(out, fmt.Sprint(s))
			}
		}
		return out
	default:
		return []string{fmt.Sprint(t)}
	}
}
