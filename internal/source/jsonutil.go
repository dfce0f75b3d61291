package source

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/donaldgifford/rx-price-tracker/pkg/extract"
)

// flexFloat decodes a JSON number, a numeric string, or a Brazilian price
// string. Anything else decodes to zero instead of failing the payload.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	*f = flexFloat(asFloat(rawValue(data)))
	return nil
}

func rawValue(data []byte) any {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	return v
}

// asFloat coerces a decoded JSON value into a finite float, or 0.
func asFloat(v any) float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case json.Number:
		f, _ = x.Float64()
	case string:
		s := strings.TrimSpace(x)
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			f = parsed
		} else {
			f = extract.ParsePrice(s)
		}
	case bool:
		if x {
			f = 1
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// asString coerces a decoded JSON scalar into text.
func asString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	default:
		return ""
	}
}

// lookup walks nested objects along path and returns the value found, or nil.
func lookup(v any, path ...string) any {
	for _, key := range path {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v = m[key]
	}
	return v
}

// findKey does a depth-first search for the first object holding key with a
// non-empty value. Object keys are visited in sorted order so repeated
// lookups over the same document agree.
func findKey(v any, key string) any {
	switch x := v.(type) {
	case map[string]any:
		if val, ok := x[key]; ok && !isEmpty(val) {
			return val
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if found := findKey(x[k], key); found != nil {
				return found
			}
		}
	case []any:
		for _, item := range x {
			if found := findKey(item, key); found != nil {
				return found
			}
		}
	}
	return nil
}

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case float64:
		return x == 0
	case bool:
		return !x
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	return false
}

// findObjects returns the first non-empty array stored under key whose
// elements are objects.
func findObjects(v any, key string) []map[string]any {
	arr, ok := findKey(v, key).([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(arr))
	for _, item := range arr {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
