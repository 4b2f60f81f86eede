package validator

import (
	"fmt"
	"math"
)

// violations accumulates every problem found in one payload.
type violations []string

func (v *violations) add(format string, args ...any) {
	*v = append(*v, fmt.Sprintf(format, args...))
}

func (v violations) list() []string {
	if len(v) == 0 {
		return nil
	}
	return []string(v)
}

func join(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

// present reports whether key exists in obj with a non-null value.
func present(obj map[string]any, key string) bool {
	v, ok := obj[key]
	return ok && v != nil
}

func requireString(obj map[string]any, path, key string, errs *violations) (string, bool) {
	if !present(obj, key) {
		errs.add("%s is required", join(path, key))
		return "", false
	}
	s, ok := obj[key].(string)
	if !ok {
		errs.add("%s must be a string", join(path, key))
		return "", false
	}
	return s, true
}

func optionalString(obj map[string]any, path, key string, errs *violations) (string, bool) {
	if !present(obj, key) {
		return "", true
	}
	s, ok := obj[key].(string)
	if !ok {
		errs.add("%s must be a string", join(path, key))
		return "", false
	}
	return s, true
}

func optionalBool(obj map[string]any, path, key string, errs *violations) (*bool, bool) {
	if !present(obj, key) {
		return nil, true
	}
	b, ok := obj[key].(bool)
	if !ok {
		errs.add("%s must be a boolean", join(path, key))
		return nil, false
	}
	return &b, true
}

func requireObject(obj map[string]any, path, key string, errs *violations) (map[string]any, bool) {
	if !present(obj, key) {
		errs.add("%s is required", join(path, key))
		return nil, false
	}
	m, ok := obj[key].(map[string]any)
	if !ok {
		errs.add("%s must be an object", join(path, key))
		return nil, false
	}
	return m, true
}

func optionalObject(obj map[string]any, path, key string, errs *violations) (map[string]any, bool) {
	if !present(obj, key) {
		return nil, true
	}
	m, ok := obj[key].(map[string]any)
	if !ok {
		errs.add("%s must be an object", join(path, key))
		return nil, false
	}
	return m, true
}

// asInt accepts JSON numbers with no fractional part.
func asInt(v any) (int, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func requirePositiveInt(obj map[string]any, path, key string, errs *violations) (int, bool) {
	if !present(obj, key) {
		errs.add("%s is required", join(path, key))
		return 0, false
	}
	return positiveInt(obj[key], join(path, key), errs)
}

func optionalPositiveInt(obj map[string]any, path, key string, errs *violations) (*int, bool) {
	if !present(obj, key) {
		return nil, true
	}
	n, ok := positiveInt(obj[key], join(path, key), errs)
	if !ok {
		return nil, false
	}
	return &n, true
}

func positiveInt(v any, field string, errs *violations) (int, bool) {
	n, ok := asInt(v)
	if !ok || n < 1 {
		errs.add("%s must be a positive integer", field)
		return 0, false
	}
	return n, true
}

func stringList(obj map[string]any, path, key string, errs *violations) ([]string, bool) {
	if !present(obj, key) {
		errs.add("%s is required", join(path, key))
		return nil, false
	}
	items, ok := obj[key].([]any)
	if !ok {
		errs.add("%s must be an array of strings", join(path, key))
		return nil, false
	}
	out := make([]string, 0, len(items))
	valid := true
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			errs.add("%s[%d] must be a string", join(path, key), i)
			valid = false
			continue
		}
		out = append(out, s)
	}
	return out, valid
}

func checkLineOrder(path string, start, end int, errs *violations) {
	if start > end {
		errs.add("%s must be less than or equal to %s", join(path, "startLine"), join(path, "endLine"))
	}
}
