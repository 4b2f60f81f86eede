package canonical

import (
	"encoding/json"
	"fmt"
)

// Plain converts v into a detached JSON-shaped value built only from
// map[string]any, []any, string, bool, numbers and nil. Maps and slices are
// always copied, so the result never aliases v.
func Plain(v any) any {
	switch t := v.(type) {
	case nil, bool, string, float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return t
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Plain(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Plain(val)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = val
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = val
		}
		return out
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Sprint(v)
	}
	return out
}

// Object returns v as a detached JSON object, or nil when v is not object-shaped.
func Object(v any) map[string]any {
	m, _ := Plain(v).(map[string]any)
	return m
}
