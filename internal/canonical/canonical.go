// Package canonical turns loosely shaped recipe objects into the canonical
// Soustack form and derives slugs.
//
// Canonical objects are map[string]any values. encoding/json writes map keys
// in sorted order, so every nesting level serializes with lexicographically
// ordered keys.
package canonical

import (
	"encoding/json"
	"strconv"
	"strings"
)

const (
	// SchemaURI is the only schema identity a canonical recipe may carry.
	SchemaURI = "https://soustack.spec/soustack.schema.json"
	// DefaultProfile is used when the source has no usable profile.
	DefaultProfile = "lite"
	// DefaultStackKey names the single stack used when neither stacks nor a slug hint exist.
	DefaultStackKey = "recipe"
)

// StackMarker is the value stored for every stack derived from a list or hint.
const StackMarker = true

const (
	keySchema  = "$schema"
	keyProfile = "profile"
	keyStacks  = "stacks"
)

// Canonicalize returns the canonical form of recipe. Non-object input is
// treated as an empty object; the function never fails and never mutates its
// argument.
func Canonicalize(recipe any, slugHint string) map[string]any {
	src := Object(recipe)

	out := make(map[string]any, len(src)+3)
	out[keySchema] = SchemaURI

	if p, ok := src[keyProfile].(string); ok && p != "" {
		out[keyProfile] = p
	} else {
		out[keyProfile] = DefaultProfile
	}

	out[keyStacks] = deriveStacks(src[keyStacks], slugHint)

	for k, v := range src {
		switch k {
		case keySchema, keyProfile, keyStacks:
			continue
		}
		out[k] = v
	}
	return out
}

func deriveStacks(v any, slugHint string) map[string]any {
	switch s := v.(type) {
	case map[string]any:
		if len(s) > 0 {
			return s
		}
	case []any:
		stacks := make(map[string]any, len(s))
		for _, e := range s {
			if key := stackName(e); key != "" {
				stacks[key] = StackMarker
			}
		}
		if len(stacks) > 0 {
			return stacks
		}
	}

	key := NormalizeSlug(slugHint)
	if key == "" {
		key = DefaultStackKey
	}
	return map[string]any{key: StackMarker}
}

// stackName is the string form of a stacks list element.
func stackName(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
