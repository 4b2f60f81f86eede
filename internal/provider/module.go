package provider

// Module is a loaded provider: an unstructured set of named exports.
type Module interface {
	Lookup(name string) (any, bool)
}

// Exports is an in-memory Module. Values may be functions of any signature
// or nested bags (Exports, map[string]any or Module).
type Exports map[string]any

func (e Exports) Lookup(name string) (any, bool) {
	v, ok := e[name]
	return v, ok && v != nil
}

const (
	bagDefault = "default"
	bagStages  = "stages"
)

// lookupPaths lists where a candidate name is probed, in order.
func lookupPaths(name string) [][]string {
	return [][]string{
		{name},
		{bagDefault, name},
		{bagStages, name},
		{bagDefault, bagStages, name},
	}
}

func lookupPath(mod Module, path []string) (any, bool) {
	cur := mod
	for i, name := range path {
		v, ok := cur.Lookup(name)
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return v, true
		}
		next, ok := asModule(v)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

func asModule(v any) (Module, bool) {
	switch m := v.(type) {
	case Module:
		return m, true
	case map[string]any:
		return Exports(m), true
	}
	return nil, false
}
