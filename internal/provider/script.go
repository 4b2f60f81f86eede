package provider

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// scriptModule exposes the package-level identifiers of a Go source file
// interpreted with yaegi. The file may only import the standard library.
type scriptModule struct {
	mu     sync.Mutex
	interp *interp.Interpreter
	pkg    string
}

func loadScript(path string) (Module, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	file, err := parser.ParseFile(token.NewFileSet(), path, src, parser.PackageClauseOnly)
	if err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("load stdlib symbols: %w", err)
	}
	if _, err := i.Eval(string(src)); err != nil {
		return nil, fmt.Errorf("evaluate script: %w", err)
	}
	return &scriptModule{interp: i, pkg: file.Name.Name}, nil
}

// Lookup tries name as given, then with an upper-cased first letter, so
// "segment" finds an exported Segment.
func (m *scriptModule) Lookup(name string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, candidate := range []string{name, exportedName(name)} {
		if !token.IsIdentifier(candidate) {
			continue
		}
		v, err := m.interp.Eval(m.pkg + "." + candidate)
		if err != nil || !v.IsValid() || !v.CanInterface() {
			continue
		}
		return v.Interface(), true
	}
	return nil, false
}

func exportedName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
