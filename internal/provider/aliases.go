package provider

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"soustackgw/internal/domain"
)

//go:embed aliases.yaml
var defaultAliasesYAML []byte

// Aliases maps each stage to the export names probed for it, in order.
type Aliases map[domain.Stage][]string

// DefaultAliases returns the built-in candidate table.
func DefaultAliases() Aliases {
	a, err := parseAliases(defaultAliasesYAML)
	if err != nil {
		panic(fmt.Sprintf("provider: embedded aliases.yaml: %v", err))
	}
	return a
}

// LoadAliases returns the built-in table overridden per stage by the YAML file at path.
// An empty path yields the built-in table.
func LoadAliases(path string) (Aliases, error) {
	aliases := DefaultAliases()
	if path == "" {
		return aliases, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read aliases file: %w", err)
	}
	overrides, err := parseAliases(data)
	if err != nil {
		return nil, fmt.Errorf("parse aliases file %s: %w", path, err)
	}
	for stage, names := range overrides {
		aliases[stage] = names
	}
	return aliases, nil
}

// Candidates returns the names probed for stage; the stage name itself is
// used when the table has no entry.
func (a Aliases) Candidates(stage domain.Stage) []string {
	if names := a[stage]; len(names) > 0 {
		return names
	}
	return []string{string(stage)}
}

func parseAliases(data []byte) (Aliases, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(Aliases, len(raw))
	for stage, names := range raw {
		if len(names) == 0 {
			return nil, fmt.Errorf("stage %q has no candidate names", stage)
		}
		out[domain.Stage(stage)] = names
	}
	return out, nil
}
