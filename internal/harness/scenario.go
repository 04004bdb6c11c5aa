package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/tessellated/extstore/internal/value"
)

// Scenario defines a conformance test scenario: a sequence of storage
// operations against a single extension's storage area.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// ExtensionID is the storage area to operate on. If empty, the runner
	// generates a random id; traces never contain the id, so golden
	// comparison stays deterministic either way.
	ExtensionID string `yaml:"ext_id,omitempty"`

	// Steps are executed in order.
	Steps []Step `yaml:"steps"`
}

// Step is one storage operation.
type Step struct {
	// Op is one of "set", "get", "remove", "clear".
	Op string `yaml:"op"`

	// Value is the object to merge (set only). Decoded via yaml.Node so
	// property order survives.
	Value yaml.Node `yaml:"value,omitempty"`

	// Keys is the key specification (get/remove). An absent field and an
	// explicit null both mean "everything" for get; they are
	// distinguishable here but deliberately behave the same, as in the
	// engine.
	Keys yaml.Node `yaml:"keys,omitempty"`
}

var validOps = map[string]bool{"set": true, "get": true, "remove": true, "clear": true}

// LoadScenario reads and validates a single scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if sc.Name == "" {
		return nil, fmt.Errorf("scenario %s: missing name", path)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s: no steps", path)
	}
	for i, step := range sc.Steps {
		if !validOps[step.Op] {
			return nil, fmt.Errorf("scenario %s: step %d has unknown op %q", path, i, step.Op)
		}
	}
	return &sc, nil
}

// LoadScenarioDir loads every *.yaml scenario in dir, sorted by filename.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		sc, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

// valueFromYAML converts a YAML node to a storage value. A zero node (the
// field was absent) converts to nil, the absent sentinel.
func valueFromYAML(n *yaml.Node) (value.Value, error) {
	if n == nil || n.Kind == 0 {
		return nil, nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return valueFromYAML(n.Content[0])
	case yaml.AliasNode:
		return valueFromYAML(n.Alias)
	case yaml.ScalarNode:
		return scalarFromYAML(n)
	case yaml.SequenceNode:
		arr := make(value.Array, 0, len(n.Content))
		for i, elem := range n.Content {
			v, err := valueFromYAML(elem)
			if err != nil {
				return nil, fmt.Errorf("sequence[%d]: %w", i, err)
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.MappingNode:
		obj := value.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("mapping key at %d:%d is not a scalar", key.Line, key.Column)
			}
			v, err := valueFromYAML(n.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("mapping key %q: %w", key.Value, err)
			}
			obj.Set(key.Value, v)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d at %d:%d", n.Kind, n.Line, n.Column)
	}
}

func scalarFromYAML(n *yaml.Node) (value.Value, error) {
	switch n.Tag {
	case "!!null":
		return value.Null{}, nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, fmt.Errorf("bad bool %q at %d:%d", n.Value, n.Line, n.Column)
		}
		return value.Bool(b), nil
	case "!!int", "!!float":
		// The scalar text is the JSON literal; validate it parses.
		if _, err := value.Parse([]byte(n.Value)); err != nil {
			return nil, fmt.Errorf("bad number %q at %d:%d", n.Value, n.Line, n.Column)
		}
		return value.Number(n.Value), nil
	case "!!str":
		return value.String(n.Value), nil
	default:
		return nil, fmt.Errorf("unsupported YAML scalar tag %s at %d:%d", n.Tag, n.Line, n.Column)
	}
}
