package harness

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tessellated/extstore/internal/store"
	"github.com/tessellated/extstore/internal/value"
)

func TestScenarios_Golden(t *testing.T) {
	scenarios, err := LoadScenarioDir("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios, "no scenario fixtures found")

	for _, sc := range scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			RunWithGolden(t, sc)
		})
	}
}

func writeScenario(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestLoadScenario_Validation(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing name", "steps:\n  - op: get\n"},
		{"no steps", "name: empty\n"},
		{"unknown op", "name: bad\nsteps:\n  - op: frobnicate\n"},
		{"not yaml", "{{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.src))
			assert.Error(t, err)
		})
	}

	_, err := LoadScenario(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestValueFromYAML_OrderAndTypes(t *testing.T) {
	var n yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("b: 1\na: two\nc:\n  - true\n  - null\n  - 1.5\n"), &n))

	v, err := valueFromYAML(&n)
	require.NoError(t, err)
	data, err := value.Encode(v)
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":"two","c":[true,null,1.5]}`, string(data))
}

func TestValueFromYAML_AbsentVsNull(t *testing.T) {
	// A zero node (field never set) is the absent sentinel.
	v, err := valueFromYAML(&yaml.Node{})
	require.NoError(t, err)
	assert.Nil(t, v)

	var n yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("null\n"), &n))
	v, err = valueFromYAML(&n)
	require.NoError(t, err)
	assert.Equal(t, value.Null{}, v)
}

func TestRun_GeneratesExtensionIDWhenBlank(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "harness.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	sc, err := LoadScenario(writeScenario(t, "name: anon\nsteps:\n  - op: get\n"))
	require.NoError(t, err)

	result, err := Run(context.Background(), st, sc)
	require.NoError(t, err)
	_, err = uuid.Parse(result.ExtensionID)
	assert.NoError(t, err, "blank ext_id should be filled with a generated uuid")
}

func TestRun_ScenariosShareTheStoreButNotTheArea(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "harness.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	ctx := context.Background()

	first, err := LoadScenario(writeScenario(t,
		"name: first\nsteps:\n  - op: set\n    value:\n      k: v\n"))
	require.NoError(t, err)
	_, err = Run(ctx, st, first)
	require.NoError(t, err)

	// A second scenario with its own generated id starts empty.
	second, err := LoadScenario(writeScenario(t, "name: second\nsteps:\n  - op: get\n"))
	require.NoError(t, err)
	result, err := Run(ctx, st, second)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(result.Trace[0].Result))
}
