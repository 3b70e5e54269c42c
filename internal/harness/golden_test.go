package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGolden_Scenarios(t *testing.T) {
	for _, name := range []string{"married_twice", "simple_family", "wrong_sex_spouse"} {
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario("testdata/scenarios/" + name + ".yaml")
			require.NoError(t, err)

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			require.True(t, result.Pass, "failures: %v", result.Errors)
		})
	}
}

func TestAssertGolden_ExistingResult(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/married_twice.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	require.NoError(t, AssertGolden(t, "married_twice", result))
}
