package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoCodeAlone/bootkit"
)

func TestApplyFiltersANDMergesMasks(t *testing.T) {
	loader := bootkit.NewStaticClassLoader("p.Present", ServletWebApplicationClass)
	metadata := Properties{}
	metadata.Set("A", AttributeOnClass, "p.Missing")
	metadata.Set("B", AttributeOnWebApplication, "REACTIVE")
	metadata.Set("C", AttributeOnClass, "p.Present")
	metadata.Set("C", AttributeOnWebApplication, "SERVLET")

	candidates := []string{"A", "B", "C", "D"}
	mask := ApplyFilters(newTestContext(loader), candidates, metadata,
		NewOnClassCondition(), NewOnWebApplicationCondition())

	assert.Equal(t, []bool{false, false, true, true}, mask)
	assert.Equal(t, []string{"C", "D"}, Survivors(candidates, mask))
}

func TestApplyFiltersRecordsNoMatches(t *testing.T) {
	registry := bootkit.NewBeanRegistry()
	ctx := &Context{
		Loader:      bootkit.NewStaticClassLoader(),
		Environment: bootkit.NewMapEnvironment(),
		Registry:    registry,
	}
	metadata := Properties{}
	metadata.Set("A", AttributeOnClass, "p.Missing")

	ApplyFilters(ctx, []string{"A", "B"}, metadata, NewOnClassCondition())

	report := ReportFor(registry)
	assert.Equal(t, []string{"A"}, report.Subjects(),
		"only the excluded candidate gets an entry")
	outcomes := report.ConditionAndOutcomes("A")
	require.Len(t, outcomes, 1)
	assert.Equal(t, "OnClassCondition", outcomes[0].Condition)
	assert.Equal(t, ResultNoMatch, outcomes[0].Outcome.Result)
}

func TestApplyFiltersNoFilters(t *testing.T) {
	mask := ApplyFilters(newTestContext(bootkit.NewStaticClassLoader()), []string{"A", "B"}, Properties{})
	assert.Equal(t, []bool{true, true}, mask)
}

func TestSurvivorsEmptyMask(t *testing.T) {
	assert.Nil(t, Survivors([]string{"A"}, []bool{false}))
	assert.Nil(t, Survivors(nil, nil))
}
