package condition

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoCodeAlone/bootkit"
)

func newTestContext(loader bootkit.ClassLoader) *Context {
	return &Context{
		Loader:      loader,
		Environment: bootkit.NewMapEnvironment(),
	}
}

func TestOnClassConditionMatch(t *testing.T) {
	loader := bootkit.NewStaticClassLoader("com.x.Present")
	cond := NewOnClassCondition()

	outcome, err := cond.MatchOutcome(newTestContext(loader), Subject{
		Class:           "demo.Config",
		RequiredClasses: []string{"com.x.Present"},
	})
	require.NoError(t, err)
	assert.Equal(t, ResultMatch, outcome.Result)
	assert.Contains(t, outcome.Message, "found required class 'com.x.Present'")
}

func TestOnClassConditionMissingRequired(t *testing.T) {
	loader := bootkit.NewStaticClassLoader("com.x.Present")
	cond := NewOnClassCondition()

	outcome, err := cond.MatchOutcome(newTestContext(loader), Subject{
		Class:           "demo.Config",
		RequiredClasses: []string{"com.x.Present", "com.x.Absent"},
	})
	require.NoError(t, err)
	assert.Equal(t, ResultNoMatch, outcome.Result)
	assert.Contains(t, outcome.Message, "did not find required class 'com.x.Absent'")
}

func TestOnClassConditionForbiddenPresent(t *testing.T) {
	loader := bootkit.NewStaticClassLoader("com.x.Unwanted")
	cond := NewOnClassCondition()

	outcome, err := cond.MatchOutcome(newTestContext(loader), Subject{
		Class:            "demo.Config",
		ForbiddenClasses: []string{"com.x.Unwanted"},
	})
	require.NoError(t, err)
	assert.Equal(t, ResultNoMatch, outcome.Result)
	assert.Contains(t, outcome.Message, "found unwanted class 'com.x.Unwanted'")
}

func TestOnClassConditionForbiddenAbsent(t *testing.T) {
	loader := bootkit.NewStaticClassLoader()
	cond := NewOnClassCondition()

	outcome, err := cond.MatchOutcome(newTestContext(loader), Subject{
		Class:            "demo.Config",
		ForbiddenClasses: []string{"com.x.Unwanted"},
	})
	require.NoError(t, err)
	assert.Equal(t, ResultMatch, outcome.Result)
}

func TestOnClassConditionNoRequirements(t *testing.T) {
	cond := NewOnClassCondition()
	outcome, err := cond.MatchOutcome(newTestContext(bootkit.NewStaticClassLoader()), Subject{Class: "demo.Config"})
	require.NoError(t, err)
	assert.Equal(t, ResultNotApplicable, outcome.Result)
}

func TestOnClassConditionLoadFailureIsFatal(t *testing.T) {
	cause := errors.New("corrupt archive")
	loader := bootkit.NewStaticClassLoader()
	loader.RegisterBroken("com.x.Broken", cause)
	cond := NewOnClassCondition()

	_, err := cond.MatchOutcome(newTestContext(loader), Subject{
		Class:           "demo.Config",
		RequiredClasses: []string{"com.x.Broken"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, bootkit.ErrClassLoad)
}

func TestOnClassFilterMask(t *testing.T) {
	loader := bootkit.NewStaticClassLoader("java.lang.String")
	metadata := Properties{}
	metadata.Set("A", AttributeOnClass, "com.x.Y")
	metadata.Set("B", AttributeOnClass, "java.lang.String")

	candidates := []string{"A", "B", "C"}
	mask := ApplyFilters(newTestContext(loader), candidates, metadata, NewOnClassCondition())

	assert.Equal(t, []bool{false, true, true}, mask)
	assert.Equal(t, []string{"B", "C"}, Survivors(candidates, mask))
}

func TestOnClassFilterFirstMissingOnly(t *testing.T) {
	loader := bootkit.NewStaticClassLoader()
	cond := NewOnClassCondition()

	outcome := cond.filterOutcome(loader, "com.x.First, com.x.Second")
	assert.Equal(t, ResultNoMatch, outcome.Result)
	assert.Contains(t, outcome.Message, "'com.x.First'")
	assert.NotContains(t, outcome.Message, "'com.x.Second'",
		"the reason names only the first missing class")
}

func TestOnClassFilterRecoversLoadFailures(t *testing.T) {
	loader := bootkit.NewStaticClassLoader()
	loader.RegisterBroken("com.x.Broken", errors.New("boom"))
	metadata := Properties{}
	metadata.Set("A", AttributeOnClass, "com.x.Broken")

	mask := ApplyFilters(newTestContext(loader), []string{"A", "B"}, metadata, NewOnClassCondition())
	assert.Equal(t, []bool{false, true}, mask, "broken class treated as missing, rest unaffected")
}

func TestOnClassFilterDeterministicUnderParallelism(t *testing.T) {
	loader := bootkit.NewStaticClassLoader("p.Even")
	metadata := Properties{}
	candidates := make([]string, 64)
	for i := range candidates {
		name := string(rune('a'+i%26)) + ".Config"
		candidates[i] = name
		if i%2 == 0 {
			metadata.Set(name, AttributeOnClass, "p.Even")
		} else {
			metadata.Set(name, AttributeOnClass, "p.Odd")
		}
	}

	cond := NewOnClassCondition()
	ctx := newTestContext(loader)
	sequential := cond.resolveOutcomes(ctx, candidates, 0, len(candidates), metadata)
	for i := 0; i < 20; i++ {
		assert.Equal(t, sequential, cond.resolveOutcomesThreaded(ctx, candidates, metadata))
		assert.Equal(t, sequential, cond.Outcomes(ctx, candidates, metadata))
	}
}

func TestOnClassFilterEmptyAttributeValue(t *testing.T) {
	metadata := Properties{}
	metadata.Set("A", AttributeOnClass, " ")

	mask := ApplyFilters(newTestContext(bootkit.NewStaticClassLoader()), []string{"A"}, metadata, NewOnClassCondition())
	assert.Equal(t, []bool{true}, mask)
}
