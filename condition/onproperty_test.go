package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoCodeAlone/bootkit"
)

func propertySubject(attributes ...PropertyAttributes) Subject {
	return Subject{Class: "demo.Config", Properties: attributes}
}

func TestOnPropertyConditionMatch(t *testing.T) {
	env := bootkit.NewMapEnvironment()
	env.SetProperty("feature.enabled", "true")
	ctx := &Context{Loader: bootkit.NewStaticClassLoader(), Environment: env}

	outcome, err := NewOnPropertyCondition().MatchOutcome(ctx, propertySubject(PropertyAttributes{
		Prefix: "feature",
		Name:   []string{"enabled"},
	}))
	require.NoError(t, err)
	assert.Equal(t, ResultMatch, outcome.Result)
	assert.Contains(t, outcome.Message, "(feature.enabled) matched")
}

func TestOnPropertyConditionMissing(t *testing.T) {
	ctx := &Context{Environment: bootkit.NewMapEnvironment()}
	cond := NewOnPropertyCondition()

	t.Run("missing is no match", func(t *testing.T) {
		outcome, err := cond.MatchOutcome(ctx, propertySubject(PropertyAttributes{
			Name: []string{"absent"},
		}))
		require.NoError(t, err)
		assert.Equal(t, ResultNoMatch, outcome.Result)
		assert.Contains(t, outcome.Message, "did not find property 'absent'")
	})

	t.Run("matchIfMissing accepts absence", func(t *testing.T) {
		outcome, err := cond.MatchOutcome(ctx, propertySubject(PropertyAttributes{
			Name:           []string{"absent"},
			MatchIfMissing: true,
		}))
		require.NoError(t, err)
		assert.Equal(t, ResultMatch, outcome.Result)
	})
}

func TestOnPropertyConditionHavingValue(t *testing.T) {
	env := bootkit.NewMapEnvironment()
	env.SetProperty("server.mode", "Proxy")
	env.SetProperty("server.disabled", "false")
	env.SetProperty("server.enabled", "anything")
	ctx := &Context{Environment: env}
	cond := NewOnPropertyCondition()

	t.Run("case-insensitive value match", func(t *testing.T) {
		outcome, err := cond.MatchOutcome(ctx, propertySubject(PropertyAttributes{
			Prefix:      "server",
			Name:        []string{"mode"},
			HavingValue: "proxy",
		}))
		require.NoError(t, err)
		assert.Equal(t, ResultMatch, outcome.Result)
	})

	t.Run("different value is no match", func(t *testing.T) {
		outcome, err := cond.MatchOutcome(ctx, propertySubject(PropertyAttributes{
			Prefix:      "server",
			Name:        []string{"mode"},
			HavingValue: "direct",
		}))
		require.NoError(t, err)
		assert.Equal(t, ResultNoMatch, outcome.Result)
		assert.Contains(t, outcome.Message, "different value in property 'mode'")
	})

	t.Run("unset havingValue matches anything but false", func(t *testing.T) {
		outcome, err := cond.MatchOutcome(ctx, propertySubject(PropertyAttributes{
			Prefix: "server",
			Name:   []string{"enabled"},
		}))
		require.NoError(t, err)
		assert.Equal(t, ResultMatch, outcome.Result)

		outcome, err = cond.MatchOutcome(ctx, propertySubject(PropertyAttributes{
			Prefix: "server",
			Name:   []string{"disabled"},
		}))
		require.NoError(t, err)
		assert.Equal(t, ResultNoMatch, outcome.Result)
	})
}

func TestOnPropertyConditionMultipleInstances(t *testing.T) {
	env := bootkit.NewMapEnvironment()
	env.SetProperty("a.enabled", "true")
	ctx := &Context{Environment: env}

	outcome, err := NewOnPropertyCondition().MatchOutcome(ctx, propertySubject(
		PropertyAttributes{Prefix: "a", Name: []string{"enabled"}},
		PropertyAttributes{Prefix: "b", Name: []string{"enabled"}},
	))
	require.NoError(t, err)
	assert.Equal(t, ResultNoMatch, outcome.Result, "every instance must match")
}

func TestOnPropertyConditionNoRequirements(t *testing.T) {
	outcome, err := NewOnPropertyCondition().MatchOutcome(
		&Context{Environment: bootkit.NewMapEnvironment()}, Subject{Class: "demo.Config"})
	require.NoError(t, err)
	assert.Equal(t, ResultNotApplicable, outcome.Result)
}

func TestNewPropertySpecValidation(t *testing.T) {
	t.Run("neither name nor value", func(t *testing.T) {
		_, err := NewPropertySpec(PropertyAttributes{Prefix: "a"})
		assert.ErrorIs(t, err, ErrPropertyNamesRequired)
	})

	t.Run("both name and value", func(t *testing.T) {
		_, err := NewPropertySpec(PropertyAttributes{
			Name:  []string{"x"},
			Value: []string{"y"},
		})
		assert.ErrorIs(t, err, ErrPropertyNamesExclusive)
	})

	t.Run("value is an alias for name", func(t *testing.T) {
		spec, err := NewPropertySpec(PropertyAttributes{Value: []string{"x"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, spec.names)
	})

	t.Run("prefix gains trailing dot", func(t *testing.T) {
		spec, err := NewPropertySpec(PropertyAttributes{Prefix: "server", Name: []string{"port"}})
		require.NoError(t, err)
		assert.Equal(t, "server.", spec.prefix)

		spec, err = NewPropertySpec(PropertyAttributes{Prefix: "server.", Name: []string{"port"}})
		require.NoError(t, err)
		assert.Equal(t, "server.", spec.prefix)
	})

	t.Run("invalid instance fails evaluation", func(t *testing.T) {
		_, err := NewOnPropertyCondition().MatchOutcome(
			&Context{Environment: bootkit.NewMapEnvironment()},
			propertySubject(PropertyAttributes{Prefix: "a"}))
		assert.ErrorIs(t, err, ErrPropertyNamesRequired)
	})
}

func TestPropertySpecString(t *testing.T) {
	spec, err := NewPropertySpec(PropertyAttributes{
		Prefix:      "server",
		Name:        []string{"mode"},
		HavingValue: "proxy",
	})
	require.NoError(t, err)
	assert.Equal(t, "(server.mode=proxy)", spec.String())

	spec, err = NewPropertySpec(PropertyAttributes{Prefix: "server", Name: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "(server.[a,b])", spec.String())
}
