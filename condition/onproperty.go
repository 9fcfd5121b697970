package condition

import (
	"strings"

	"github.com/GoCodeAlone/bootkit"
)

// OnPropertyCondition checks that environment properties are present with
// acceptable values. The requirement is repeatable: every instance on the
// subject must match independently for the condition to match.
type OnPropertyCondition struct{}

// NewOnPropertyCondition creates the property condition.
func NewOnPropertyCondition() *OnPropertyCondition {
	return &OnPropertyCondition{}
}

// Name implements Condition.
func (c *OnPropertyCondition) Name() string {
	return "OnPropertyCondition"
}

// MatchOutcome implements Condition. An invalid attribute instance (the
// name/value invariants) is an evaluation failure, not a no-match.
func (c *OnPropertyCondition) MatchOutcome(ctx *Context, subject Subject) (Outcome, error) {
	if len(subject.Properties) == 0 {
		return NotApplicable(), nil
	}

	var match, noMatch []string
	for _, attributes := range subject.Properties {
		spec, err := NewPropertySpec(attributes)
		if err != nil {
			return Outcome{}, err
		}
		outcome := spec.determineOutcome(ctx.Environment)
		if outcome.IsMatch() {
			match = append(match, outcome.Message)
		} else {
			noMatch = append(noMatch, outcome.Message)
		}
	}

	if len(noMatch) > 0 {
		return NoMatch(strings.Join(noMatch, "; ")), nil
	}
	return Match(strings.Join(match, "; ")), nil
}

// PropertySpec is one validated property requirement: a normalized
// prefix, the property names to check, the required value, and whether an
// absent property counts as a match.
type PropertySpec struct {
	prefix         string
	havingValue    string
	names          []string
	matchIfMissing bool
}

// NewPropertySpec validates the attribute instance and builds a spec.
// Exactly one of Name or Value must be non-empty.
func NewPropertySpec(attributes PropertyAttributes) (*PropertySpec, error) {
	if len(attributes.Value) == 0 && len(attributes.Name) == 0 {
		return nil, ErrPropertyNamesRequired
	}
	if len(attributes.Value) > 0 && len(attributes.Name) > 0 {
		return nil, ErrPropertyNamesExclusive
	}

	prefix := strings.TrimSpace(attributes.Prefix)
	if prefix != "" && !strings.HasSuffix(prefix, ".") {
		prefix += "."
	}
	names := attributes.Value
	if len(names) == 0 {
		names = attributes.Name
	}
	return &PropertySpec{
		prefix:         prefix,
		havingValue:    attributes.HavingValue,
		names:          names,
		matchIfMissing: attributes.MatchIfMissing,
	}, nil
}

func (s *PropertySpec) determineOutcome(env bootkit.Environment) Outcome {
	var missing, nonMatching []string
	s.collectProperties(env, &missing, &nonMatching)
	if len(missing) > 0 {
		return NoMatch(s.String() + " " + didNotFind("property", "properties", missing))
	}
	if len(nonMatching) > 0 {
		return NoMatch(s.String() + " " + found("different value in property", "different value in properties", nonMatching))
	}
	return Match(s.String() + " matched")
}

func (s *PropertySpec) collectProperties(env bootkit.Environment, missing, nonMatching *[]string) {
	for _, name := range s.names {
		key := s.prefix + name
		if env.ContainsProperty(key) {
			value, _ := env.Property(key)
			if !s.isMatch(value) {
				*nonMatching = append(*nonMatching, name)
			}
		} else if !s.matchIfMissing {
			*missing = append(*missing, name)
		}
	}
}

// isMatch compares case-insensitively against the required value; with no
// required value, anything but "false" matches.
func (s *PropertySpec) isMatch(value string) bool {
	if s.havingValue != "" {
		return strings.EqualFold(value, s.havingValue)
	}
	return !strings.EqualFold(value, "false")
}

// String renders the spec for diagnostics: (prefix.name=value).
func (s *PropertySpec) String() string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(s.prefix)
	if len(s.names) == 1 {
		b.WriteString(s.names[0])
	} else {
		b.WriteString("[")
		b.WriteString(strings.Join(s.names, ","))
		b.WriteString("]")
	}
	if s.havingValue != "" {
		b.WriteString("=")
		b.WriteString(s.havingValue)
	}
	b.WriteString(")")
	return b.String()
}
