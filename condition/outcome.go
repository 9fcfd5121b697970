// Package condition implements the conditional auto-configuration
// evaluation engine: declarative predicates gating which candidate
// configuration classes activate, a cheap bulk pre-filter pass over
// candidate names, and a per-registry diagnostic report of every
// evaluation.
package condition

// Result is the three-valued outcome of evaluating a condition against a
// subject. NotApplicable means the subject carries no requirement for the
// condition; it passes without an outcome being recorded.
type Result int

const (
	// ResultNotApplicable means no requirement of this condition's kind
	// applies to the subject. Treated as a pass.
	ResultNotApplicable Result = iota

	// ResultNoMatch means the condition applied and was not satisfied.
	ResultNoMatch

	// ResultMatch means the condition applied and was satisfied.
	ResultMatch
)

// String returns the result name for diagnostics.
func (r Result) String() string {
	switch r {
	case ResultMatch:
		return "match"
	case ResultNoMatch:
		return "no match"
	default:
		return "not applicable"
	}
}

// Outcome is the immutable result of one condition evaluation: a
// three-valued result plus a human-readable reason used for diagnostics.
type Outcome struct {
	Result  Result
	Message string
}

// Match creates a matching outcome with the given reason.
func Match(message string) Outcome {
	return Outcome{Result: ResultMatch, Message: message}
}

// NoMatch creates a non-matching outcome with the given reason.
func NoMatch(message string) Outcome {
	return Outcome{Result: ResultNoMatch, Message: message}
}

// NotApplicable creates an outcome meaning the condition does not apply.
func NotApplicable() Outcome {
	return Outcome{Result: ResultNotApplicable}
}

// IsMatch reports whether the subject passes: both Match and
// NotApplicable pass, only NoMatch excludes.
func (o Outcome) IsMatch() bool {
	return o.Result != ResultNoMatch
}

// Applicable reports whether the condition actually applied to the
// subject. Only applicable outcomes are recorded in the report.
func (o Outcome) Applicable() bool {
	return o.Result != ResultNotApplicable
}
