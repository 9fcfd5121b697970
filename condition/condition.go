package condition

import (
	"fmt"
)

// Condition is a declarative predicate gating whether a subject activates.
// MatchOutcome returns the evaluation outcome, or an error when the
// condition could not be evaluated at all. A NotApplicable outcome means
// the subject carries no requirement of this condition's kind.
type Condition interface {
	// Name identifies the condition in logs and the evaluation report.
	Name() string

	// MatchOutcome evaluates the condition against the subject.
	MatchOutcome(ctx *Context, subject Subject) (Outcome, error)
}

// Evaluate runs a condition against a subject, logs the outcome, records
// applicable outcomes in the registry's evaluation report, and reports
// whether the subject passed.
//
// Evaluation failures (as opposed to "no match") are wrapped in
// ErrConditionEvaluation with guidance for the operator; they indicate a
// broken configuration rather than a legitimately inactive candidate.
func Evaluate(ctx *Context, subject Subject, cond Condition) (bool, error) {
	outcome, err := cond.MatchOutcome(ctx, subject)
	if err != nil {
		return false, fmt.Errorf(
			"%w %s on %s: %w. Make sure your own configuration does not rely on a class that cannot be loaded",
			ErrConditionEvaluation, cond.Name(), subject.ID(), err)
	}

	ctx.logOutcome(cond.Name(), subject.ID(), outcome)
	if ctx.Registry != nil && outcome.Applicable() {
		ReportFor(ctx.Registry).RecordConditionEvaluation(subject.ID(), cond.Name(), outcome)
	}
	return outcome.IsMatch(), nil
}

// EvaluateAll runs every condition against the subject and reports
// whether all of them passed. Evaluation stops at the first failure or
// non-match; conditions are evaluated in the given order.
func EvaluateAll(ctx *Context, subject Subject, conditions ...Condition) (bool, error) {
	for _, cond := range conditions {
		matched, err := Evaluate(ctx, subject, cond)
		if err != nil {
			return false, err
		}
		if !matched {
			return false, nil
		}
	}
	return true, nil
}
