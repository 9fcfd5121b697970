package condition

import (
	"slices"
	"sync"

	"github.com/GoCodeAlone/bootkit"
)

// ReportBeanName is the singleton bean name under which a registry's
// evaluation report is stored.
const ReportBeanName = "bootkit.conditionEvaluationReport"

// ConditionAndOutcome is one recorded evaluation: the condition name and
// the outcome it produced.
type ConditionAndOutcome struct {
	Condition string
	Outcome   Outcome
}

// EvaluationReport is the append-only record of condition evaluations for
// one bean registry. Subjects are kept in first-recorded order, and each
// subject's outcomes in evaluation order. A child context's report holds a
// reference to its parent's report so diagnostics can be reconstructed
// across a context hierarchy. The report lives as long as its registry.
//
// Safe for concurrent appends; a single subject's sequence is never
// reordered.
type EvaluationReport struct {
	mu            sync.Mutex
	parent        *EvaluationReport
	order         []string
	outcomes      map[string][]ConditionAndOutcome
	unconditional []string
	exclusions    []string
}

// NewEvaluationReport creates an empty report. Parent may be nil.
func NewEvaluationReport(parent *EvaluationReport) *EvaluationReport {
	return &EvaluationReport{
		parent:   parent,
		outcomes: make(map[string][]ConditionAndOutcome),
	}
}

// ReportFor returns the evaluation report owned by the registry, creating
// and registering it on first access. When the registry has a parent, the
// parent's report (itself created on demand) is linked as the new
// report's parent.
func ReportFor(registry bootkit.BeanRegistry) *EvaluationReport {
	var report *EvaluationReport
	if err := registry.GetBean(ReportBeanName, &report); err == nil {
		return report
	}

	var parent *EvaluationReport
	if parentRegistry := registry.Parent(); parentRegistry != nil {
		parent = ReportFor(parentRegistry)
	}
	report = NewEvaluationReport(parent)
	if err := registry.RegisterSingleton(ReportBeanName, report); err != nil {
		// Lost a registration race; the winner's report is authoritative.
		if getErr := registry.GetBean(ReportBeanName, &report); getErr == nil {
			return report
		}
	}
	return report
}

// Parent returns the parent report, or nil.
func (r *EvaluationReport) Parent() *EvaluationReport {
	return r.parent
}

// RecordConditionEvaluation appends one (condition, outcome) pair to the
// subject's sequence.
func (r *EvaluationReport) RecordConditionEvaluation(subjectID, conditionName string, outcome Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, seen := r.outcomes[subjectID]; !seen {
		r.order = append(r.order, subjectID)
	}
	r.outcomes[subjectID] = append(r.outcomes[subjectID], ConditionAndOutcome{
		Condition: conditionName,
		Outcome:   outcome,
	})
}

// RecordUnconditionalClasses notes candidates that were evaluated without
// any condition attached.
func (r *EvaluationReport) RecordUnconditionalClasses(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unconditional = append(r.unconditional, names...)
}

// RecordExclusions notes candidates excluded before evaluation.
func (r *EvaluationReport) RecordExclusions(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exclusions = append(r.exclusions, names...)
}

// Subjects returns the subject identifiers in first-recorded order.
func (r *EvaluationReport) Subjects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.order)
}

// ConditionAndOutcomes returns the recorded evaluations for a subject in
// evaluation order.
func (r *EvaluationReport) ConditionAndOutcomes(subjectID string) []ConditionAndOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.outcomes[subjectID])
}

// Matched reports whether every recorded outcome for the subject matched.
// A subject with no recorded outcomes counts as matched.
func (r *EvaluationReport) Matched(subjectID string) bool {
	for _, entry := range r.ConditionAndOutcomes(subjectID) {
		if !entry.Outcome.IsMatch() {
			return false
		}
	}
	return true
}

// Exclusions returns the candidates excluded before evaluation.
func (r *EvaluationReport) Exclusions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.exclusions)
}

// UnconditionalClasses returns candidates evaluated with no conditions,
// including those recorded by ancestor reports, minus recorded exclusions.
func (r *EvaluationReport) UnconditionalClasses() []string {
	excluded := make(map[string]struct{})
	var names []string
	for report := r; report != nil; report = report.parent {
		report.mu.Lock()
		for _, name := range report.exclusions {
			excluded[name] = struct{}{}
		}
		for _, name := range report.unconditional {
			names = append(names, name)
		}
		report.mu.Unlock()
	}

	var result []string
	for _, name := range names {
		if _, isExcluded := excluded[name]; !isExcluded && !slices.Contains(result, name) {
			result = append(result, name)
		}
	}
	return result
}
