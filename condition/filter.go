package condition

// ImportFilter is the bulk pre-filter contract: given the full ordered
// candidate list and the metadata side-table, produce one outcome per
// candidate, same length and order. Implementations must never fail for
// an individual candidate; unresolvable classes are treated as missing.
type ImportFilter interface {
	// Name identifies the filter in logs and the evaluation report.
	Name() string

	// Outcomes screens every candidate. A NotApplicable outcome means the
	// candidate carries no constraint for this filter and passes.
	Outcomes(ctx *Context, candidates []string, metadata Metadata) []Outcome
}

// ApplyFilters runs each filter over the candidates and returns the
// AND-merged boolean mask: mask[i] is true when candidates[i] survived
// every filter. No-match outcomes are logged and recorded in the
// registry's evaluation report when a registry is available. The mask is
// positionally stable and independent of filter-internal concurrency.
func ApplyFilters(ctx *Context, candidates []string, metadata Metadata, filters ...ImportFilter) []bool {
	mask := make([]bool, len(candidates))
	for i := range mask {
		mask[i] = true
	}

	var report *EvaluationReport
	if ctx.Registry != nil {
		report = ReportFor(ctx.Registry)
	}

	for _, filter := range filters {
		outcomes := filter.Outcomes(ctx, candidates, metadata)
		for i, outcome := range outcomes {
			if outcome.IsMatch() {
				continue
			}
			mask[i] = false
			ctx.logOutcome(filter.Name(), candidates[i], outcome)
			if report != nil {
				report.RecordConditionEvaluation(candidates[i], filter.Name(), outcome)
			}
		}
	}
	return mask
}

// Survivors returns the candidates whose mask entry is true, preserving
// order.
func Survivors(candidates []string, mask []bool) []string {
	var survivors []string
	for i, candidate := range candidates {
		if mask[i] {
			survivors = append(survivors, candidate)
		}
	}
	return survivors
}
