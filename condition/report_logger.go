package condition

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/GoCodeAlone/bootkit"
)

// ReportLogger writes evaluation report snapshots through the framework
// logger, either on demand after startup or periodically on a cron
// schedule for long-running processes.
type ReportLogger struct {
	report *EvaluationReport
	logger bootkit.Logger
	cron   *cron.Cron
}

// NewReportLogger creates a logger for the given report.
func NewReportLogger(report *EvaluationReport, logger bootkit.Logger) *ReportLogger {
	return &ReportLogger{report: report, logger: logger}
}

// Log writes one snapshot of the report: a summary at info level and one
// debug line per recorded evaluation.
func (l *ReportLogger) Log() {
	subjects := l.report.Subjects()
	matched, unmatched := 0, 0
	for _, subject := range subjects {
		if l.report.Matched(subject) {
			matched++
		} else {
			unmatched++
		}
	}
	l.logger.Info("Condition evaluation report",
		"subjects", len(subjects), "matched", matched, "unmatched", unmatched,
		"unconditional", len(l.report.UnconditionalClasses()))

	for _, subject := range subjects {
		for _, entry := range l.report.ConditionAndOutcomes(subject) {
			l.logger.Debug("Condition evaluation",
				"subject", subject,
				"condition", entry.Condition,
				"result", entry.Outcome.Result.String(),
				"reason", entry.Outcome.Message)
		}
	}
}

// Schedule starts periodic snapshots on the given cron expression.
func (l *ReportLogger) Schedule(spec string) error {
	if l.cron != nil {
		l.cron.Stop()
	}
	l.cron = cron.New()
	if _, err := l.cron.AddFunc(spec, l.Log); err != nil {
		return fmt.Errorf("scheduling report logger: %w", err)
	}
	l.cron.Start()
	return nil
}

// Stop cancels periodic snapshots. Safe to call without a schedule.
func (l *ReportLogger) Stop() {
	if l.cron != nil {
		l.cron.Stop()
		l.cron = nil
	}
}
