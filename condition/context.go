package condition

import (
	"github.com/GoCodeAlone/bootkit"
)

// Context supplies the collaborators a condition evaluates against.
// Registry may be nil during the early bulk filter pass, before a bean
// registry exists; conditions must tolerate its absence. ResourceLoader
// is opaque to this package and only examined by type assertion against
// bootkit.WebTyped.
type Context struct {
	Loader         bootkit.ClassLoader
	Environment    bootkit.Environment
	Registry       bootkit.BeanRegistry
	ResourceLoader any
	Logger         bootkit.Logger
}

func (c *Context) logOutcome(conditionName, subjectID string, outcome Outcome) {
	if c.Logger == nil {
		return
	}
	verdict := "matched"
	if !outcome.IsMatch() {
		verdict = "did not match"
	}
	c.Logger.Debug("Condition "+conditionName+" on "+subjectID+" "+verdict,
		"reason", outcome.Message)
}
