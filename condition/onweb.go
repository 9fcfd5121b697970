package condition

import (
	"slices"

	"github.com/GoCodeAlone/bootkit"
)

// Marker classes whose presence identifies the available web stacks.
const (
	// ServletWebApplicationClass marks the servlet stack.
	ServletWebApplicationClass = "github.com/GoCodeAlone/bootkit/webserver.ServletWebServerFactory"

	// ReactiveWebApplicationClass marks the reactive stack.
	ReactiveWebApplicationClass = "github.com/GoCodeAlone/bootkit/webserver.ReactiveWebServerFactory"
)

// SessionScopeName is the registry scope whose presence signals a running
// servlet web application.
const SessionScopeName = "session"

// OnWebApplicationCondition checks whether the application is (or is not)
// a web application of a required flavor. As an ImportFilter it screens
// candidates by marker-class presence alone; full evaluation additionally
// consults the bean registry's scopes and the concrete environment and
// resource-loader types.
type OnWebApplicationCondition struct{}

// NewOnWebApplicationCondition creates the web-application condition.
func NewOnWebApplicationCondition() *OnWebApplicationCondition {
	return &OnWebApplicationCondition{}
}

// Name implements Condition.
func (c *OnWebApplicationCondition) Name() string {
	return "OnWebApplicationCondition"
}

// MatchOutcome implements Condition. The underlying web-application check
// is computed once and negated when the subject requires NOT being in a
// web application.
func (c *OnWebApplicationCondition) MatchOutcome(ctx *Context, subject Subject) (Outcome, error) {
	if subject.Web == nil {
		return NotApplicable(), nil
	}
	required := !subject.Web.Negated
	outcome := c.isWebApplication(ctx, subject.Web.Type, required)
	if required && !outcome.IsMatch() {
		return NoMatch(outcome.Message), nil
	}
	if !required && outcome.IsMatch() {
		return NoMatch(outcome.Message), nil
	}
	return Match(outcome.Message), nil
}

func (c *OnWebApplicationCondition) isWebApplication(ctx *Context, flavor bootkit.WebApplicationType, required bool) Outcome {
	switch flavor {
	case bootkit.WebApplicationServlet:
		return c.isServletWebApplication(ctx)
	case bootkit.WebApplicationReactive:
		return c.isReactiveWebApplication(ctx)
	default:
		return c.isAnyWebApplication(ctx, required)
	}
}

func (c *OnWebApplicationCondition) isAnyWebApplication(ctx *Context, required bool) Outcome {
	servletOutcome := c.isServletWebApplication(ctx)
	if servletOutcome.IsMatch() && required {
		return servletOutcome
	}
	reactiveOutcome := c.isReactiveWebApplication(ctx)
	if reactiveOutcome.IsMatch() && required {
		return reactiveOutcome
	}
	message := servletOutcome.Message + " and " + reactiveOutcome.Message
	if servletOutcome.IsMatch() || reactiveOutcome.IsMatch() {
		return Match(message)
	}
	return NoMatch(message)
}

// isServletWebApplication checks the three independent servlet signals:
// a registered session scope, a servlet-typed environment, and a
// servlet-typed resource loader. Any one suffices.
func (c *OnWebApplicationCondition) isServletWebApplication(ctx *Context) Outcome {
	if !bootkit.ClassPresent(ctx.Loader, ServletWebApplicationClass) {
		return NoMatch("did not find servlet web application classes")
	}
	if ctx.Registry != nil && slices.Contains(ctx.Registry.RegisteredScopeNames(), SessionScopeName) {
		return Match("found 'session' scope")
	}
	if webTypeOf(ctx.Environment) == bootkit.WebApplicationServlet {
		return Match("found servlet web environment")
	}
	if webTypeOf(ctx.ResourceLoader) == bootkit.WebApplicationServlet {
		return Match("found servlet web application context")
	}
	return NoMatch("not a servlet web application")
}

func (c *OnWebApplicationCondition) isReactiveWebApplication(ctx *Context) Outcome {
	if !bootkit.ClassPresent(ctx.Loader, ReactiveWebApplicationClass) {
		return NoMatch("did not find reactive web application classes")
	}
	if webTypeOf(ctx.Environment) == bootkit.WebApplicationReactive {
		return Match("found reactive web environment")
	}
	if webTypeOf(ctx.ResourceLoader) == bootkit.WebApplicationReactive {
		return Match("found reactive web application context")
	}
	return NoMatch("not a reactive web application")
}

func webTypeOf(v any) bootkit.WebApplicationType {
	if typed, ok := v.(bootkit.WebTyped); ok {
		return typed.WebApplicationType()
	}
	return bootkit.WebApplicationNone
}

// Outcomes implements ImportFilter. Candidates are screened against the
// required flavor by marker-class presence only; this pass needs no bean
// registry.
func (c *OnWebApplicationCondition) Outcomes(ctx *Context, candidates []string, metadata Metadata) []Outcome {
	outcomes := make([]Outcome, len(candidates))
	for i, candidate := range candidates {
		flavor, ok := metadata.Get(candidate, AttributeOnWebApplication)
		if !ok {
			outcomes[i] = NotApplicable()
			continue
		}
		outcomes[i] = c.filterOutcome(ctx.Loader, flavor)
	}
	return outcomes
}

func (c *OnWebApplicationCondition) filterOutcome(loader bootkit.ClassLoader, flavor string) Outcome {
	servletPresent := bootkit.ClassPresent(loader, ServletWebApplicationClass)
	reactivePresent := bootkit.ClassPresent(loader, ReactiveWebApplicationClass)
	if flavor == bootkit.WebApplicationServlet.String() && !servletPresent {
		return NoMatch("did not find servlet web application classes")
	}
	if flavor == bootkit.WebApplicationReactive.String() && !reactivePresent {
		return NoMatch("did not find reactive web application classes")
	}
	if !servletPresent && !reactivePresent {
		return NoMatch("did not find reactive or servlet web application classes")
	}
	return NotApplicable()
}
