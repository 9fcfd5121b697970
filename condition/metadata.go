package condition

// Metadata attribute names. These are the literal keys of the metadata
// side-table produced by the build-time metadata generation step.
const (
	// AttributeOnClass holds a comma-joined list of class names that must
	// all resolve for the candidate to survive the class-presence filter.
	AttributeOnClass = "ConditionalOnClass"

	// AttributeOnWebApplication holds the required web application flavor
	// (SERVLET or REACTIVE; any other value means any flavor).
	AttributeOnWebApplication = "ConditionalOnWebApplication"
)

// Metadata is the read-only side-table consulted by the bulk filter pass.
// It maps (candidate class name, attribute name) to a raw string value.
// Absence of a key means the candidate carries no constraint for that
// attribute and automatically passes the corresponding filter.
type Metadata interface {
	Get(class, attribute string) (string, bool)
}

// Properties is the stock Metadata implementation, keyed
// "<class>.<attribute>" the way the generated metadata file is keyed.
type Properties map[string]string

// Get implements Metadata.
func (p Properties) Get(class, attribute string) (string, bool) {
	value, ok := p[class+"."+attribute]
	return value, ok
}

// Set records an attribute value for a candidate class.
func (p Properties) Set(class, attribute, value string) {
	p[class+"."+attribute] = value
}
