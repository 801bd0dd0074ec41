package cpbridge

import "context"

// ParamType is the declared scalar type of a tool parameter.
type ParamType string

const (
	TypeString     ParamType = "string"
	TypeInteger    ParamType = "integer"
	TypeBoolean    ParamType = "boolean"
	TypeStringList ParamType = "string_list"
)

// Param describes one parameter of a tool: its type, whether the caller must
// supply it, and the constraints the bridge enforces before dispatch.
type Param struct {
	Name        string
	Type        ParamType
	Description string

	// Required rejects calls that omit the parameter. A required parameter
	// must not carry a default.
	Required bool

	// Default is substituted when the caller omits the parameter. Its Go type
	// must match Type (string, int, bool, or []string).
	Default any

	// IdentityDefault substitutes the registry-wide default handle when the
	// caller omits the parameter and no literal Default is set. For
	// TypeStringList the substituted value is a one-element list. This is a
	// convenience default: when no default handle is configured the parameter
	// simply stays absent.
	IdentityDefault bool

	// Min and Max bound TypeInteger values, inclusive.
	Min *int
	Max *int

	// Enum restricts TypeString values to the listed options.
	Enum []string
}

// Descriptor is the declarative description of a tool: a unique name, a prompt
// description, and an ordered parameter list. It is immutable after
// registration.
type Descriptor struct {
	Name        string
	Description string
	Params      []Param
}

// Call is a single invocation request as produced by the orchestrator.
type Call struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// Handler executes a tool over validated, coerced arguments.
type Handler func(ctx context.Context, args Args) (*Result, error)

// IntRange returns inclusive Min/Max pointers for a Param literal.
func IntRange(min, max int) (*int, *int) {
	return &min, &max
}
