package domain

// Line type discriminators.
const (
	TypeCondition = "condition"
	TypeDialogue  = "dialogue"
	TypeMutation  = "mutation"
	TypeResponse  = "response"
	TypeGoto      = "goto"
)

// Resource is a compiled dialogue document: a map of human-readable titles
// to entry keys, and the keyed line graph itself. The runtime treats a
// Resource as read-only; it is owned by the caller for the duration of a
// traversal.
type Resource struct {
	Titles map[string]string `json:"titles" yaml:"titles" mapstructure:"titles"`
	Lines  map[string]Line   `json:"lines" yaml:"lines" mapstructure:"lines"`
}

// Line is a single node in the dialogue graph, discriminated by Type.
// Only the fields relevant to the given type are populated; the rest stay
// at their zero values.
type Line struct {
	Type   string `json:"type" yaml:"type" mapstructure:"type"`
	NextID string `json:"next_id" yaml:"next_id" mapstructure:"next_id"`

	// Condition lines branch on Condition: NextID on pass,
	// NextConditionalID on fail. A nil Condition always passes ("else").
	Condition         *Clause `json:"condition,omitempty" yaml:"condition,omitempty" mapstructure:"condition"`
	NextConditionalID string  `json:"next_conditional_id,omitempty" yaml:"next_conditional_id,omitempty" mapstructure:"next_conditional_id"`

	// Dialogue lines carry the speaking character and the literal text,
	// plus the ordered substitutions to apply to it.
	Character    string        `json:"character,omitempty" yaml:"character,omitempty" mapstructure:"character"`
	Text         string        `json:"text,omitempty" yaml:"text,omitempty" mapstructure:"text"`
	Replacements []Replacement `json:"replacements,omitempty" yaml:"replacements,omitempty" mapstructure:"replacements"`

	// Mutation lines execute Mutation as a side effect and are never
	// surfaced to the host.
	Mutation *Clause `json:"mutation,omitempty" yaml:"mutation,omitempty" mapstructure:"mutation"`

	// Response lines list the keys of their options. Each option is itself
	// a line whose Text/NextID serve as prompt/target.
	Responses []string `json:"responses,omitempty" yaml:"responses,omitempty" mapstructure:"responses"`
}

// Condition operators. "=" and "==" are equivalent, as are "<>" and "!=".
const (
	OpEqual        = "=="
	OpGreater      = ">"
	OpGreaterEqual = ">="
	OpLess         = "<"
	OpLessEqual    = "<="
	OpNotEqual     = "!="
	OpIn           = "in"
)

// Mutation operators.
const (
	OpAssign         = "="
	OpAddAssign      = "+="
	OpSubtractAssign = "-="
	OpMultiplyAssign = "*="
	OpDivideAssign   = "/="
)

// SideKind discriminates the three shapes a clause side can take.
type SideKind string

const (
	// SideFunction is a named call with tokenized arguments.
	SideFunction SideKind = "function"
	// SideScalar is a literal or tokenized expression.
	SideScalar SideKind = "scalar"
	// SideError marks a side the compiler failed to export. Evaluating it
	// is always fatal.
	SideError SideKind = "error"
)

// ClauseSide is one half of a condition or mutation.
type ClauseSide struct {
	Kind SideKind `json:"kind" yaml:"kind" mapstructure:"kind"`

	// Function call: name plus one token list per argument.
	Name string      `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Args []TokenList `json:"args,omitempty" yaml:"args,omitempty" mapstructure:"args"`

	// Scalar expression awaiting reduction.
	Tokens TokenList `json:"tokens,omitempty" yaml:"tokens,omitempty" mapstructure:"tokens"`
}

// Clause is a two-sided expression used to gate a branch (condition) or
// change state (mutation). Operator may be empty: a condition without an
// operator tests the truthiness of LHS, a mutation without one is a no-op
// unless LHS is a function call.
type Clause struct {
	LHS      *ClauseSide `json:"lhs" yaml:"lhs" mapstructure:"lhs"`
	Operator string      `json:"operator,omitempty" yaml:"operator,omitempty" mapstructure:"operator"`
	RHS      *ClauseSide `json:"rhs,omitempty" yaml:"rhs,omitempty" mapstructure:"rhs"`
}

// TokenKind discriminates expression tokens.
type TokenKind string

const (
	TokenOperator TokenKind = "operator"
	TokenValue    TokenKind = "value"
	TokenGroup    TokenKind = "group"
)

// Token is an atomic element of a tokenized expression. Operator and value
// tokens carry their raw text; group tokens carry a nested token list
// (a parenthesized sub-expression).
type Token struct {
	Kind  TokenKind `json:"kind" yaml:"kind" mapstructure:"kind"`
	Text  string    `json:"text,omitempty" yaml:"text,omitempty" mapstructure:"text"`
	Group TokenList `json:"group,omitempty" yaml:"group,omitempty" mapstructure:"group"`
}

// TokenList is a flat token sequence awaiting reduction.
type TokenList []Token

// Replacement substitutes the first occurrence of ValueInText in a dialogue
// line with the computed value of Value.
type Replacement struct {
	ValueInText string     `json:"value_in_text" yaml:"value_in_text" mapstructure:"value_in_text"`
	Value       ClauseSide `json:"value" yaml:"value" mapstructure:"value"`
}
