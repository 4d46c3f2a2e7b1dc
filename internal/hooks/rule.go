package hooks

// Rule represents a rule that evaluates whether a tool usage should be
// allowed.
type Rule interface {
	// Name returns the unique identifier for this rule.
	Name() string

	// Evaluate checks if the tool input should be allowed.
	Evaluate(input *ToolInput) (*RuleResult, error)
}
