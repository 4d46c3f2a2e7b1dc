package hooks

// RuleResult represents the result of evaluating a rule.
type RuleResult struct {
	// Allowed indicates whether the tool usage should be allowed.
	Allowed bool

	// Reason explains a denial. It must never contain file contents or
	// filesystem structure unrelated to the matched rule; only the
	// pattern or the escape reason.
	Reason string

	// RuleName identifies which rule produced this result.
	RuleName string
}

// NewAllowedResult creates a result that allows the tool usage.
func NewAllowedResult() *RuleResult {
	return &RuleResult{Allowed: true}
}

// NewDeniedResult creates a result that denies the tool usage.
func NewDeniedResult(ruleName, reason string) *RuleResult {
	return &RuleResult{
		Allowed:  false,
		Reason:   reason,
		RuleName: ruleName,
	}
}
