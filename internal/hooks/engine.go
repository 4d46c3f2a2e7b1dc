package hooks

import "fmt"

// ruleEngine implements the rule evaluation engine.
type ruleEngine struct {
	rules []Rule
}

// NewRuleEngine creates a new rule engine with the given rules.
func NewRuleEngine(rules ...Rule) *ruleEngine {
	return &ruleEngine{
		rules: rules,
	}
}

// Evaluate evaluates all rules against the tool input and returns the
// first denying result, or an allowed result when no rule denies.
//
// A rule that fails to evaluate denies the tool call: the gate fails
// closed rather than allowing access it could not verify.
func (e *ruleEngine) Evaluate(input *ToolInput) (*RuleResult, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	for _, rule := range e.rules {
		result, err := rule.Evaluate(input)
		if err != nil {
			return NewDeniedResult(rule.Name(), fmt.Sprintf("rule evaluation failed: %v", err)), nil
		}

		if !result.Allowed {
			return result, nil
		}
	}

	return NewAllowedResult(), nil
}
