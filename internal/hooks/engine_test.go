package hooks

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRule is a test implementation of the Rule interface.
type mockRule struct {
	name   string
	result *RuleResult
	err    error
}

func (m *mockRule) Name() string {
	return m.name
}

func (m *mockRule) Evaluate(input *ToolInput) (*RuleResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func TestRuleEngine_Evaluate(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
		want  *RuleResult
	}{
		{
			name:  "no rules allows",
			rules: []Rule{},
			want:  NewAllowedResult(),
		},
		{
			name: "all rules allow",
			rules: []Rule{
				&mockRule{name: "rule1", result: NewAllowedResult()},
				&mockRule{name: "rule2", result: NewAllowedResult()},
			},
			want: NewAllowedResult(),
		},
		{
			name: "first denial wins",
			rules: []Rule{
				&mockRule{name: "rule1", result: NewDeniedResult("rule1", "denied by rule1")},
				&mockRule{name: "rule2", result: NewDeniedResult("rule2", "denied by rule2")},
			},
			want: NewDeniedResult("rule1", "denied by rule1"),
		},
		{
			name: "later rule can deny",
			rules: []Rule{
				&mockRule{name: "rule1", result: NewAllowedResult()},
				&mockRule{name: "rule2", result: NewDeniedResult("rule2", "denied by rule2")},
			},
			want: NewDeniedResult("rule2", "denied by rule2"),
		},
		{
			name: "rule failure denies instead of allowing",
			rules: []Rule{
				&mockRule{name: "broken", err: fmt.Errorf("boom")},
				&mockRule{name: "rule2", result: NewAllowedResult()},
			},
			want: NewDeniedResult("broken", "rule evaluation failed: boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewRuleEngine(tt.rules...)

			got, err := engine.Evaluate(&ToolInput{ToolName: "Write"})

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRuleEngine_Evaluate_nilInput(t *testing.T) {
	engine := NewRuleEngine()

	_, err := engine.Evaluate(nil)

	assert.Error(t, err)
}
