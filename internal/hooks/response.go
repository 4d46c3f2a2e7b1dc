package hooks

import (
	"encoding/json"
	"io"
)

// Decision values of the pre-action protocol.
const (
	DecisionAllow = "allow"
	DecisionDeny  = "deny"
)

// preActionEvent is the event name the host runtime expects on every
// decision object.
const preActionEvent = "pre-action"

// PreActionResponse is the decision object returned to the host runtime.
// The reason field is present only on deny.
type PreActionResponse struct {
	Event    string `json:"event"`
	Decision string `json:"decision"`
	Reason   string `json:"reason,omitempty"`
}

// NewPreActionResponse serializes a rule result into the pre-action
// decision object.
func NewPreActionResponse(result *RuleResult) PreActionResponse {
	if result.Allowed {
		return PreActionResponse{
			Event:    preActionEvent,
			Decision: DecisionAllow,
		}
	}
	return PreActionResponse{
		Event:    preActionEvent,
		Decision: DecisionDeny,
		Reason:   result.Reason,
	}
}

// Write encodes the response as a single JSON object.
func (r PreActionResponse) Write(w io.Writer) error {
	return json.NewEncoder(w).Encode(r)
}
