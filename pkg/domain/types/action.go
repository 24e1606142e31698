package types

import "fmt"

// FlowAction identifies a menu-driven flow entry point
type FlowAction string

const (
	FlowActionAdd    FlowAction = "add"
	FlowActionDelete FlowAction = "delete"
	FlowActionShow   FlowAction = "show"
	FlowActionMove   FlowAction = "move"
	FlowActionEdit   FlowAction = "edit"
	FlowActionPhoto  FlowAction = "photo"
)

// IsValid checks if the flow action is valid
func (a FlowAction) IsValid() bool {
	switch a {
	case FlowActionAdd, FlowActionDelete, FlowActionShow,
		FlowActionMove, FlowActionEdit, FlowActionPhoto:
		return true
	default:
		return false
	}
}

// String returns the string representation of the flow action
func (a FlowAction) String() string {
	return string(a)
}

// ParseFlowAction parses a string into a FlowAction
func ParseFlowAction(s string) (FlowAction, error) {
	a := FlowAction(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid flow action: %s", s)
	}
	return a, nil
}

// IntentAction is the action classified by the intent resolver.
// The resolver output is untrusted; anything outside the recognized set
// collapses to IntentActionUnrecognized.
type IntentAction string

const (
	IntentActionAdd          IntentAction = "add"
	IntentActionDelete       IntentAction = "delete"
	IntentActionUnrecognized IntentAction = "unrecognized"
)

// CoerceIntentAction maps an untrusted action token to a recognized intent
// action, collapsing anything unknown to IntentActionUnrecognized.
func CoerceIntentAction(s string) IntentAction {
	switch IntentAction(s) {
	case IntentActionAdd:
		return IntentActionAdd
	case IntentActionDelete:
		return IntentActionDelete
	default:
		return IntentActionUnrecognized
	}
}
