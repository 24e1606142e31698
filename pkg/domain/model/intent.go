package model

// Intent is the structured guess produced by the intent resolver. Every
// field is untrusted: the action may be unknown, enums may be invalid, and
// items may be missing. Validation happens field-by-field at reconciliation;
// nothing here is assumed well-formed.
type Intent struct {
	Action   string
	Category string
	Location string
	Items    []string
}
