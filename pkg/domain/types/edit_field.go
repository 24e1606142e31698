package types

import "fmt"

// EditField identifies which item attribute an edit flow changes
type EditField string

const (
	EditFieldText EditField = "text"
	EditFieldDate EditField = "date"
)

// IsValid checks if the edit field is valid
func (f EditField) IsValid() bool {
	switch f {
	case EditFieldText, EditFieldDate:
		return true
	default:
		return false
	}
}

// String returns the string representation of the edit field
func (f EditField) String() string {
	return string(f)
}

// ParseEditField parses a string into an EditField
func ParseEditField(s string) (EditField, error) {
	f := EditField(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid edit field: %s", s)
	}
	return f, nil
}
