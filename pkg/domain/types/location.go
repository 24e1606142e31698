package types

import "fmt"

// Location is the physical storage area of an item
type Location string

const (
	LocationFridge  Location = "fridge"
	LocationKitchen Location = "kitchen"
	LocationFreezer Location = "freezer"
)

// DefaultLocation is used when an untrusted source supplies an invalid location
const DefaultLocation = LocationFridge

// AllLocations returns all valid locations in display order
func AllLocations() []Location {
	return []Location{
		LocationFridge,
		LocationKitchen,
		LocationFreezer,
	}
}

// IsValid checks if the location is valid
func (l Location) IsValid() bool {
	switch l {
	case LocationFridge, LocationKitchen, LocationFreezer:
		return true
	default:
		return false
	}
}

// String returns the string representation of the location
func (l Location) String() string {
	return string(l)
}

// CoerceLocation maps an untrusted value to a valid location.
// Anything outside the valid set becomes DefaultLocation.
func CoerceLocation(s string) Location {
	l := Location(s)
	if !l.IsValid() {
		return DefaultLocation
	}
	return l
}

// ParseLocation parses a string into a Location
func ParseLocation(s string) (Location, error) {
	l := Location(s)
	if !l.IsValid() {
		return "", fmt.Errorf("invalid location: %s", s)
	}
	return l, nil
}
