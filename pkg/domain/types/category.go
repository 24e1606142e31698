package types

import "fmt"

// Category is the top-level classification of a stored item
type Category string

const (
	CategoryMeal       Category = "meal"
	CategoryIngredient Category = "ingredient"
)

// DefaultCategory is used when an untrusted source supplies an invalid category
const DefaultCategory = CategoryIngredient

// AllCategories returns all valid categories
func AllCategories() []Category {
	return []Category{
		CategoryMeal,
		CategoryIngredient,
	}
}

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryMeal, CategoryIngredient:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// CoerceCategory maps an untrusted value to a valid category.
// Anything outside the valid set becomes DefaultCategory.
func CoerceCategory(s string) Category {
	c := Category(s)
	if !c.IsValid() {
		return DefaultCategory
	}
	return c
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
