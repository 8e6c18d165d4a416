package types

import (
	"fmt"
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// Category is one of the four causal groups that risk sources and risk events belong to
type Category string

const (
	CategoryTechnical  Category = "technical"
	CategoryCost       Category = "cost"
	CategorySchedule   Category = "schedule"
	CategoryManagement Category = "management"
)

// AllCategories returns all categories in worksheet order
func AllCategories() []Category {
	return []Category{
		CategoryTechnical,
		CategoryCost,
		CategorySchedule,
		CategoryManagement,
	}
}

// IsValid checks if the category is one of the known categories
func (c Category) IsValid() bool {
	switch c {
	case CategoryTechnical,
		CategoryCost,
		CategorySchedule,
		CategoryManagement:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9]+([-_.][a-zA-Z0-9]+)*$`)

func validateID(kind string, id string) error {
	if id == "" {
		return goerr.New(kind+" ID cannot be empty")
	}
	if !idPattern.MatchString(id) {
		return goerr.New(kind+" ID must be alphanumeric with '-', '_' or '.' separators", goerr.V("id", id))
	}
	return nil
}
