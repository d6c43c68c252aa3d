package model

// Category is the review-workflow phase an agent belongs to. The schema
// builds its closed category vocabulary from AllCategories.
type Category string

const (
	Plan     Category = "plan"
	Work     Category = "work"
	Review   Category = "review"
	Compound Category = "compound"
)

// AllCategories returns every valid category in workflow order
func AllCategories() []Category {
	return []Category{Plan, Work, Review, Compound}
}
