package storage

import "time"

// Recipe represents a recipe row together with its ordered child rows.
type Recipe struct {
	ID              int64
	Title           string
	CategoryID      int64
	Category        string // display name resolved from the category cache, not persisted
	PreparationTime int    // minutes
	Servings        int
	Description     string
	DateIn          time.Time
	Ingredients     []Ingredient
	Instructions    []Instruction
}

// Ingredient is one ingredient line of a recipe.
// Count is the author-specified sequence number within the recipe.
type Ingredient struct {
	Quantity    float64
	Measurement string
	Name        string
	Comment     string
	Count       int
}

// Instruction is one preparation step of a recipe, ordered by Count.
type Instruction struct {
	Text  string
	Count int
}

// Category maps a server-assigned numeric id to a display name.
type Category struct {
	ID   int64
	Name string
}
