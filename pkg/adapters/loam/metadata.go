package loam

// WorldMetadata is the frontmatter of a world document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
//
//	---
//	name: w1
//	objects: ["a - block", "b - block"]
//	plans:
//	  - ["(move a b)", "(move b a)"]
//	  - - operator: move
//	      args: [b, a]
//	---
//	Free-form notes about the world.
type WorldMetadata struct {
	Name    string   `json:"name" mapstructure:"name"`
	Objects []string `json:"objects" mapstructure:"objects"`
	// Plans holds one list of steps per plan. A step is either an action
	// string such as "(move a b)" or a StepMetadata map.
	Plans []any `json:"plans" mapstructure:"plans"`
}

// StepMetadata is the long form of a plan step.
type StepMetadata struct {
	Operator string   `json:"operator" mapstructure:"operator"`
	Args     []string `json:"args" mapstructure:"args"`
}
