package transfer

import "fmt"

// MergeStrategy selects how an imported document reconciles with local data.
type MergeStrategy string

const (
	// StrategyMerge updates matching entities and creates the rest; local
	// entities absent from the document are left untouched.
	StrategyMerge MergeStrategy = "merge"
	// StrategyReplace makes local state exactly the document's state,
	// deleting local entities the document does not contain.
	StrategyReplace MergeStrategy = "replace"
	// StrategyAppend inserts everything as brand-new entities with fresh
	// ids; no lookups, no conflicts, pure growth.
	StrategyAppend MergeStrategy = "append"
)

// ParseStrategy converts a user-supplied string into a MergeStrategy.
func ParseStrategy(s string) (MergeStrategy, error) {
	switch MergeStrategy(s) {
	case StrategyMerge, StrategyReplace, StrategyAppend:
		return MergeStrategy(s), nil
	case "":
		return StrategyMerge, nil
	default:
		return "", fmt.Errorf("unknown merge strategy: %q", s)
	}
}

// Options controls import and export behavior.
//
// The content filters (crossed-out, descriptions, quantities, dates,
// archived, images) shape what an export writes; on import they matter only
// through what the document actually contains, except IncludeImages, which
// gates whether embedded payloads are materialized.
type Options struct {
	Strategy            MergeStrategy
	ValidateData        bool
	IncludeImages       bool
	IncludeCrossedOut   bool
	IncludeDescriptions bool
	IncludeQuantities   bool
	IncludeDates        bool
	IncludeArchived     bool
}

// DefaultOptions returns the default import/export options: merge strategy,
// validation on, all content included.
func DefaultOptions() Options {
	return Options{
		Strategy:            StrategyMerge,
		ValidateData:        true,
		IncludeImages:       true,
		IncludeCrossedOut:   true,
		IncludeDescriptions: true,
		IncludeQuantities:   true,
		IncludeDates:        true,
		IncludeArchived:     true,
	}
}
