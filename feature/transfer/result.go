package transfer

// Result summarizes an applied import.
type Result struct {
	ListsCreated int        `json:"listsCreated"`
	ListsUpdated int        `json:"listsUpdated"`
	ItemsCreated int        `json:"itemsCreated"`
	ItemsUpdated int        `json:"itemsUpdated"`
	ListsDeleted int        `json:"listsDeleted"`
	ItemsDeleted int        `json:"itemsDeleted"`
	Errors       []string   `json:"errors,omitempty"`
	Conflicts    []Conflict `json:"conflicts,omitempty"`
}

// Successful reports whether the import applied without errors.
func (r *Result) Successful() bool {
	return len(r.Errors) == 0
}

// Preview describes what an import would do without mutating anything.
// Applying the same document with the same options yields exactly the
// counts and conflicts reported here.
type Preview struct {
	ListsToCreate int        `json:"listsToCreate"`
	ListsToUpdate int        `json:"listsToUpdate"`
	ItemsToCreate int        `json:"itemsToCreate"`
	ItemsToUpdate int        `json:"itemsToUpdate"`
	ListsToDelete int        `json:"listsToDelete"`
	ItemsToDelete int        `json:"itemsToDelete"`
	Conflicts     []Conflict `json:"conflicts,omitempty"`
	IsValid       bool       `json:"isValid"`
	Error         string     `json:"error,omitempty"`
}

// Progress is reported to the caller while an import or export runs.
type Progress struct {
	TotalLists       int    `json:"totalLists"`
	ProcessedLists   int    `json:"processedLists"`
	TotalItems       int    `json:"totalItems"`
	ProcessedItems   int    `json:"processedItems"`
	CurrentOperation string `json:"currentOperation"`
}

// Percentage reports overall completion in the range 0..100. The final
// callback of a successful run always reports 100.
func (p Progress) Percentage() int {
	total := p.TotalLists + p.TotalItems
	if total == 0 {
		return 100
	}
	done := p.ProcessedLists + p.ProcessedItems
	return done * 100 / total
}

// ProgressFunc receives progress updates. It is invoked synchronously;
// implementations should return quickly.
type ProgressFunc func(Progress)
