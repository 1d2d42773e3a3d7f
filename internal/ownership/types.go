package ownership

const (
	// MissingCodeownersMarker is printed for repositories without a CODEOWNERS file.
	MissingCodeownersMarker = "MISSING_CODEOWNERS"
	// EmptyCodeownersMarker is printed for CODEOWNERS files with zero usable entries.
	EmptyCodeownersMarker = "EMPTY_CODEOWNERS"
	// UnownedMarker labels path buckets no ownership pattern covers.
	UnownedMarker = "UNOWNED"
	// RootPatternMarker is the normalized pattern covering the whole repository.
	RootPatternMarker = "/"
)

// TableClassification distinguishes the three CODEOWNERS states.
type TableClassification string

// Classification values for an OwnershipTable.
const (
	TableMissing TableClassification = "missing"
	TableEmpty   TableClassification = "empty"
	TablePresent TableClassification = "present"
)

// OwnershipTable is the parsed CODEOWNERS content of one repository.
//
// Entries is only populated for the TablePresent classification and maps each
// normalized pattern to its ordered owner list.
type OwnershipTable struct {
	Classification TableClassification
	Entries        map[string][]string
}

// CoverageStatus summarizes how completely a repository's code paths are owned.
type CoverageStatus string

// Coverage statuses ordered worst to best.
const (
	StatusUnowned CoverageStatus = "unowned"
	StatusPartial CoverageStatus = "partial"
	StatusOwned   CoverageStatus = "owned"
)

var statusRanks = map[CoverageStatus]int{
	StatusUnowned: 0,
	StatusPartial: 1,
	StatusOwned:   2,
}

// Rank returns the sort rank of the status: unowned sorts before partial before owned.
func (status CoverageStatus) Rank() int {
	if rank, known := statusRanks[status]; known {
		return rank
	}
	return len(statusRanks)
}

// PathAssignment is one row of a repository's presentation-ready path mapping.
//
// Unowned rows render the UnownedMarker instead of an owner list.
type PathAssignment struct {
	Path    string
	Owners  []string
	Unowned bool
}

// RepositoryReport is the per-repository analysis result handed to presentation.
//
// PathsMarker carries MissingCodeownersMarker or EmptyCodeownersMarker when the
// repository has no usable CODEOWNERS; PathMapping carries the ordered path rows
// otherwise. Authors is populated only when the repository is not fully owned.
type RepositoryReport struct {
	Slug        string
	Status      CoverageStatus
	PathsMarker string
	PathMapping []PathAssignment
	Authors     []string
}
