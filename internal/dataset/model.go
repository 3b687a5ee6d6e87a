package dataset

// Category is the Cypher command-type label assigned to an example for
// balancing purposes.
type Category string

// Command type constants. CategoryEmpty marks examples whose query text is
// blank after comment stripping; they are excluded from balancing.
const (
	CategoryMatch   Category = "MATCH"
	CategoryCreate  Category = "CREATE"
	CategoryMerge   Category = "MERGE"
	CategoryCall    Category = "CALL"
	CategoryDelete  Category = "DELETE"
	CategorySet     Category = "SET"
	CategoryRemove  Category = "REMOVE"
	CategoryReturn  Category = "RETURN"
	CategoryWith    Category = "WITH"
	CategoryUnwind  Category = "UNWIND"
	CategoryUnion   Category = "UNION"
	CategoryForeach Category = "FOREACH"
	CategoryOther   Category = "OTHER"
	CategoryEmpty   Category = "EMPTY"
)

// AllCategories returns the full command-type scope.
func AllCategories() []Category {
	return []Category{
		CategoryMatch,
		CategoryCreate,
		CategoryMerge,
		CategoryCall,
		CategoryDelete,
		CategorySet,
		CategoryRemove,
		CategoryReturn,
		CategoryWith,
		CategoryUnwind,
		CategoryUnion,
		CategoryForeach,
		CategoryOther,
		CategoryEmpty,
	}
}

// Example is one training record: a ChatML-formatted text holding the
// question, schema, and Cypher query, plus the command type derived from
// the query. Examples are immutable once classified.
type Example struct {
	Text     string   `json:"text"`
	Category Category `json:"-"`
}

// NewExample classifies the embedded query and returns the example.
func NewExample(text string) Example {
	return Example{
		Text:     text,
		Category: Classify(ExtractQuery(text)),
	}
}

// Distribution is a category count breakdown of a dataset.
type Distribution struct {
	Total  int              `json:"total"`
	Counts map[Category]int `json:"counts"`
}

// Distribute counts examples per category.
func Distribute(examples []Example) Distribution {
	counts := make(map[Category]int)
	for _, example := range examples {
		counts[example.Category]++
	}
	return Distribution{Total: len(examples), Counts: counts}
}

// Share returns the category's fraction of the distribution total.
func (d Distribution) Share(category Category) float64 {
	if d.Total == 0 {
		return 0
	}
	return float64(d.Counts[category]) / float64(d.Total)
}

// RebalanceReport captures before/after distributions for one rebalancing
// invocation, so callers can log or assert on constraint satisfaction.
type RebalanceReport struct {
	Before    Distribution `json:"before"`
	After     Distribution `json:"after"`
	Augmented int          `json:"augmented"`
	Warnings  []string     `json:"warnings,omitempty"`
}

// BuildReport summarizes one dataset build.
type BuildReport struct {
	DatasetVersion    string           `json:"dataset_version"`
	Dialect           string           `json:"dialect"`
	SourcesConsidered int              `json:"sources_considered"`
	FilesScanned      int              `json:"files_scanned"`
	ExamplesLoaded    int              `json:"examples_loaded"`
	ExamplesKept      int              `json:"examples_kept"`
	MissingFields     int              `json:"missing_fields"`
	InvalidCypher     int              `json:"invalid_cypher"`
	InvalidLines      int              `json:"invalid_lines"`
	Duplicates        int              `json:"duplicates"`
	CategoryCounts    map[Category]int `json:"category_counts"`
	Rebalance         *RebalanceReport `json:"rebalance,omitempty"`
}

// BuildOutput is the full output of the build pipeline.
type BuildOutput struct {
	Examples []Example
	Report   BuildReport
}

// DriftCategoryDelta describes count and share shifts for one category
// between two dataset versions.
type DriftCategoryDelta struct {
	BaselineCount  int     `json:"baseline_count"`
	CandidateCount int     `json:"candidate_count"`
	DeltaCount     int     `json:"delta_count"`
	BaselineShare  float64 `json:"baseline_share"`
	CandidateShare float64 `json:"candidate_share"`
	DeltaShare     float64 `json:"delta_share"`
}

// DriftReport summarizes dataset drift between two build reports.
type DriftReport struct {
	BaselineVersion  string                          `json:"baseline_version"`
	CandidateVersion string                          `json:"candidate_version"`
	BaselineTotal    int                             `json:"baseline_total"`
	CandidateTotal   int                             `json:"candidate_total"`
	DeltaTotal       int                             `json:"delta_total"`
	ByCategory       map[Category]DriftCategoryDelta `json:"by_category"`
}
