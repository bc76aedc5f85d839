package domain

// FilterAll disables the language filter.
const FilterAll = "all"

// SortKey selects the ordering of the repository view.
type SortKey string

const (
	SortUpdated SortKey = "updated"
	SortStars   SortKey = "stars"
	SortForks   SortKey = "forks"
)

// SortKeys lists the supported sort keys in the order the view cycles them.
var SortKeys = []SortKey{SortUpdated, SortStars, SortForks}

// Selection is the transient filter/sort state of the repository view.
type Selection struct {
	Language string  `json:"language"`
	Sort     SortKey `json:"sort"`
}

// DefaultSelection shows every repository, most recently updated first.
func DefaultSelection() Selection {
	return Selection{Language: FilterAll, Sort: SortUpdated}
}

// LanguageCount is the number of repositories declaring a language.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// LanguageShare is a ranked language with its share of all repositories.
type LanguageShare struct {
	Language string  `json:"language"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

// RepoStats holds everything derived from a repository list and a selection.
// It is recomputed on demand and never persisted.
type RepoStats struct {
	Languages        []LanguageCount `json:"languages"`
	TopLanguages     []LanguageShare `json:"top_languages"`
	TotalStars       int             `json:"total_stars"`
	DominantLanguage string          `json:"dominant_language"`
	View             []Repository    `json:"repositories"`
}
