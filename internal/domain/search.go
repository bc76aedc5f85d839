package domain

// RequestState is the lifecycle of a single search.
type RequestState int

const (
	StateIdle RequestState = iota
	StateLoading
	StateSuccess
	// StatePartial means the profile loaded but at least one dependent fetch failed.
	StatePartial
	StateError
)

func (s RequestState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StatePartial:
		return "partial"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Part names one of the dependent fetches issued after the profile lookup.
type Part string

const (
	PartRepositories Part = "repositories"
	PartEvents       Part = "events"
	PartReadme       Part = "readme"
	PartIssues       Part = "issues"
)

// Snapshot is the raw result of one lookup.
// Failures lists the dependent fetches that failed; their data is left empty.
type Snapshot struct {
	Profile      *Profile        `json:"profile"`
	Repositories []Repository    `json:"-"`
	Events       []ActivityEvent `json:"events,omitempty"`
	Issues       []Issue         `json:"issues,omitempty"`
	Readme       string          `json:"readme,omitempty"`
	Failures     map[Part]error  `json:"-"`
}

// Partial reports whether any dependent fetch failed.
func (s *Snapshot) Partial() bool {
	return len(s.Failures) > 0
}
