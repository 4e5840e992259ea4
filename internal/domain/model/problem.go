package model

import (
	"strings"
	"time"
)

type ProblemUrgency string

type ProblemSortMode string

const (
	UrgencyLow    ProblemUrgency = "low"
	UrgencyMedium ProblemUrgency = "medium"
	UrgencyHigh   ProblemUrgency = "high"

	SortNewest    ProblemSortMode = "newest"
	SortViews     ProblemSortMode = "views"
	SortSolutions ProblemSortMode = "solutions"
	SortUnsolved  ProblemSortMode = "unsolved"
)

func (u ProblemUrgency) Valid() bool {
	return u == UrgencyLow || u == UrgencyMedium || u == UrgencyHigh
}

type Problem struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Slug            string         `json:"slug"`
	Description     string         `json:"description"`
	Category        string         `json:"category"`
	DeviceType      string         `json:"device_type"`
	OperatingSystem string         `json:"operating_system"`
	Urgency         ProblemUrgency `json:"urgency"`
	IsSolved        bool           `json:"is_solved"`
	Views           int            `json:"views"`
	SolutionCount   int            `json:"solution_count"`
	UserID          string         `json:"user_id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	AuthorUsername  *string        `json:"author_username,omitempty"` // For display
	Solutions       []Solution     `json:"solutions,omitempty"`
}

// ProblemFilter carries the independent, optional browse criteria. Zero
// values mean "no filter"; criteria are AND-combined by the store.
type ProblemFilter struct {
	Search   string
	Category string
	Sort     ProblemSortMode
}

// Normalized trims the text criteria and falls back to SortNewest for any
// unknown sort mode.
func (f ProblemFilter) Normalized() ProblemFilter {
	f.Search = strings.TrimSpace(f.Search)
	f.Category = strings.TrimSpace(f.Category)
	switch f.Sort {
	case SortViews, SortSolutions, SortUnsolved:
	default:
		f.Sort = SortNewest
	}
	return f
}
