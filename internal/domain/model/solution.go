package model

import (
	"math"
	"time"
)

type SolutionDifficulty string

const (
	DifficultyBeginner     SolutionDifficulty = "Beginner"
	DifficultyIntermediate SolutionDifficulty = "Intermediate"
	DifficultyAdvanced     SolutionDifficulty = "Advanced"
)

func (d SolutionDifficulty) Valid() bool {
	return d == DifficultyBeginner || d == DifficultyIntermediate || d == DifficultyAdvanced
}

type Solution struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Steps          string             `json:"steps"`
	Difficulty     SolutionDifficulty `json:"difficulty"`
	EstimatedTime  string             `json:"estimated_time"`
	Upvotes        int                `json:"upvotes"`
	Downvotes      int                `json:"downvotes"`
	IsVerified     bool               `json:"is_verified"`
	ProblemID      string             `json:"problem_id"`
	UserID         string             `json:"user_id"`
	CreatedAt      time.Time          `json:"created_at"`
	HelpfulScore   float64            `json:"helpful_score"`
	AuthorUsername *string            `json:"author_username,omitempty"` // For display
	ProblemTitle   *string            `json:"problem_title,omitempty"`   // For display
}

// ComputeHelpfulScore returns the percentage of upvotes among all votes,
// rounded to one decimal. Zero when no votes have been cast yet.
func ComputeHelpfulScore(upvotes, downvotes int) float64 {
	total := upvotes + downvotes
	if total <= 0 {
		return 0
	}
	return math.Round(float64(upvotes)/float64(total)*1000) / 10
}

// FillHelpfulScore derives the score from the stored counters.
func (s *Solution) FillHelpfulScore() {
	s.HelpfulScore = ComputeHelpfulScore(s.Upvotes, s.Downvotes)
}
