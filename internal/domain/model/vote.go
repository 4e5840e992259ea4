package model

import "time"

type VoteValue string

const (
	VoteUp   VoteValue = "up"
	VoteDown VoteValue = "down"
)

// Vote is the ledger row enforcing one vote per (user, solution) pair.
type Vote struct {
	ID         string    `json:"id"`
	SolutionID string    `json:"solution_id"`
	UserID     string    `json:"user_id"`
	Value      VoteValue `json:"value"`
	CreatedAt  time.Time `json:"created_at"`
}
