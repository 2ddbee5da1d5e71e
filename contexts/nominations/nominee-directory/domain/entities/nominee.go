package entities

import "time"

// Nominee is a directory profile. Votes is a read-only projection of the
// ledger tally; only the ledger ever changes it.
type Nominee struct {
	NomineeID       string
	Name            string
	Email           string
	CollegeName     string
	Description     string
	Reason          string
	Location        string
	PhotoURL        string
	LinkedinProfile string
	Featured        bool
	Votes           int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
