package model

import "time"

type Contribution struct {
	ID        string
	ProjectID string
	Wallet    string
	Amount    int64
	CreatedAt time.Time
}

type Wallet struct {
	Address string
	Balance int64
}

// ContributedTo reports whether any contribution in the list targets projectID.
func ContributedTo(contributions []Contribution, projectID string) bool {
	for _, c := range contributions {
		if c.ProjectID == projectID {
			return true
		}
	}
	return false
}
