package model

import "time"

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationInfo    NotificationKind = "info"
	NotificationError   NotificationKind = "error"
)

type Notification struct {
	ID        string
	Wallet    string
	Kind      NotificationKind
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (n Notification) Expired(now time.Time) bool {
	return !n.ExpiresAt.IsZero() && !now.Before(n.ExpiresAt)
}

// Event describes a completed action on a project.
type Event struct {
	Action  Action
	Project Project
	Wallet  string
	Amount  int64
	InFavor bool
}
