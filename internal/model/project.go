package model

type Status string

const (
	StatusProposed   Status = "proposed"
	StatusVoting     Status = "voting"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

var statusLabels = map[Status]string{
	StatusProposed:   "Propuesta",
	StatusVoting:     "En Votación",
	StatusInProgress: "En Progreso",
	StatusCompleted:  "Completado",
}

func ParseStatus(value string) (Status, bool) {
	s := Status(value)
	_, ok := statusLabels[s]
	return s, ok
}

func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Open reports whether the project still accepts votes.
func (s Status) Open() bool {
	return s == StatusProposed || s == StatusVoting
}

type Project struct {
	ID           string
	Name         string
	Category     string
	Status       Status
	Budget       int64
	Raised       int64
	Contributors int
	// DaysLeft only means something while HasDeadline is set; zero then reads
	// as "ends today". Without a deadline the funding window is closed or was
	// never opened.
	DaysLeft     int
	HasDeadline  bool
	VotesFor     int
	VotesAgainst int
	Description  string
	// Proposer is the wallet that submitted the project, empty for the
	// seeded catalog.
	Proposer string
}

func (p Project) Votes() int {
	return p.VotesFor + p.VotesAgainst
}

// Progress is the funded percentage derived from Raised and Budget, clamped
// to [0, 100].
func (p Project) Progress() int {
	if p.Budget <= 0 || p.Raised <= 0 {
		return 0
	}
	pct := p.Raised * 100 / p.Budget
	if pct > 100 {
		return 100
	}
	return int(pct)
}

// ProjectCreate describes a proposal. Slug is the preferred ID; the store
// appends -2, -3, ... when it is taken.
type ProjectCreate struct {
	Slug        string
	Name        string
	Category    string
	Description string
	Budget      int64
	Proposer    string
}
