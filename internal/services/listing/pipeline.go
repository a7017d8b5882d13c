package listing

import (
	"cmp"
	"slices"
	"strings"

	"civicfund-go/internal/model"
)

type Filter string

const (
	FilterAll             Filter = "all"
	FilterVoting          Filter = "voting"
	FilterInProgress      Filter = "in-progress"
	FilterCompleted       Filter = "completed"
	FilterMyContributions Filter = "my-contributions"

	// filterNone is what unrecognised filter tags parse to; it matches nothing.
	filterNone Filter = ""
)

// ParseFilter maps a filter tag to a Filter. An empty tag means all; an
// unknown tag yields a filter with no matches.
func ParseFilter(value string) Filter {
	switch f := Filter(strings.TrimSpace(value)); f {
	case "":
		return FilterAll
	case FilterAll, FilterVoting, FilterInProgress, FilterCompleted, FilterMyContributions:
		return f
	default:
		return filterNone
	}
}

type Sort string

const (
	SortRecent  Sort = "recent"
	SortPopular Sort = "popular"
	SortFunded  Sort = "funded"
	SortEnding  Sort = "ending"
)

// ParseSort falls back to SortRecent for anything it does not know.
func ParseSort(value string) Sort {
	switch s := Sort(strings.TrimSpace(value)); s {
	case SortPopular, SortFunded, SortEnding:
		return s
	default:
		return SortRecent
	}
}

type Query struct {
	Filter Filter
	Text   string
	Sort   Sort
}

// Apply filters, searches and sorts records. Contributions are only consulted
// by FilterMyContributions. The input slice is not modified.
func Apply(records []model.Project, q Query, contributions []model.Contribution) []model.Project {
	needle := Fold(strings.TrimSpace(q.Text))

	out := make([]model.Project, 0, len(records))
	for _, p := range records {
		if !matchesFilter(p, q.Filter, contributions) {
			continue
		}
		if needle != "" && !matchesText(p, needle) {
			continue
		}
		out = append(out, p)
	}

	sortProjects(out, q.Sort)
	return out
}

func matchesFilter(p model.Project, f Filter, contributions []model.Contribution) bool {
	switch f {
	case FilterAll:
		return true
	case FilterVoting:
		return p.Status == model.StatusVoting || p.Status == model.StatusProposed
	case FilterInProgress:
		return p.Status == model.StatusInProgress
	case FilterCompleted:
		return p.Status == model.StatusCompleted
	case FilterMyContributions:
		return model.ContributedTo(contributions, p.ID)
	default:
		return false
	}
}

func matchesText(p model.Project, needle string) bool {
	return strings.Contains(Fold(p.Name), needle) ||
		strings.Contains(Fold(p.Description), needle) ||
		strings.Contains(Fold(p.Category), needle)
}

func sortProjects(projects []model.Project, s Sort) {
	var byKey func(a, b model.Project) int
	switch s {
	case SortPopular:
		byKey = func(a, b model.Project) int { return cmp.Compare(b.Contributors, a.Contributors) }
	case SortFunded:
		byKey = func(a, b model.Project) int { return cmp.Compare(b.Progress(), a.Progress()) }
	case SortEnding:
		byKey = compareEnding
	default:
		return
	}

	slices.SortStableFunc(projects, func(a, b model.Project) int {
		if c := byKey(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// compareEnding puts projects with an open deadline first, soonest first.
// Projects without one trail behind and are ordered only by the ID tie-break.
func compareEnding(a, b model.Project) int {
	switch {
	case a.HasDeadline && !b.HasDeadline:
		return -1
	case !a.HasDeadline && b.HasDeadline:
		return 1
	case a.HasDeadline:
		return cmp.Compare(a.DaysLeft, b.DaysLeft)
	default:
		return 0
	}
}
