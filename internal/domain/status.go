package domain

// Status is the display state of a task.
type Status string

// Status values.
const (
	StatusDone    Status = "Done"
	StatusOverdue Status = "Overdue"
	StatusNotDone Status = "Not Done"
)

// String returns the status label.
func (s Status) String() string {
	return string(s)
}

// Filter selects tasks by completion state.
type Filter string

// Filter values.
const (
	FilterAll        Filter = "all"
	FilterCompleted  Filter = "completed"
	FilterIncomplete Filter = "incomplete"
)

// ValidFilters returns all filter values.
func ValidFilters() []Filter {
	return []Filter{FilterAll, FilterCompleted, FilterIncomplete}
}

// IsValid checks if the filter is a known value.
func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterCompleted, FilterIncomplete:
		return true
	default:
		return false
	}
}

// Match reports whether t passes the filter.
func (f Filter) Match(t *Task) bool {
	switch f {
	case FilterCompleted:
		return t.Done
	case FilterIncomplete:
		return !t.Done
	case FilterAll:
		return true
	default:
		return false
	}
}

// SortCriterion names a task ordering.
type SortCriterion string

// Sort criteria. SortByOwner is only available to the admin session.
const (
	SortByPriority SortCriterion = "priority"
	SortByDate     SortCriterion = "date"
	SortByName     SortCriterion = "name"
	SortByOwner    SortCriterion = "owner"
)

// SortCriteria returns the criteria available to a session.
func SortCriteria(admin bool) []SortCriterion {
	c := []SortCriterion{SortByPriority, SortByDate, SortByName}
	if admin {
		c = append(c, SortByOwner)
	}
	return c
}

// Less orders a before b under criterion c. Dates compare on their
// DD-MM-YYYY text, so the order is by day first.
func (c SortCriterion) Less(a, b *Task) bool {
	switch c {
	case SortByPriority:
		return a.Priority < b.Priority
	case SortByDate:
		return a.DueDate < b.DueDate
	case SortByName:
		return a.Name < b.Name
	case SortByOwner:
		return a.Owner < b.Owner
	default:
		return false
	}
}
