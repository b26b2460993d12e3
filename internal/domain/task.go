// Package domain provides the shared task types used across taskbook.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/date, standard library
//   - MUST NOT import: any other internal packages
//
// All JSON field names use snake_case.
package domain

import (
	"github.com/mrz1836/taskbook/internal/constants"
	"github.com/mrz1836/taskbook/internal/date"
)

// Task is a single to-do item owned by one user.
//
// Example JSON representation:
//
//	{
//	    "id": 1,
//	    "name": "Buy milk",
//	    "priority": 2,
//	    "due_date": "31-12-2099",
//	    "done": false,
//	    "category": "Shopping",
//	    "owner": "alice"
//	}
type Task struct {
	// ID is unique within the owner's task file and never reused in a session.
	ID int `json:"id"`

	// Name is the non-empty task title.
	Name string `json:"name"`

	// Priority ranges from 1 (most urgent) to 5.
	Priority int `json:"priority"`

	// DueDate is the canonical DD-MM-YYYY text of the due day.
	DueDate string `json:"due_date"`

	// Done is true once the task has been completed.
	Done bool `json:"done"`

	// Category groups tasks; defaults to "General".
	Category string `json:"category"`

	// Owner is the identity of the user who created the task.
	Owner string `json:"owner"`
}

// Due returns the parsed due date.
func (t *Task) Due() date.Date {
	return date.Parse(t.DueDate)
}

// IsOverdue reports whether the task is incomplete and due before today.
func (t *Task) IsOverdue(today date.Date) bool {
	if t.Done {
		return false
	}
	d := t.Due()
	return d.IsValid() && d.IsOverdue(today)
}

// Status returns the display status of the task relative to today.
func (t *Task) Status(today date.Date) Status {
	switch {
	case t.Done:
		return StatusDone
	case t.IsOverdue(today):
		return StatusOverdue
	default:
		return StatusNotDone
	}
}

// Clone returns a copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}

// ValidPriority reports whether p is within the allowed priority range.
func ValidPriority(p int) bool {
	return p >= constants.MinPriority && p <= constants.MaxPriority
}
