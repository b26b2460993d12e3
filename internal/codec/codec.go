// Package codec reads and writes the task file format: a bracketed list of
// brace-delimited key:value groups, one task per line.
//
//	[
//	  {"id":1,"name":"Buy milk","priority":2,"dueDate":"31-12-2099","done":false,"category":"Shopping","owner":"alice"},
//	  {"id":2,"name":"Call mom","priority":1,"dueDate":"01-01-2030","done":true,"category":"General","owner":"alice"}
//	]
//
// The format has no escaping. Text fields containing '"', '{' or '}' do not
// survive a round trip.
package codec

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/mrz1836/taskbook/internal/constants"
	"github.com/mrz1836/taskbook/internal/date"
	"github.com/mrz1836/taskbook/internal/domain"
	tberrors "github.com/mrz1836/taskbook/internal/errors"
)

// Field keys as they appear in the file.
const (
	keyID       = "id"
	keyName     = "name"
	keyPriority = "priority"
	keyDueDate  = "dueDate"
	keyDone     = "done"
	keyCategory = "category"
	keyOwner    = "owner"
)

// Warning describes a stored group that was skipped during Decode.
type Warning struct {
	// Index is the zero-based position of the group in the input.
	Index int
	// Record is the raw group text, braces included.
	Record string
	// Err wraps errors.ErrMalformedRecord with the reason.
	Err error
}

// Error implements the error interface.
func (w Warning) Error() string {
	return fmt.Sprintf("record %d: %v", w.Index, w.Err)
}

// Unwrap returns the underlying error.
func (w Warning) Unwrap() error {
	return w.Err
}

// Encode serializes tasks in file order.
func Encode(tasks []*domain.Task) []byte {
	var buf bytes.Buffer
	buf.WriteString("[\n")
	for i, t := range tasks {
		buf.WriteString("  {")
		fmt.Fprintf(&buf, "%q:%d,", keyID, t.ID)
		fmt.Fprintf(&buf, "%q:\"%s\",", keyName, t.Name)
		fmt.Fprintf(&buf, "%q:%d,", keyPriority, t.Priority)
		fmt.Fprintf(&buf, "%q:\"%s\",", keyDueDate, t.DueDate)
		fmt.Fprintf(&buf, "%q:%t,", keyDone, t.Done)
		fmt.Fprintf(&buf, "%q:\"%s\",", keyCategory, t.Category)
		fmt.Fprintf(&buf, "%q:\"%s\"", keyOwner, t.Owner)
		buf.WriteString("}")
		if i < len(tasks)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("]\n")
	return buf.Bytes()
}

// Decode extracts every well-formed task group from data. Groups that fail
// validation are reported as warnings and skipped; decoding never aborts.
// defaultOwner is used for groups without an owner field.
func Decode(data []byte, defaultOwner string) ([]*domain.Task, []Warning) {
	groups := splitGroups(string(data))

	tasks := make([]*domain.Task, 0, len(groups))
	var warnings []Warning
	for i, g := range groups {
		t, err := decodeGroup(g, defaultOwner)
		if err != nil {
			warnings = append(warnings, Warning{Index: i, Record: g, Err: err})
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, warnings
}

// splitGroups returns each span from a '{' to the next '}'. Anything outside
// those spans is ignored, as is a trailing '{' with no closing brace.
func splitGroups(s string) []string {
	var groups []string
	pos := 0
	for pos < len(s) {
		start := strings.IndexByte(s[pos:], '{')
		if start < 0 {
			break
		}
		start += pos
		end := strings.IndexByte(s[start:], '}')
		if end < 0 {
			break
		}
		end += start
		groups = append(groups, s[start:end+1])
		pos = end + 1
	}
	return groups
}

func decodeGroup(g, defaultOwner string) (*domain.Task, error) {
	id, err := strconv.Atoi(extract(g, keyID))
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: id %q is not a positive integer", tberrors.ErrMalformedRecord, extract(g, keyID))
	}

	name := extract(g, keyName)
	if name == "" {
		return nil, fmt.Errorf("%w: task %d has no name", tberrors.ErrMalformedRecord, id)
	}

	due := extract(g, keyDueDate)
	if !date.Parse(due).IsValid() {
		return nil, fmt.Errorf("%w: task %d has invalid due date %q", tberrors.ErrMalformedRecord, id, due)
	}

	priority, err := strconv.Atoi(extract(g, keyPriority))
	if err != nil || !domain.ValidPriority(priority) {
		return nil, fmt.Errorf("%w: task %d has invalid priority %q", tberrors.ErrMalformedRecord, id, extract(g, keyPriority))
	}

	category := extract(g, keyCategory)
	if category == "" {
		category = constants.DefaultCategory
	}
	owner := extract(g, keyOwner)
	if owner == "" {
		owner = defaultOwner
	}

	return &domain.Task{
		ID:       id,
		Name:     name,
		Priority: priority,
		DueDate:  due,
		Done:     extract(g, keyDone) == "true",
		Category: category,
		Owner:    owner,
	}, nil
}

// extract finds "key": in g and returns its value. A quoted value runs to the
// next quote; a bare value runs to the next comma or closing brace and is
// trimmed. Missing keys and unterminated quotes yield "".
func extract(g, key string) string {
	marker := `"` + key + `":`
	pos := strings.Index(g, marker)
	if pos < 0 {
		return ""
	}
	pos += len(marker)
	if pos >= len(g) {
		return ""
	}

	if g[pos] == '"' {
		pos++
		end := strings.IndexByte(g[pos:], '"')
		if end < 0 {
			return ""
		}
		return g[pos : pos+end]
	}

	rest := g[pos:]
	end := strings.IndexByte(rest, ',')
	if end < 0 {
		end = strings.IndexByte(rest, '}')
	}
	if end < 0 {
		end = len(rest)
	}
	return strings.TrimSpace(rest[:end])
}
