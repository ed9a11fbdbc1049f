package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidImportance = errors.New("model: invalid task importance")

type Importance string

const (
	ImportanceLow    Importance = "low"
	ImportanceNormal Importance = "normal"
	ImportanceHigh   Importance = "high"
)

func (i Importance) IsValid() bool {
	switch i {
	case ImportanceLow, ImportanceNormal, ImportanceHigh:
		return true
	default:
		return false
	}
}

// Weight returns the sort weight of the importance level. Lower sorts first.
func (i Importance) Weight() int {
	switch i {
	case ImportanceHigh:
		return 0
	case ImportanceLow:
		return 2
	default:
		return 1
	}
}

type Task struct {
	ID          string
	Title       string
	Done        bool
	Notes       string
	ScheduledAt *time.Time
	Importance  Importance
	Tags        []string
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Importance.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidImportance, t.Importance)
	}
	seen := make(map[string]struct{}, len(t.Tags))
	for _, tag := range t.Tags {
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("model: duplicate tag %q", tag)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Clone returns a copy that shares no mutable state with the receiver.
func (t Task) Clone() Task {
	out := t
	if t.ScheduledAt != nil {
		at := *t.ScheduledAt
		out.ScheduledAt = &at
	}
	if t.Tags != nil {
		out.Tags = append([]string(nil), t.Tags...)
	}
	return out
}

// DeletedEntry is a trash record: the removed task plus enough context to
// put it back where it came from.
type DeletedEntry struct {
	ID            string
	Task          Task
	DeletedAt     time.Time
	OriginalIndex int
}
