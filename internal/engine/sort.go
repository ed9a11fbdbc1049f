package engine

import (
	"sort"
	"strings"

	"daylist/internal/model"
)

// resort stable-partitions the collection into open tasks followed by done
// tasks, then applies the mode ordering within each partition. Manual mode
// keeps insertion/move order.
func (s *Store) resort() {
	mode := s.mode
	sort.SliceStable(s.tasks, func(i, j int) bool {
		a, b := s.tasks[i], s.tasks[j]
		if a.Done != b.Done {
			return !a.Done
		}
		switch mode {
		case SortDate:
			return lessByDate(a, b)
		case SortImportance:
			return lessByImportance(a, b)
		default:
			return false
		}
	})
}

func lessByDate(a, b model.Task) bool {
	switch {
	case a.ScheduledAt == nil && b.ScheduledAt == nil:
		return lessByTitle(a, b)
	case a.ScheduledAt == nil:
		return false
	case b.ScheduledAt == nil:
		return true
	case a.ScheduledAt.Equal(*b.ScheduledAt):
		return lessByTitle(a, b)
	default:
		return a.ScheduledAt.Before(*b.ScheduledAt)
	}
}

func lessByImportance(a, b model.Task) bool {
	if a.Importance.Weight() != b.Importance.Weight() {
		return a.Importance.Weight() < b.Importance.Weight()
	}
	return lessByTitle(a, b)
}

func lessByTitle(a, b model.Task) bool {
	return strings.ToLower(a.Title) < strings.ToLower(b.Title)
}
