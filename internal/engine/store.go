package engine

import (
	"daylist/internal/model"
)

type SortMode string

const (
	SortManual     SortMode = "manual"
	SortDate       SortMode = "date"
	SortImportance SortMode = "importance"
)

func (m SortMode) IsValid() bool {
	switch m {
	case SortManual, SortDate, SortImportance:
		return true
	default:
		return false
	}
}

// Store owns the canonical ordered task collection. All mutations go through
// its methods; ordering is re-established after every mutation that can
// affect it. Observers are notified after each committing mutation.
//
// The store is single-writer by design and does no internal locking.
type Store struct {
	tasks     []model.Task
	mode      SortMode
	observers []func()
}

func NewStore(mode SortMode) *Store {
	if !mode.IsValid() {
		mode = SortManual
	}
	return &Store{mode: mode}
}

// Subscribe registers a callback fired synchronously after every committing
// mutation. The rendering and persistence layers hang off this.
func (s *Store) Subscribe(fn func()) {
	if fn != nil {
		s.observers = append(s.observers, fn)
	}
}

func (s *Store) notify() {
	for _, fn := range s.observers {
		fn()
	}
}

// Tasks returns a copy of the collection in display order.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) Get(id string) (model.Task, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return model.Task{}, false
}

func (s *Store) Mode() SortMode {
	return s.mode
}

// SetMode switches the sort mode and immediately resorts.
func (s *Store) SetMode(mode SortMode) {
	if !mode.IsValid() || mode == s.mode {
		return
	}
	s.mode = mode
	s.resort()
	s.notify()
}

// Insert adds a task at the front (new tasks) or the back of the collection
// and resorts. Invalid tasks and duplicate ids are dropped.
func (s *Store) Insert(t model.Task, atFront bool) {
	if t.Validate() != nil || s.indexOf(t.ID) >= 0 {
		return
	}
	t = t.Clone()
	if atFront {
		s.tasks = append([]model.Task{t}, s.tasks...)
	} else {
		s.tasks = append(s.tasks, t)
	}
	s.resort()
	s.notify()
}

// Update applies mutate to the task with the given id. Unknown ids and
// mutations that would invalidate the task are no-ops. The id itself is
// immutable. A resort runs only when the mutation touched an
// ordering-relevant field.
func (s *Store) Update(id string, mutate func(*model.Task)) {
	i := s.indexOf(id)
	if i < 0 || mutate == nil {
		return
	}
	before := s.tasks[i]
	next := before.Clone()
	mutate(&next)
	next.ID = before.ID
	if next.Validate() != nil {
		return
	}
	s.tasks[i] = next
	if orderingChanged(before, next) {
		s.resort()
	}
	s.notify()
}

func (s *Store) ToggleDone(id string) {
	s.Update(id, func(t *model.Task) { t.Done = !t.Done })
}

// Remove extracts the task with the given id and reports its global index at
// the time of removal.
func (s *Store) Remove(id string) (model.Task, int, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, 0, false
	}
	t := s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.notify()
	return t, i, true
}

// Restore reinserts a task at the given index, clamped to the current
// collection length, and resorts. It reports false for invalid tasks and ids
// already present, so callers can keep their own records when nothing was
// inserted.
func (s *Store) Restore(t model.Task, at int) bool {
	if t.Validate() != nil || s.indexOf(t.ID) >= 0 {
		return false
	}
	if at < 0 {
		at = 0
	}
	if at > len(s.tasks) {
		at = len(s.tasks)
	}
	s.tasks = append(s.tasks[:at], append([]model.Task{t.Clone()}, s.tasks[at:]...)...)
	s.resort()
	s.notify()
	return true
}

// Resort re-establishes open-before-done grouping and mode ordering.
func (s *Store) Resort() {
	s.resort()
	s.notify()
}

// Load replaces the collection wholesale, e.g. from a persisted snapshot.
// Tasks that fail validation or repeat an id are skipped.
func (s *Store) Load(tasks []model.Task) {
	s.tasks = s.tasks[:0]
	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if t.Validate() != nil {
			continue
		}
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		s.tasks = append(s.tasks, t.Clone())
	}
	s.resort()
	s.notify()
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func orderingChanged(a, b model.Task) bool {
	if a.Done != b.Done || a.Importance != b.Importance {
		return true
	}
	switch {
	case a.ScheduledAt == nil && b.ScheduledAt == nil:
		return false
	case a.ScheduledAt == nil || b.ScheduledAt == nil:
		return true
	default:
		return !a.ScheduledAt.Equal(*b.ScheduledAt)
	}
}
