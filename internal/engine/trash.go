package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"daylist/internal/model"
)

const (
	// DefaultUndoWindow is how long a deletion stays one-tap undoable.
	DefaultUndoWindow = 5 * time.Second
	// DefaultTrashMaxAge is how long trash entries survive before purge.
	DefaultTrashMaxAge = 7 * 24 * time.Hour
)

type undoSlot struct {
	task     model.Task
	index    int
	deadline time.Time
}

// Trash soft-deletes tasks out of a Store into a recoverable log and manages
// the single-slot, time-bounded undo. The expiry callback runs off a
// cancellable timer; arming a new slot always cancels the previous one.
type Trash struct {
	mu        sync.Mutex
	store     *Store
	log       *zap.Logger
	window    time.Duration
	clock     func() time.Time
	entries   []model.DeletedEntry
	slot      *undoSlot
	timer     *time.Timer
	observers []func()
}

func NewTrash(store *Store, window time.Duration, log *zap.Logger) *Trash {
	if window <= 0 {
		window = DefaultUndoWindow
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Trash{
		store:  store,
		log:    log,
		window: window,
		clock:  func() time.Time { return time.Now().UTC() },
	}
}

// Subscribe registers a callback fired after every trash mutation.
func (t *Trash) Subscribe(fn func()) {
	if fn != nil {
		t.observers = append(t.observers, fn)
	}
}

func (t *Trash) notify() {
	for _, fn := range t.observers {
		fn()
	}
}

// Entries returns the trash log, most recent deletion first.
func (t *Trash) Entries() []model.DeletedEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.DeletedEntry, len(t.entries))
	for i, e := range t.entries {
		out[i] = e
		out[i].Task = e.Task.Clone()
	}
	return out
}

// Load replaces the trash log, e.g. from a persisted snapshot.
func (t *Trash) Load(entries []model.DeletedEntry) {
	t.mu.Lock()
	t.entries = make([]model.DeletedEntry, len(entries))
	for i, e := range entries {
		t.entries[i] = e
		t.entries[i].Task = e.Task.Clone()
	}
	t.mu.Unlock()
	t.notify()
}

// Delete removes the task from the store, logs it to the front of the trash
// and arms a fresh undo slot. A previously armed slot is discarded; its
// trash entry stays. Unknown ids report false.
func (t *Trash) Delete(id string) bool {
	task, index, ok := t.store.Remove(id)
	if !ok {
		return false
	}
	now := t.clock()

	t.mu.Lock()
	entry := model.DeletedEntry{
		ID:            uuid.NewString(),
		Task:          task.Clone(),
		DeletedAt:     now,
		OriginalIndex: index,
	}
	t.entries = append([]model.DeletedEntry{entry}, t.entries...)
	t.cancelTimerLocked()
	t.slot = &undoSlot{task: task.Clone(), index: index, deadline: now.Add(t.window)}
	t.timer = time.AfterFunc(t.window, t.expireSlot)
	t.mu.Unlock()

	t.log.Debug("task deleted", zap.String("task_id", id), zap.Int("index", index))
	t.notify()
	return true
}

// Undo reverses the armed deletion if its deadline has not passed, restoring
// the task at min(originalIndex, current length) and dropping the matching
// trash entry. After the deadline it is a no-op. The entry is only dropped
// once the store accepted the task back.
func (t *Trash) Undo() bool {
	t.mu.Lock()
	slot := t.slot
	if slot == nil || t.clock().After(slot.deadline) {
		t.slot = nil
		t.mu.Unlock()
		return false
	}
	t.mu.Unlock()

	if !t.store.Restore(slot.task, slot.index) {
		return false
	}

	t.mu.Lock()
	t.cancelTimerLocked()
	t.slot = nil
	t.removeEntryByTaskLocked(slot.task.ID)
	t.mu.Unlock()
	t.notify()
	return true
}

// RestoreEntry reinserts a trash entry's task at its original (clamped)
// index, independent of the undo slot. The entry survives when the store
// rejects the task, e.g. because its id reappeared in the meantime.
func (t *Trash) RestoreEntry(entryID string) bool {
	t.mu.Lock()
	var entry model.DeletedEntry
	found := false
	for _, e := range t.entries {
		if e.ID == entryID {
			entry = e
			found = true
			break
		}
	}
	t.mu.Unlock()
	if !found {
		return false
	}

	if !t.store.Restore(entry.Task, entry.OriginalIndex) {
		return false
	}

	t.mu.Lock()
	t.removeEntryByIDLocked(entry.ID)
	// A slot pointing at the same task would re-insert it on undo.
	if t.slot != nil && t.slot.task.ID == entry.Task.ID {
		t.cancelTimerLocked()
		t.slot = nil
	}
	t.mu.Unlock()
	t.notify()
	return true
}

// PurgeExpired drops every entry older than maxAge (the 7-day default when
// maxAge is zero) and reports how many were removed. Invoked once at load,
// not on a schedule.
func (t *Trash) PurgeExpired(maxAge time.Duration) int {
	if maxAge <= 0 {
		maxAge = DefaultTrashMaxAge
	}
	now := t.clock()

	t.mu.Lock()
	kept := t.entries[:0]
	removed := 0
	for _, e := range t.entries {
		if now.Sub(e.DeletedAt) > maxAge {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	t.entries = kept
	t.mu.Unlock()

	if removed > 0 {
		t.log.Info("purged expired trash entries", zap.Int("count", removed))
		t.notify()
	}
	return removed
}

// EmptyAll clears the trash unconditionally.
func (t *Trash) EmptyAll() {
	t.mu.Lock()
	t.entries = nil
	t.mu.Unlock()
	t.notify()
}

// UndoDeadline reports the armed slot's deadline, if one is armed and still
// ahead of the clock.
func (t *Trash) UndoDeadline() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.slot == nil || t.clock().After(t.slot.deadline) {
		return time.Time{}, false
	}
	return t.slot.deadline, true
}

// Stop cancels any pending expiry callback. Called on shutdown.
func (t *Trash) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelTimerLocked()
	t.slot = nil
}

func (t *Trash) expireSlot() {
	t.mu.Lock()
	t.slot = nil
	t.timer = nil
	t.mu.Unlock()
}

func (t *Trash) cancelTimerLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Trash) removeEntryByTaskLocked(taskID string) {
	for i, e := range t.entries {
		if e.Task.ID == taskID {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return
		}
	}
}

func (t *Trash) removeEntryByIDLocked(entryID string) {
	for i, e := range t.entries {
		if e.ID == entryID {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return
		}
	}
}
