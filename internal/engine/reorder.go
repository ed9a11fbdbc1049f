package engine

import (
	"sort"

	"daylist/internal/model"
)

// Move performs a user-driven manual move on the open subsequence. Source
// indices and the destination offset are positions within the open list in
// display order; scattered sources move to the destination as one block,
// keeping their relative order. Done tasks keep their global slots. Calls
// outside manual mode are no-ops.
func (s *Store) Move(sources []int, dest int) {
	if s.mode != SortManual {
		return
	}

	openIdx := make([]int, 0, len(s.tasks))
	for i, t := range s.tasks {
		if !t.Done {
			openIdx = append(openIdx, i)
		}
	}
	if len(openIdx) == 0 {
		return
	}

	picked := make(map[int]struct{}, len(sources))
	for _, src := range sources {
		if src >= 0 && src < len(openIdx) {
			picked[src] = struct{}{}
		}
	}
	if len(picked) == 0 {
		return
	}
	order := make([]int, 0, len(picked))
	for src := range picked {
		order = append(order, src)
	}
	sort.Ints(order)

	open := make([]model.Task, len(openIdx))
	for k, gi := range openIdx {
		open[k] = s.tasks[gi]
	}

	moved := make([]model.Task, 0, len(order))
	remaining := make([]model.Task, 0, len(open)-len(order))
	for k, t := range open {
		if _, ok := picked[k]; ok {
			moved = append(moved, t)
		} else {
			remaining = append(remaining, t)
		}
	}

	if dest < 0 {
		dest = 0
	}
	if dest > len(remaining) {
		dest = len(remaining)
	}
	result := make([]model.Task, 0, len(open))
	result = append(result, remaining[:dest]...)
	result = append(result, moved...)
	result = append(result, remaining[dest:]...)

	// Splice the reordered open tasks back into their original global slots.
	for k, gi := range openIdx {
		s.tasks[gi] = result[k]
	}
	s.notify()
}
