package engine

import (
	"strings"
	"time"

	"daylist/internal/model"
)

// Criteria is a conjunction of visibility predicates. Zero-valued fields do
// not constrain the result.
type Criteria struct {
	Importance  *model.Importance
	Tags        []string
	OverdueOnly bool
	Search      string
	Now         time.Time
}

// Filter computes the global indices of the tasks visible under the given
// criteria, in collection order. The collection itself is never mutated;
// callers render through the returned indices.
func Filter(tasks []model.Task, c Criteria) []int {
	tagKeys := make(map[string]struct{}, len(c.Tags))
	for _, tag := range c.Tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tagKeys[strings.ToLower(tag)] = struct{}{}
		}
	}
	search := strings.ToLower(strings.TrimSpace(c.Search))

	out := make([]int, 0, len(tasks))
	for i, t := range tasks {
		if matches(t, c, tagKeys, search) {
			out = append(out, i)
		}
	}
	return out
}

func matches(t model.Task, c Criteria, tagKeys map[string]struct{}, search string) bool {
	if c.Importance != nil && t.Importance != *c.Importance {
		return false
	}
	if len(tagKeys) > 0 && !intersectsTags(t.Tags, tagKeys) {
		return false
	}
	if c.OverdueOnly {
		if t.Done || t.ScheduledAt == nil || !t.ScheduledAt.Before(c.Now) {
			return false
		}
	}
	if search != "" && !matchesSearch(t, search) {
		return false
	}
	return true
}

func intersectsTags(tags []string, keys map[string]struct{}) bool {
	for _, tag := range tags {
		if _, ok := keys[strings.ToLower(tag)]; ok {
			return true
		}
	}
	return false
}

func matchesSearch(t model.Task, search string) bool {
	if strings.Contains(strings.ToLower(t.Title), search) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Notes), search) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}
