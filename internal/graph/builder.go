package graph

import (
	"fmt"
	"sort"

	"github.com/Sayantika84/Social-Tagging-Proj/internal/models"
)

// Builder aggregates tagging events into a Graph.
type Builder struct {
	// MaxGroupPairs bounds the pair increments for a single co-occurrence key.
	// Zero means unbounded.
	MaxGroupPairs int
}

// ErrGroupTooLarge is returned when one key's distinct-user set would exceed MaxGroupPairs.
type ErrGroupTooLarge struct {
	Key   models.CoOccurrenceKey
	Users int
	Limit int
}

func (e *ErrGroupTooLarge) Error() string {
	return fmt.Sprintf("co-occurrence key %s has %d users (%d pairs), limit is %d pairs",
		e.Key, e.Users, pairCount(e.Users), e.Limit)
}

// Build is Builder{}.Build without a group bound; it cannot fail.
func Build(users []models.User, events []models.TaggingEvent) *Graph {
	g, _ := Builder{}.Build(users, events)
	return g
}

// Build creates a graph containing every user, then for each co-occurrence
// key adds 1 to the edge of every unordered pair of distinct users sharing it.
// Repeated events by one user under one key count once. The result does not
// depend on event order.
func (b Builder) Build(users []models.User, events []models.TaggingEvent) (*Graph, error) {
	g := New(users)

	groups := GroupByKey(events)

	keys := make([]models.CoOccurrenceKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Resource != keys[j].Resource {
			return keys[i].Resource < keys[j].Resource
		}
		return keys[i].Tag < keys[j].Tag
	})

	for _, key := range keys {
		members := groups[key]
		if len(members) < 2 {
			continue
		}
		if b.MaxGroupPairs > 0 && pairCount(len(members)) > b.MaxGroupPairs {
			return nil, &ErrGroupTooLarge{Key: key, Users: len(members), Limit: b.MaxGroupPairs}
		}
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				// members are distinct, so Increment cannot see a self-loop
				_ = g.Increment(members[i], members[j])
			}
		}
	}
	return g, nil
}

// GroupByKey returns the sorted distinct users per co-occurrence key.
func GroupByKey(events []models.TaggingEvent) map[models.CoOccurrenceKey][]string {
	sets := make(map[models.CoOccurrenceKey]map[string]struct{})
	for _, ev := range events {
		k := ev.Key()
		set, ok := sets[k]
		if !ok {
			set = make(map[string]struct{})
			sets[k] = set
		}
		set[ev.User] = struct{}{}
	}

	out := make(map[models.CoOccurrenceKey][]string, len(sets))
	for k, set := range sets {
		users := make([]string, 0, len(set))
		for u := range set {
			users = append(users, u)
		}
		sort.Strings(users)
		out[k] = users
	}
	return out
}

func pairCount(n int) int {
	return n * (n - 1) / 2
}
