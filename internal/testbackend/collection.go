package testbackend

import (
	"slices"
	"strconv"
	"strings"
	"sync"
)

type record = map[string]any

// collection is an in-memory table of JSON objects keyed by numeric id
type collection struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]record
}

func newCollection() *collection {
	return &collection{nextID: 1, items: make(map[int64]record)}
}

func (c *collection) insert(r record) record {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	r["id"] = id
	c.items[id] = r
	return clone(r)
}

func (c *collection) get(id int64) (record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.items[id]
	if !ok {
		return nil, false
	}
	return clone(r), true
}

// modify applies fn to the stored record under lock
func (c *collection) modify(id int64, fn func(record)) (record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.items[id]
	if !ok {
		return nil, false
	}
	fn(r)
	r["id"] = id
	return clone(r), true
}

func (c *collection) remove(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	return true
}

// list returns matching records ordered by id
func (c *collection) list(match func(record) bool) []record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]int64, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := []record{}
	for _, id := range ids {
		if match == nil || match(c.items[id]) {
			out = append(out, clone(c.items[id]))
		}
	}
	return out
}

func clone(r record) record {
	out := make(record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	}
	return 0
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// nameMatches is the case-insensitive "q" filter used by the list endpoints
func nameMatches(r record, field, q string) bool {
	return q == "" || strings.Contains(strings.ToLower(str(r[field])), strings.ToLower(q))
}
