package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// Memory keeps documents in process as json-normalized maps.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string]*memCollection)}
}

func (m *Memory) Collection(name string) Collection {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[name]
	if !ok {
		c = &memCollection{docs: make(map[string]map[string]any)}
		m.collections[name] = c
	}
	return c
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close(ctx context.Context) error { return nil }

type memCollection struct {
	mu    sync.RWMutex
	order []string
	docs  map[string]map[string]any
}

func (c *memCollection) InsertOne(ctx context.Context, doc any) (string, error) {
	m, err := toMap(doc)
	if err != nil {
		return "", err
	}
	delete(m, "id")

	id := uuid.NewString()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[id] = m
	c.order = append(c.order, id)
	return id, nil
}

func (c *memCollection) FindOne(ctx context.Context, id string, out any) error {
	c.mu.RLock()
	m, ok := c.docs[id]
	var doc map[string]any
	if ok {
		doc = withID(m, id)
	}
	c.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}
	return decode(doc, out)
}

func (c *memCollection) FindMany(ctx context.Context, filter Filter, out any) error {
	want, err := toMap(filter)
	if err != nil {
		return err
	}

	c.mu.RLock()
	found := make([]map[string]any, 0)
	for _, id := range c.order {
		m := c.docs[id]
		if matches(m, id, want) {
			found = append(found, withID(m, id))
		}
	}
	c.mu.RUnlock()

	return decode(found, out)
}

func (c *memCollection) UpdateFields(ctx context.Context, id string, fields Fields) error {
	set, err := toMap(fields)
	if err != nil {
		return err
	}
	delete(set, "id")

	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.docs[id]
	if !ok {
		return ErrNotFound
	}
	updated := make(map[string]any, len(m)+len(set))
	for k, v := range m {
		updated[k] = v
	}
	for k, v := range set {
		updated[k] = v
	}
	c.docs[id] = updated
	return nil
}

func (c *memCollection) DeleteOne(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[id]; !ok {
		return ErrNotFound
	}
	c.remove(id)
	return nil
}

func (c *memCollection) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	want, err := toMap(filter)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	for _, id := range append([]string(nil), c.order...) {
		if matches(c.docs[id], id, want) {
			c.remove(id)
			n++
		}
	}
	return n, nil
}

// remove must be called with c.mu held.
func (c *memCollection) remove(id string) {
	delete(c.docs, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func matches(doc map[string]any, id string, want map[string]any) bool {
	for k, v := range want {
		if k == "id" {
			if v != id {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(doc[k], v) {
			return false
		}
	}
	return true
}

func withID(m map[string]any, id string) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out["id"] = id
	return out
}

// toMap normalizes v through its json form so stored values compare the same way
// regardless of the Go type they were written with.
func toMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	m := make(map[string]any)
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("document must be an object: %w", err)
	}
	return m, nil
}

func decode(v any, out any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
