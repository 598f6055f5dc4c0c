package theme

import (
	"maps"
	"slices"
	"strings"
	"sync"
)

// * Document is the root styling scope of a rendered page: a class set on
// * the <html> element.
type Document struct {
	mu      sync.Mutex
	classes map[string]bool
}

func NewDocument() *Document {
	return &Document{classes: map[string]bool{}}
}

func (d *Document) SetDark(dark bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if dark {
		d.classes["dark"] = true
	} else {
		delete(d.classes, "dark")
	}
}

func (d *Document) Dark() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.classes["dark"]
}

// * Class renders the class attribute value.
func (d *Document) Class() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return strings.Join(slices.Sorted(maps.Keys(d.classes)), " ")
}

// * MemoryStore is an in-process PreferenceStore.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	writes []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (m *MemoryStore) Load(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.writes = append(m.writes, value)
	return nil
}

// * Writes returns every value saved so far, in order.
func (m *MemoryStore) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.writes)
}
