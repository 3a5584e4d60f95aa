package physics

import (
	"sync"

	"github.com/lixenwraith/framecore/core"
)

// MaxCategories is the number of distinct collision categories a scene
// may define, fixed by the 32-bit mask width
const MaxCategories = 32

// CategoryRegistry assigns category indices to names. Registration is a
// setup-time operation; exceeding MaxCategories is a fatal configuration
// error surfaced before the first tick
type CategoryRegistry struct {
	mu     sync.RWMutex
	names  []string
	byName map[string]Category
}

// NewCategoryRegistry creates an empty registry
func NewCategoryRegistry() *CategoryRegistry {
	return &CategoryRegistry{
		names:  make([]string, 0, MaxCategories),
		byName: make(map[string]Category),
	}
}

// Register assigns the next free category index to name.
// Registering the same name twice or exceeding MaxCategories fails
func (r *CategoryRegistry) Register(name string) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return 0, core.Configf("category", "%q already registered", name)
	}
	if len(r.names) >= MaxCategories {
		return 0, core.Configf("category", "limit of %d categories exceeded by %q", MaxCategories, name)
	}

	c := Category(len(r.names))
	r.names = append(r.names, name)
	r.byName[name] = c
	return c, nil
}

// Lookup returns the category registered under name
func (r *CategoryRegistry) Lookup(name string) (Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	return c, ok
}

// Name returns the name registered for category c
func (r *CategoryRegistry) Name(c Category) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(c) >= len(r.names) {
		return "", false
	}
	return r.names[c], true
}

// Count returns the number of registered categories
func (r *CategoryRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}
