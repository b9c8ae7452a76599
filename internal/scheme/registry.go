package scheme

// #region imports
import (
	"fmt"
	"sync/atomic"
)

// #endregion

// #region registry

// Registry holds the published scheme set. The snapshot map is immutable
// after publish: Replace swaps in a freshly built map, so concurrent
// classification calls read a consistent snapshot without locking.
type Registry struct {
	snapshot atomic.Pointer[map[string]*Scheme]
	order    atomic.Pointer[[]string]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	empty := map[string]*Scheme{}
	var order []string
	r.snapshot.Store(&empty)
	r.order.Store(&order)
	return r
}

// #endregion

// #region publish

// Replace publishes a new scheme set, discarding the previous one.
// Duplicate ids within one publish are rejected.
func (r *Registry) Replace(schemes []*Scheme) error {
	next := make(map[string]*Scheme, len(schemes))
	order := make([]string, 0, len(schemes))
	for _, s := range schemes {
		if _, dup := next[s.ID]; dup {
			return fmt.Errorf("duplicate scheme id %q", s.ID)
		}
		next[s.ID] = s
		order = append(order, s.ID)
	}
	r.snapshot.Store(&next)
	r.order.Store(&order)
	return nil
}

// #endregion

// #region lookup

// Get returns the scheme registered under id, or nil.
func (r *Registry) Get(id string) *Scheme {
	return (*r.snapshot.Load())[id]
}

// Available lists registered schemes in publish order, one entry per id.
func (r *Registry) Available() []Info {
	snap := *r.snapshot.Load()
	order := *r.order.Load()
	infos := make([]Info, 0, len(order))
	for _, id := range order {
		if s, ok := snap[id]; ok {
			infos = append(infos, Info{ID: s.ID, Name: s.Name})
		}
	}
	return infos
}

// #endregion
