package contenttree

import "fmt"

// Registry holds every configured content tree.
type Registry struct {
	trees   []*Tree
	byKind  map[Kind]*Tree
	byRoute map[string]*Tree
}

// NewRegistry builds a Registry, rejecting duplicate kinds or routes.
func NewRegistry(trees ...*Tree) (*Registry, error) {
	r := &Registry{
		byKind:  make(map[Kind]*Tree, len(trees)),
		byRoute: make(map[string]*Tree, len(trees)),
	}
	for _, t := range trees {
		if t == nil {
			continue
		}
		if _, dup := r.byKind[t.Kind]; dup {
			return nil, fmt.Errorf("duplicate content tree kind %q", t.Kind)
		}
		if _, dup := r.byRoute[t.Route]; dup {
			return nil, fmt.Errorf("duplicate content tree route %q", t.Route)
		}
		r.trees = append(r.trees, t)
		r.byKind[t.Kind] = t
		r.byRoute[t.Route] = t
	}
	return r, nil
}

// Trees returns the trees in registration order.
func (r *Registry) Trees() []*Tree { return r.trees }

// Get returns the tree for a kind.
func (r *Registry) Get(kind Kind) (*Tree, bool) {
	t, ok := r.byKind[kind]
	return t, ok
}

// ByRoute returns the tree served at an endpoint path.
func (r *Registry) ByRoute(route string) (*Tree, bool) {
	t, ok := r.byRoute[route]
	return t, ok
}
