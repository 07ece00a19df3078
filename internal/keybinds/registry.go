package keybinds

import (
	"sort"
	"strings"
)

// Binding represents a keybinding mapping
type Binding struct {
	Key     string
	Action  Action
	Context Context
}

// Registry manages keybinding mappings and matching.
// It is only touched from the bubbletea event loop.
type Registry struct {
	// bindings maps context -> key -> action
	bindings map[Context]map[string]Action

	// pending holds the first key of a two-key sequence ("gg") per context
	pending map[Context]string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[Context]map[string]Action),
		pending:  make(map[Context]string),
	}
}

// Register binds key to action in context, replacing any previous action for that key
func (r *Registry) Register(context Context, key string, action Action) {
	if r.bindings[context] == nil {
		r.bindings[context] = make(map[string]Action)
	}
	r.bindings[context][key] = action
}

// RegisterMultiple registers multiple keys for the same action
func (r *Registry) RegisterMultiple(context Context, keys []string, action Action) {
	for _, key := range keys {
		r.Register(context, key, action)
	}
}

// Unbind removes every key bound to action in context
func (r *Registry) Unbind(context Context, action Action) {
	for key, act := range r.bindings[context] {
		if act == action {
			delete(r.bindings[context], key)
		}
	}
}

// Match looks key up in context, then in the global context
func (r *Registry) Match(context Context, key string) (Action, bool) {
	if action, ok := r.bindings[context][key]; ok {
		return action, true
	}
	if action, ok := r.bindings[ContextGlobal][key]; ok {
		return action, true
	}
	return "", false
}

// MatchLocal looks key up in context only. Overlays use it so that global
// keys like "q" or "1" reach the text input or picker instead.
func (r *Registry) MatchLocal(context Context, key string) (Action, bool) {
	action, ok := r.bindings[context][key]
	return action, ok
}

// MatchMultiKey handles two-key sequences like "gg".
// It returns the action, whether it is a complete match, and whether it is a partial match.
func (r *Registry) MatchMultiKey(context Context, key string) (Action, bool, bool) {
	if prev, ok := r.pending[context]; ok {
		delete(r.pending, context)
		if action, ok := r.Match(context, prev+key); ok {
			return action, true, false
		}
		return "", false, false
	}

	if r.startsSequence(context, key) {
		r.pending[context] = key
		return "", false, true
	}

	action, ok := r.Match(context, key)
	return action, ok, false
}

// startsSequence reports whether key is the first half of a bound doubled-key
// sequence. Named keys such as "up" are not sequences.
func (r *Registry) startsSequence(context Context, key string) bool {
	if len(key) != 1 {
		return false
	}
	for bound := range r.bindings[context] {
		if len(bound) == 2 && bound[0] == bound[1] && bound[:1] == key {
			return true
		}
	}
	return false
}

// ClearMultiKeyState clears any pending sequence for a context
func (r *Registry) ClearMultiKeyState(context Context) {
	delete(r.pending, context)
}

// GetBinding returns the sorted keys bound to action in context, falling back to global
func (r *Registry) GetBinding(context Context, action Action) []string {
	keys := keysFor(r.bindings[context], action)
	if len(keys) == 0 && context != ContextGlobal {
		keys = keysFor(r.bindings[ContextGlobal], action)
	}
	return keys
}

func keysFor(bindings map[string]Action, action Action) []string {
	var keys []string
	for key, act := range bindings {
		if act == action {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// GetBindingString returns a human-readable string of keys bound to an action
func (r *Registry) GetBindingString(context Context, action Action) string {
	keys := r.GetBinding(context, action)
	if len(keys) == 0 {
		return "unbound"
	}
	return strings.Join(keys, "/")
}

// ListBindings returns context bindings followed by global ones, each sorted by key
func (r *Registry) ListBindings(context Context) []Binding {
	var out []Binding
	contexts := []Context{context}
	if context != ContextGlobal {
		contexts = append(contexts, ContextGlobal)
	}
	for _, ctx := range contexts {
		keys := make([]string, 0, len(r.bindings[ctx]))
		for key := range r.bindings[ctx] {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			out = append(out, Binding{Key: key, Action: r.bindings[ctx][key], Context: ctx})
		}
	}
	return out
}
