package dashboard

import (
	"fmt"
	"sort"
	"sync"
)

// CardDefinition describes a card type the shell can mount.
type CardDefinition struct {
	ID             CardID            `json:"id" yaml:"id"`
	Title          string            `json:"title" yaml:"title"`
	TitleLocalized map[string]string `json:"title_localized,omitempty" yaml:"title_localized,omitempty"`
	Description    string            `json:"description,omitempty" yaml:"description,omitempty"`
	// Schema validates action payloads. Cards without a schema accept no actions.
	Schema  map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
	Factory CardFactory    `json:"-" yaml:"-"`
}

// LocalizedTitle returns the title for locale, falling back to Title.
func (d CardDefinition) LocalizedTitle(locale string) string {
	if title, ok := d.TitleLocalized[normalizeLocale(locale)]; ok && title != "" {
		return title
	}
	base, _ := resolveLocale(locale).Base()
	if title, ok := d.TitleLocalized[base.String()]; ok && title != "" {
		return title
	}
	return d.Title
}

// CardHook lets packages register cards during init().
type CardHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []CardHook
)

// RegisterCardHook registers a hook executed against new registries.
func RegisterCardHook(h CardHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry holds the card definitions available to shells.
type Registry struct {
	mu          sync.RWMutex
	definitions map[CardID]CardDefinition
}

// NewRegistry builds a registry seeded with the built-in cards and applies
// global hooks.
func NewRegistry() *Registry {
	reg := &Registry{definitions: map[CardID]CardDefinition{}}
	for _, def := range DefaultCardDefinitions() {
		_ = reg.Register(def)
	}
	_ = reg.ApplyHooks()
	return reg
}

// ApplyHooks executes registered card hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// Register stores or replaces a card definition.
func (r *Registry) Register(def CardDefinition) error {
	if def.ID == "" {
		return fmt.Errorf("dashboard: card id is required")
	}
	if def.Factory == nil {
		return fmt.Errorf("dashboard: card %s has no factory", def.ID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[def.ID] = def
	return nil
}

// Definition fetches a card definition by id.
func (r *Registry) Definition(id CardID) (CardDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[id]
	return def, ok
}

// Definitions returns all definitions ordered by id.
func (r *Registry) Definitions() []CardDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]CardDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// Build instantiates a card.
func (r *Registry) Build(id CardID, deps CardDeps) (CardView, error) {
	def, ok := r.Definition(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCard, id)
	}
	return def.Factory(deps), nil
}
