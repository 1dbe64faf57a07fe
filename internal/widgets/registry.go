package widgets

import (
	"encoding/json"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tripkit/internal/models"
	"github.com/desertthunder/tripkit/internal/shared"
	"github.com/desertthunder/tripkit/internal/store"
)

// ConfigsKey is the storage key for the widget configuration list, persisted
// as a bare ordered array.
const ConfigsKey = "disney-widget-configs"

var emptyConfigs = json.RawMessage(`[]`)

// Registry owns the ordered list of dashboard widget descriptors.
type Registry struct {
	cache  *store.Cache
	logger *log.Logger
	newID  func() string
}

// NewRegistry creates a Registry over the shared cache.
func NewRegistry(cache *store.Cache, logger *log.Logger) *Registry {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Registry{cache: cache, logger: logger, newID: shared.GenerateID}
}

// List returns all widget configs sorted by Order.
func (r *Registry) List() []models.WidgetConfig {
	configs := r.decode(r.cache.Get(ConfigsKey, emptyConfigs))
	sort.Slice(configs, func(i, j int) bool { return configs[i].Order < configs[j].Order })
	return configs
}

// Get returns the config with the given id, reporting whether it exists.
func (r *Registry) Get(id string) (models.WidgetConfig, bool) {
	for _, config := range r.List() {
		if config.ID == id {
			return config, true
		}
	}
	return models.WidgetConfig{}, false
}

// Add appends config at the end of the dashboard (order = length), assigning
// an id when the caller didn't pick one.
func (r *Registry) Add(config models.WidgetConfig) models.WidgetConfig {
	if config.ID == "" {
		config.ID = r.newID()
	}

	r.mutate(func(configs []models.WidgetConfig) ([]models.WidgetConfig, bool) {
		config.Order = len(configs)
		return append(configs, config), true
	})

	r.logger.Debug("added widget", "id", config.ID, "domain", config.DomainType)
	return config
}

// Update applies mutate to the config with the given id. No reordering side
// effect; a missing id is a silent no-op.
func (r *Registry) Update(id string, mutate func(*models.WidgetConfig)) {
	r.mutate(func(configs []models.WidgetConfig) ([]models.WidgetConfig, bool) {
		for i := range configs {
			if configs[i].ID != id {
				continue
			}

			order := configs[i].Order
			mutate(&configs[i])
			configs[i].ID = id
			configs[i].Order = order
			return configs, true
		}
		return configs, false
	})
}

// Remove drops the config with the given id and renumbers the remaining
// orders to a dense 0..N-1 in their existing relative order.
func (r *Registry) Remove(id string) {
	r.mutate(func(configs []models.WidgetConfig) ([]models.WidgetConfig, bool) {
		kept := configs[:0]
		removed := false
		for _, config := range configs {
			if config.ID == id {
				removed = true
				continue
			}
			kept = append(kept, config)
		}
		if !removed {
			return configs, false
		}

		return renumber(kept), true
	})
}

// Reorder rewrites every config's Order to match ids exactly. Any config
// omitted from ids is dropped from the registry; callers must pass the full
// id set to avoid silent removal.
func (r *Registry) Reorder(ids []string) {
	r.mutate(func(configs []models.WidgetConfig) ([]models.WidgetConfig, bool) {
		byID := make(map[string]models.WidgetConfig, len(configs))
		for _, config := range configs {
			byID[config.ID] = config
		}

		next := make([]models.WidgetConfig, 0, len(ids))
		for _, id := range ids {
			config, ok := byID[id]
			if !ok {
				continue
			}
			config.Order = len(next)
			next = append(next, config)
		}

		if len(next) < len(configs) {
			r.logger.Debug("reorder dropped widgets omitted from the sequence", "kept", len(next), "had", len(configs))
		}
		return next, true
	})
}

// CleanupReferencesTo clears SelectedItemID on every config of the matching
// domain that references the deleted item. Idempotent; invoked by every
// domain item delete.
func (r *Registry) CleanupReferencesTo(deletedItemID string, domain models.Domain) {
	r.mutate(func(configs []models.WidgetConfig) ([]models.WidgetConfig, bool) {
		changed := false
		for i := range configs {
			if configs[i].DomainType == domain && configs[i].SelectedItemID == deletedItemID {
				configs[i].SelectedItemID = ""
				changed = true
			}
		}
		return configs, changed
	})
}

func renumber(configs []models.WidgetConfig) []models.WidgetConfig {
	sort.Slice(configs, func(i, j int) bool { return configs[i].Order < configs[j].Order })
	for i := range configs {
		configs[i].Order = i
	}
	return configs
}

func (r *Registry) mutate(apply func([]models.WidgetConfig) ([]models.WidgetConfig, bool)) {
	r.cache.Update(ConfigsKey, emptyConfigs, func(raw json.RawMessage) json.RawMessage {
		next, changed := apply(r.decode(raw))
		if !changed {
			return nil
		}

		out, err := json.Marshal(next)
		if err != nil {
			r.logger.Error("failed to encode widget configs, dropping mutation", "err", err)
			return nil
		}
		return out
	})
}

func (r *Registry) decode(raw json.RawMessage) []models.WidgetConfig {
	var configs []models.WidgetConfig
	if err := json.Unmarshal(raw, &configs); err != nil {
		r.logger.Warn("malformed widget config list, treating as empty", "err", err)
		return nil
	}
	return configs
}
