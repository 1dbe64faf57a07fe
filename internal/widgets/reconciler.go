package widgets

import (
	"github.com/charmbracelet/log"
	"github.com/desertthunder/tripkit/internal/models"
	"github.com/desertthunder/tripkit/internal/shared"
)

// Reconciler binds freshly created items to widgets waiting on their domain.
//
// This is the only place where an item created outside a widget's own direct
// request gets attached to it.
type Reconciler struct {
	registry *Registry
	pending  *PendingTable
	logger   *log.Logger
}

// NewReconciler creates a Reconciler over the given registry and pending table.
func NewReconciler(registry *Registry, pending *PendingTable, logger *log.Logger) *Reconciler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Reconciler{registry: registry, pending: pending, logger: logger}
}

// ItemCreated runs synchronously with the creation event: a caller that
// creates an item and immediately lists widget configs observes the binding
// already applied. No matching pending link leaves the item unbound.
func (r *Reconciler) ItemCreated(itemID string, domain models.Domain) {
	link, ok := r.pending.take(domain)
	if !ok {
		return
	}

	r.registry.Update(link.WidgetID, func(config *models.WidgetConfig) {
		config.SelectedItemID = itemID
	})

	r.logger.Debug("bound new item to waiting widget", "item", itemID, "widget", link.WidgetID, "domain", domain)
}
