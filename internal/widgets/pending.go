package widgets

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tripkit/internal/models"
	"github.com/desertthunder/tripkit/internal/shared"
	"github.com/desertthunder/tripkit/internal/store"
)

// PendingKey is the storage key for the pending link table, persisted as a
// map keyed by synthetic placeholder id.
const PendingKey = "disney-pending-links"

var emptyPending = json.RawMessage(`{}`)

// PendingTable tracks widgets awaiting item creation. At most one pending
// link exists per widget: a second request supersedes the first.
type PendingTable struct {
	cache  *store.Cache
	logger *log.Logger
	newID  func() string
	now    func() time.Time
}

// NewPendingTable creates a PendingTable over the shared cache.
func NewPendingTable(cache *store.Cache, logger *log.Logger) *PendingTable {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &PendingTable{cache: cache, logger: logger, newID: shared.GenerateID, now: time.Now}
}

// Links returns the current pending link table keyed by placeholder id.
func (p *PendingTable) Links() map[string]models.PendingLink {
	return p.decode(p.cache.Get(PendingKey, emptyPending))
}

// LinkFor returns the pending link for the given widget, if one exists.
func (p *PendingTable) LinkFor(widgetID string) (models.PendingLink, bool) {
	for _, link := range p.Links() {
		if link.WidgetID == widgetID {
			return link, true
		}
	}
	return models.PendingLink{}, false
}

// Register records that widgetID is waiting for a new item of the given
// domain, superseding any prior pending link for the same widget.
func (p *PendingTable) Register(widgetID string, domain models.Domain) {
	p.mutate(func(links map[string]models.PendingLink) bool {
		for placeholder, link := range links {
			if link.WidgetID == widgetID {
				delete(links, placeholder)
			}
		}

		links[p.newID()] = models.PendingLink{
			DomainType:  domain,
			WidgetID:    widgetID,
			RequestedAt: p.now(),
		}
		return true
	})

	p.logger.Debug("registered pending link", "widget", widgetID, "domain", domain)
}

// Cancel removes the pending link for widgetID, if any. Used when the user
// navigates away before the item finishes creation.
func (p *PendingTable) Cancel(widgetID string) {
	p.mutate(func(links map[string]models.PendingLink) bool {
		changed := false
		for placeholder, link := range links {
			if link.WidgetID == widgetID {
				delete(links, placeholder)
				changed = true
			}
		}
		return changed
	})
}

// take removes and returns the oldest pending link matching domain.
func (p *PendingTable) take(domain models.Domain) (models.PendingLink, bool) {
	var match models.PendingLink
	found := false

	p.mutate(func(links map[string]models.PendingLink) bool {
		var placeholder string
		for key, link := range links {
			if link.DomainType != domain {
				continue
			}
			if !found || link.RequestedAt.Before(match.RequestedAt) {
				match = link
				placeholder = key
				found = true
			}
		}

		if !found {
			return false
		}

		delete(links, placeholder)
		return true
	})

	return match, found
}

func (p *PendingTable) mutate(apply func(map[string]models.PendingLink) bool) {
	p.cache.Update(PendingKey, emptyPending, func(raw json.RawMessage) json.RawMessage {
		links := p.decode(raw)
		if !apply(links) {
			return nil
		}

		out, err := json.Marshal(links)
		if err != nil {
			p.logger.Error("failed to encode pending links, dropping mutation", "err", err)
			return nil
		}
		return out
	})
}

func (p *PendingTable) decode(raw json.RawMessage) map[string]models.PendingLink {
	links := make(map[string]models.PendingLink)
	if err := json.Unmarshal(raw, &links); err != nil {
		p.logger.Warn("malformed pending link table, treating as empty", "err", err)
		return make(map[string]models.PendingLink)
	}
	return links
}
