package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tripkit/internal/core"
	"github.com/desertthunder/tripkit/internal/models"
)

var (
	_ list.Item = widgetItem{}
	_ list.Item = pickItem{}
)

// widgetItem wraps [models.WidgetConfig] to implement [list.Item].
type widgetItem struct {
	config models.WidgetConfig
	bound  string // resolved item name, empty when unbound
}

func (i widgetItem) FilterValue() string { return string(i.config.DomainType) }
func (i widgetItem) Title() string {
	return fmt.Sprintf("%d. %s widget", i.config.Order+1, i.config.DomainType)
}
func (i widgetItem) Description() string {
	if i.bound == "" {
		return "unbound"
	}
	return fmt.Sprintf("showing: %s", i.bound)
}

// pickItem wraps [core.ItemSummary] to implement [list.Item].
type pickItem struct {
	item core.ItemSummary
}

func (i pickItem) FilterValue() string { return i.item.Name }
func (i pickItem) Title() string       { return i.item.Name }
func (i pickItem) Description() string {
	return fmt.Sprintf("updated %s", i.item.UpdatedAt.Format("Jan 2 15:04"))
}
