package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tripkit/internal/core"
	"github.com/desertthunder/tripkit/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	WidgetListView ViewState = iota
	ItemPickView
)

// Model represents the TUI application state.
type Model struct {
	core   *core.Core
	view   ViewState
	width  int
	height int

	widgetList list.Model
	itemList   list.Model
	selected   models.WidgetConfig // widget being bound in ItemPickView

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model over the provided core.
func NewModel(c *core.Core) *Model {
	m := &Model{
		core: c,
		view: WidgetListView,
		help: help.New(),
		keys: newKeyMap(),
	}

	m.widgetList = list.New(nil, list.NewDefaultDelegate(), 0, 0)
	m.widgetList.Title = "Dashboard"
	m.reloadWidgets()

	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.widgetList.SetSize(msg.Width-4, msg.Height-8)
		m.itemList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case WidgetListView:
			return m.handleWidgetListKeys(msg)
		case ItemPickView:
			return m.handleItemPickKeys(msg)
		}
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case ItemPickView:
		return m.itemList.View() + "\n" + styles.help.Render(m.help.View(m.keys))
	default:
		return m.widgetList.View() + "\n" + styles.help.Render(m.help.View(m.keys))
	}
}

func (m *Model) handleWidgetListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		// Armed debounce timers carry unsaved edits; flush before exit.
		m.core.Flush()
		return m, tea.Quit

	case key.Matches(msg, m.keys.enter):
		if item, ok := m.widgetList.SelectedItem().(widgetItem); ok {
			m.selected = item.config
			m.openItemPicker()
		}
		return m, nil

	case key.Matches(msg, m.keys.newRow):
		if item, ok := m.widgetList.SelectedItem().(widgetItem); ok {
			name := fmt.Sprintf("New %s", item.config.DomainType)
			if _, err := m.core.RequestItemForWidget(item.config.ID, item.config.DomainType, name); err == nil {
				m.reloadWidgets()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.unbind):
		if item, ok := m.widgetList.SelectedItem().(widgetItem); ok {
			m.core.Widgets.Update(item.config.ID, func(config *models.WidgetConfig) {
				config.SelectedItemID = ""
			})
			m.reloadWidgets()
		}
		return m, nil

	case key.Matches(msg, m.keys.delete):
		if item, ok := m.widgetList.SelectedItem().(widgetItem); ok {
			m.core.Widgets.Remove(item.config.ID)
			m.reloadWidgets()
		}
		return m, nil
	}

	return m.updateLists(msg)
}

func (m *Model) handleItemPickKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.core.Flush()
		return m, tea.Quit

	case key.Matches(msg, m.keys.back):
		m.view = WidgetListView
		return m, nil

	case key.Matches(msg, m.keys.enter):
		if picked, ok := m.itemList.SelectedItem().(pickItem); ok {
			widgetID := m.selected.ID
			m.core.Widgets.Update(widgetID, func(config *models.WidgetConfig) {
				config.SelectedItemID = picked.item.ID
			})
			m.reloadWidgets()
			m.view = WidgetListView
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// reloadWidgets rebuilds the widget list from the registry, resolving each
// bound item's name. A selected id that no longer resolves renders as
// unbound.
func (m *Model) reloadWidgets() {
	configs := m.core.Widgets.List()

	items := make([]list.Item, len(configs))
	for i, config := range configs {
		bound := ""
		if config.SelectedItemID != "" {
			if item, ok := m.core.FindItem(config.DomainType, config.SelectedItemID); ok {
				bound = item.Name
			}
		}
		items[i] = widgetItem{config: config, bound: bound}
	}

	m.widgetList.SetItems(items)
	m.widgetList.SetSize(m.width-4, m.height-8)
}

// openItemPicker builds the item list for the selected widget's domain.
func (m *Model) openItemPicker() {
	summaries := m.core.Items(m.selected.DomainType)

	items := make([]list.Item, len(summaries))
	for i, summary := range summaries {
		items[i] = pickItem{item: summary}
	}

	m.itemList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
	m.itemList.Title = fmt.Sprintf("Pick a %s item", m.selected.DomainType)
	m.view = ItemPickView
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.view {
	case ItemPickView:
		m.itemList, cmd = m.itemList.Update(msg)
	default:
		m.widgetList, cmd = m.widgetList.Update(msg)
	}

	return m, cmd
}
