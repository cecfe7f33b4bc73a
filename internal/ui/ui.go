package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytcull/internal/models"
	"github.com/desertthunder/ytcull/internal/services"
	"github.com/desertthunder/ytcull/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	ItemListView
	ConfirmView
	PurgeView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx              context.Context
	view             ViewState
	youtube          services.Service
	engine           *tasks.PlaylistEngine
	width            int
	height           int
	playlistList     list.Model
	playlists        []models.Playlist
	itemList         list.Model
	selectedPlaylist *models.PlaylistExport
	selected         map[string]bool
	progressChan     chan tasks.ProgressUpdate
	progress         tasks.ProgressUpdate
	result           *tasks.PurgeResult
	err              error
	help             help.Model
	keys             keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, youtube services.Service, engine *tasks.PlaylistEngine) *Model {
	return &Model{
		ctx:      ctx,
		view:     PlaylistListView,
		youtube:  youtube,
		engine:   engine,
		selected: map[string]bool{},
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init initializes the TUI by fetching playlists from YouTube.
func (m *Model) Init() tea.Cmd {
	return m.fetchPlaylists()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.playlistList.Width() == 0 {
			m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.itemList.Width() == 0 {
			m.itemList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case ItemListView:
			return m.handleItemListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case playlistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.playlists = msg.playlists
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistEntry{playlist: pl}
		}
		m.playlistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.playlistList.Title = "YouTube Playlists"
		m.playlistList.SetSize(m.width-4, m.height-8)
		return m, nil

	case itemsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = PlaylistListView
			return m, nil
		}
		m.selectedPlaylist = msg.playlist
		m.selected = map[string]bool{}
		items := make([]list.Item, len(msg.playlist.Items))
		for i, item := range msg.playlist.Items {
			items[i] = videoEntry{item: item, selected: m.selected}
		}
		m.itemList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.itemList.Title = fmt.Sprintf("Items in '%s'", msg.playlist.Playlist.Title)
		m.itemList.SetSize(m.width-4, m.height-8)
		m.view = ItemListView
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case purgeCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case PlaylistListView:
		return m.renderPlaylistList()
	case ItemListView:
		return m.renderItemList()
	case ConfirmView:
		return m.renderConfirm()
	case PurgeView:
		return m.renderPurge()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.playlistList.SelectedItem()
		if selected != nil {
			if pl, ok := selected.(playlistEntry); ok {
				return m, m.fetchItems(pl.playlist.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleItemListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter is active keystrokes belong to the filter input.
	if m.itemList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.itemList, cmd = m.itemList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = PlaylistListView
		return m, nil
	case " ":
		if entry, ok := m.itemList.SelectedItem().(videoEntry); ok {
			m.selected[entry.item.ID] = !m.selected[entry.item.ID]
		}
		return m, nil
	case "a":
		allSelected := len(m.selectionOrder()) == len(m.selectedPlaylist.Items)
		for _, item := range m.selectedPlaylist.Items {
			m.selected[item.ID] = !allSelected
		}
		return m, nil
	case "enter":
		if len(m.selectionOrder()) == 0 {
			return m, nil
		}
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.itemList, cmd = m.itemList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = ItemListView
		return m, nil
	case "y":
		m.view = PurgeView
		return m, m.startPurge()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = PlaylistListView
		m.selectedPlaylist = nil
		m.selected = map[string]bool{}
		m.result = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case ItemListView:
		m.itemList, cmd = m.itemList.Update(msg)
	}
	return m, cmd
}

// selectionOrder returns the selected items in playlist order.
func (m *Model) selectionOrder() []models.PlaylistItem {
	if m.selectedPlaylist == nil {
		return nil
	}
	var items []models.PlaylistItem
	for _, item := range m.selectedPlaylist.Items {
		if m.selected[item.ID] {
			items = append(items, item)
		}
	}
	return items
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.youtube.GetPlaylists(m.ctx)
		return playlistsFetchedMsg{playlists: playlists, err: err}
	}
}

func (m *Model) fetchItems(playlistID string) tea.Cmd {
	return func() tea.Msg {
		playlist, err := m.engine.Fetch(m.ctx, nil, playlistID)
		return itemsFetchedMsg{playlist: playlist, err: err}
	}
}

func (m *Model) startPurge() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	items := m.selectionOrder()
	progress := m.progressChan

	go func() {
		result, err := m.engine.Purge(m.ctx, progress, m.selectedPlaylist.Playlist, items)
		m.result = result
		m.err = err
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return purgeCompleteMsg{result: m.result, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return purgeCompleteMsg{result: m.result, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderPlaylistList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.playlistList.View(), helpView)
}

func (m *Model) renderItemList() string {
	count := len(m.selectionOrder())
	status := styles.help.Render(fmt.Sprintf("%d selected", count))
	removeKey := key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "remove selected"),
	)
	helpKeys := []key.Binding{m.keys.toggle, m.keys.all, removeKey, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s\n%s", m.itemList.View(), status, helpView)
}

func (m *Model) renderConfirm() string {
	items := m.selectionOrder()
	title := styles.title.Render(fmt.Sprintf("Remove %d items from '%s'?", len(items), m.selectedPlaylist.Playlist.Title))

	preview := ""
	for i, item := range items {
		if i == 10 {
			preview += fmt.Sprintf("  ... and %d more\n", len(items)-10)
			break
		}
		preview += fmt.Sprintf("  • %s - %s\n", item.Channel, item.Title)
	}

	warning := styles.warn.Render("Removal cannot be undone. Every item is logged before deletion.")

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, preview, warning, helpView)
}

func (m *Model) renderPurge() string {
	title := styles.title.Render("Removing Items")

	var phase string
	switch m.progress.Phase {
	case tasks.RecordAudit:
		phase = fmt.Sprintf("Logging (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.RemoveItem:
		phase = fmt.Sprintf("Removing (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Removal failed: %v\n\nPress r to restart, q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to restart, q to quit")
	}

	title := styles.ok.Render("✓ Removal Complete")
	info := fmt.Sprintf(
		"\nPlaylist: %s\nRemoved: %d/%d",
		m.result.Playlist.Title,
		m.result.DeletedCount,
		m.result.Total,
	)

	var failed string
	if m.result.FailedCount > 0 {
		failed = fmt.Sprintf("\n\n%s", styles.warn.Render(fmt.Sprintf("Failed to remove %d items:", m.result.FailedCount)))
		for _, item := range m.result.Items {
			if item.Error != nil {
				failed += fmt.Sprintf("\n  • %s - %s", item.Item.Channel, item.Item.Title)
			}
		}
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failed, helpView)
}
