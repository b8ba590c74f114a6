// Package tui is the interactive chat viewer: a reactive filter/render loop
// over the flat message table loaded from a container.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chatvault/internal/container"
	"chatvault/internal/query"
	"chatvault/internal/render"
)

const debounceDelay = 200 * time.Millisecond

type debounceTickMsg struct {
	query string
}

type model struct {
	rows []container.Row

	state    query.State
	filtered []container.Row
	matches  []int

	// filter cycling lists; index 0 means "all"
	chats     []string
	senders   []string
	chatIdx   int
	senderIdx int

	showOriginal bool

	searchInput textinput.Model
	page        viewport.Model
	pending     string // input value awaiting the debounce tick

	totalPages int
	width      int
	height     int
	ready      bool
	statusMsg  string
	quitting   bool
}

func initialModel(rows []container.Row, state query.State) model {
	ti := textinput.New()
	ti.Placeholder = "Search messages..."
	ti.Focus()
	ti.SetValue(state.Query)
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	m := model{
		rows:        rows,
		state:       state,
		chats:       append([]string{query.All}, query.Chats(rows)...),
		senders:     append([]string{query.All}, query.Senders(rows)...),
		searchInput: ti,
		page:        viewport.New(0, 0),
	}

	// honor filters preselected on the command line
	for i, c := range m.chats {
		if c == state.Chat {
			m.chatIdx = i
		}
	}
	for i, s := range m.senders {
		if s == state.Sender {
			m.senderIdx = i
		}
	}

	m.recompute(true)
	return m
}

// Run starts the viewer and blocks until the user quits.
func Run(rows []container.Row, state query.State) error {
	m := initialModel(rows, state)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// recompute re-runs filter, search, and pagination from the session state.
// When followHit is set and a search is active, the page jumps to the one
// holding the current hit.
func (m *model) recompute(followHit bool) {
	m.state.Chat = m.chats[m.chatIdx]
	m.state.Sender = m.senders[m.senderIdx]

	m.filtered, m.matches = query.Filter(m.rows, m.state)
	if m.state.Cursor >= len(m.matches) {
		m.state.Cursor = 0
	}

	if followHit && m.state.Query != "" && len(m.matches) > 0 {
		m.state.Page = query.DefaultPage(m.matches, m.state.Cursor, m.state.PageSize)
	}
	m.totalPages = query.TotalPages(len(m.filtered), m.state.PageSize)
	m.state.Page = query.ClampPage(m.state.Page, m.totalPages)

	m.renderPage()
}

func (m *model) renderPage() {
	if !m.ready {
		return
	}
	pageRows, _ := query.Paginate(m.filtered, m.state.Page, m.state.PageSize)

	hitRow := -1
	if m.state.Query != "" && len(m.matches) > 0 {
		start := (m.state.Page - 1) * m.state.PageSize
		if idx := m.matches[m.state.Cursor]; idx >= start && idx < start+m.state.PageSize {
			hitRow = idx - start
		}
	}

	content, hitLine := render.RenderPage(pageRows, render.Options{
		Query:    m.state.Query,
		Width:    m.page.Width,
		HitRow:   hitRow,
		Original: m.showOriginal,
	})
	m.page.SetContent(content)
	if hitLine >= 0 {
		offset := hitLine - m.page.Height/3
		if offset < 0 {
			offset = 0
		}
		m.page.SetYOffset(offset)
	} else {
		m.page.GotoTop()
	}
}

// hitRowGlobal returns the filtered-set index of the focused row: the current
// search hit when one exists, else the first row of the page.
func (m *model) hitRowGlobal() int {
	if m.state.Query != "" && len(m.matches) > 0 {
		return m.matches[m.state.Cursor]
	}
	if len(m.filtered) == 0 {
		return -1
	}
	return (m.state.Page - 1) * m.state.PageSize
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.page = viewport.New(msg.Width-2, m.pageHeight())
		m.renderPage()
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.NextPage):
			m.state.Page = query.ClampPage(m.state.Page+1, m.totalPages)
			m.renderPage()
			return m, nil

		case key.Matches(msg, keys.PrevPage):
			m.state.Page = query.ClampPage(m.state.Page-1, m.totalPages)
			m.renderPage()
			return m, nil

		case key.Matches(msg, keys.NextMatch):
			if len(m.matches) > 0 {
				m.state.Cursor = query.NextMatch(m.state.Cursor, len(m.matches))
				m.recompute(true)
			}
			return m, nil

		case key.Matches(msg, keys.PrevMatch):
			if len(m.matches) > 1 {
				m.state.Cursor = query.PrevMatch(m.state.Cursor, len(m.matches))
				m.recompute(true)
			}
			return m, nil

		case key.Matches(msg, keys.CycleChat):
			m.chatIdx = (m.chatIdx + 1) % len(m.chats)
			m.state.Page = 1
			m.recompute(true)
			return m, nil

		case key.Matches(msg, keys.CycleUser):
			m.senderIdx = (m.senderIdx + 1) % len(m.senders)
			m.state.Page = 1
			m.recompute(true)
			return m, nil

		case key.Matches(msg, keys.ToggleOrig):
			m.showOriginal = !m.showOriginal
			m.renderPage()
			return m, nil

		case key.Matches(msg, keys.Copy):
			if idx := m.hitRowGlobal(); idx >= 0 {
				text := m.filtered[idx].Text
				if err := clipboard.WriteAll(text); err != nil {
					m.statusMsg = "clipboard unavailable"
				} else {
					m.statusMsg = "copied message"
				}
			}
			return m, nil

		case key.Matches(msg, keys.ScrollUp):
			m.page.LineUp(m.pageHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.ScrollDn):
			m.page.LineDown(m.pageHeight() / 2)
			return m, nil
		}

		// remaining keys edit the search query
		var tiCmd tea.Cmd
		m.searchInput, tiCmd = m.searchInput.Update(msg)
		cmds = append(cmds, tiCmd)

		if v := m.searchInput.Value(); v != m.pending {
			m.pending = v
			q := v
			cmds = append(cmds, tea.Tick(debounceDelay, func(time.Time) tea.Msg {
				return debounceTickMsg{query: q}
			}))
		}
		return m, tea.Batch(cmds...)

	case debounceTickMsg:
		// apply only when the input settled on this value
		if msg.query == m.searchInput.Value() && msg.query != m.state.Query {
			m.state.SetQuery(msg.query)
			m.recompute(true)
		}
		return m, nil
	}

	return m, nil
}

func (m model) pageHeight() int {
	// input line + border + status bar
	h := m.height - 5
	if h < 3 {
		h = 3
	}
	return h
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.searchInput.View())
	b.WriteString("\n")
	b.WriteString(stylePanelBorder.Width(m.width - 2).Render(m.page.View()))
	b.WriteString("\n")
	b.WriteString(m.statusBar())
	return b.String()
}

func (m model) statusBar() string {
	filterName := func(v string) string {
		if v == query.All {
			return "all"
		}
		return v
	}

	parts := []string{
		styleFilterLabel.Render("chat ") + styleFilterValue.Render(filterName(m.state.Chat)),
		styleFilterLabel.Render("sender ") + senderStyle(m.state.Sender).Render(filterName(m.state.Sender)),
		fmt.Sprintf("page %d/%d", m.state.Page, m.totalPages),
		fmt.Sprintf("%d msgs", len(m.filtered)),
	}
	if m.state.Query != "" {
		if len(m.matches) > 0 {
			parts = append(parts, styleMatchCount.Render(
				fmt.Sprintf("hit %d/%d", m.state.Cursor+1, len(m.matches))))
		} else {
			parts = append(parts, styleMatchCount.Render("no hits"))
		}
	}
	if m.statusMsg != "" {
		parts = append(parts, m.statusMsg)
	}
	parts = append(parts, "tab chat | S-tab sender | C-n/C-p hits | left/right pages | esc quit")

	bar := styleStatusBar.Render(strings.Join(parts, "  "))
	return lipgloss.NewStyle().MaxWidth(m.width).Render(bar)
}
