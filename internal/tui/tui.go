package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Muneerali199/website-builder/internal/config"
	"github.com/Muneerali199/website-builder/internal/home"
	"github.com/Muneerali199/website-builder/internal/logger"
	"github.com/Muneerali199/website-builder/internal/usage"
)

// hands the page a submission result fetched earlier by a tea.Cmd
type replaySubmitter struct {
	outcome usage.Outcome
	err     error
}

func (r *replaySubmitter) Submit(context.Context, string) (usage.Outcome, error) {
	return r.outcome, r.err
}

func NewApp(cfg config.ClientConfig) *Model {
	client := NewClient(cfg)
	return newModel(client, NewFeed(cfg.APIEndpoint))
}

func newModel(client *Client, feed *Feed) *Model {
	ti := textinput.New()
	ti.Placeholder = "What do you want to build today?"
	ti.Focus()
	ti.CharLimit = 10000
	ti.Width = 80
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)

	m := &Model{
		state:    StateHome,
		client:   client,
		feed:     feed,
		replay:   &replaySubmitter{},
		input:    ti,
		signedIn: client.SignedIn(),
	}

	m.page = home.NewPage(m.replay, m, usage.DefaultRecord().View())

	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.client.LoadUsageCmd())
}

// moves between screens; called by the page after a submission or sidebar pick
func (m *Model) Navigate(destination string, state any) {
	m.destination = destination
	m.builder = nil

	switch destination {
	case home.RouteHome:
		m.state = StateHome

	case home.RouteBuilder:
		if s, ok := state.(home.BuilderState); ok {
			m.builder = &s
		}
		m.state = StateBuilder

	default:
		m.state = StatePage
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state != StateHome {
			switch msg.String() {
			case "ctrl+c", "esc", "q":
				m.Navigate(home.RouteHome, nil)
			}
			return m, nil
		}

		return m.updateHome(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(20, msg.Width-10)
		m.renderer = nil
		return m, nil

	case UsageLoadedMsg:
		m.signedIn = msg.signedIn
		m.page.SetUsage(msg.view)
		m.err = nil
		return m, m.feed.ConnectCmd(m.client.token, m.client.SessionID())

	case FeedConnectedMsg:
		return m, m.feed.WaitCmd()

	case UsageUpdateMsg:
		m.page.SetUsage(msg.view)
		return m, m.feed.WaitCmd()

	case FeedClosedMsg:
		if msg.err != nil {
			logger.Debug("usage feed unavailable", "error", msg.err)
		}
		return m, nil

	case SubmitResultMsg:
		m.submitting = false
		m.replay.outcome, m.replay.err = msg.outcome, msg.err

		if _, err := m.page.Submit(context.Background()); err != nil {
			m.err = err
			return m, nil
		}

		m.err = nil
		m.input.SetValue(m.page.Prompt())
		return m, nil

	case ErrorMsg:
		m.err = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "ctrl+c":
		return m, tea.Quit

	case "ctrl+b":
		m.page.ToggleSidebar()
		m.sidebarItem = 0
		return m, nil
	}

	if m.page.SidebarExpanded() {
		return m.updateSidebar(key)
	}

	switch key {
	case "f1", "f2", "f3", "f4":
		index := int(key[1] - '1')
		if err := m.page.UseRecommendation(index); err == nil {
			m.input.SetValue(m.page.Prompt())
			m.input.CursorEnd()
		}
		return m, nil

	case "enter":
		if m.submitting {
			return m, nil
		}

		prompt := m.input.Value()
		m.page.SetPrompt(prompt)
		if strings.TrimSpace(prompt) == "" {
			return m, nil
		}

		m.submitting = true
		return m, m.client.SubmitCmd(prompt)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.page.SetPrompt(m.input.Value())

	return m, cmd
}

func (m *Model) updateSidebar(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.sidebarItem > 0 {
			m.sidebarItem--
		}

	case "down", "j":
		if m.sidebarItem < len(home.SidebarRoutes)-1 {
			m.sidebarItem++
		}

	case "enter":
		route := home.SidebarRoutes[m.sidebarItem].Route
		m.page.CollapseSidebar()
		if route != home.RouteHome {
			if err := m.page.Navigate(route); err != nil {
				m.err = err
			}
		}

	case "esc":
		m.page.CollapseSidebar()
	}

	return m, nil
}

// closes the live feed
func (m *Model) Close() {
	m.feed.Close()
}
