package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/Muneerali199/website-builder/internal/home"
	"github.com/Muneerali199/website-builder/internal/usage"
)

const pricingMarkdown = `# Pricing

| Tier | Prompts |
|------|---------|
| Free | 3 to start |
| Pro | Unlimited |
| Enterprise | Unlimited |

Upgrade to keep building once your free prompts run out.
`

func (m *Model) View() string {
	switch m.state {
	case StateBuilder:
		return m.builderView()

	case StatePage:
		return m.destinationView()

	default:
		return m.homeView()
	}
}

func (m *Model) homeView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(logo))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("describe a website and watch it get built"))
	b.WriteString("\n")

	b.WriteString(usageStyle.Render(usageLine(m.page.Usage(), m.signedIn)))
	b.WriteString("\n\n")

	if m.page.Usage().QuotaLow {
		b.WriteString(bannerStyle.Render(quotaBanner(m.page.Usage())))
		b.WriteString("\n\n")
	}

	if notice := m.page.Notice(); notice != "" {
		b.WriteString(noticeStyle.Render(notice))
		b.WriteString("\n\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	for i, rec := range home.Recommendations {
		line := fmt.Sprintf("%s %s",
			commandStyle.Render(fmt.Sprintf("F%d", i+1)),
			commandDescStyle.Render(rec),
		)
		b.WriteString(menuItemStyle.Render(line))
		b.WriteString("\n")
	}

	if m.submitting {
		b.WriteString("\n")
		b.WriteString(infoStyle.Render("submitting..."))
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.err)))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: submit  F1-F4: use a suggestion  ctrl+b: menu  ctrl+c: quit"))

	main := b.String()
	if !m.page.SidebarExpanded() {
		return main
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarStyle.Render(m.sidebarView()), main)
}

func (m *Model) sidebarView() string {
	var b strings.Builder

	b.WriteString(commandStyle.Render("menu"))
	b.WriteString("\n\n")

	for i, item := range home.SidebarRoutes {
		if i == m.sidebarItem {
			b.WriteString(menuItemSelectedStyle.Render(item.Label))
		} else {
			b.WriteString(menuItemStyle.Render(item.Label))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) builderView() string {
	prompt := ""
	if m.builder != nil {
		prompt = m.builder.Prompt
	}

	md := fmt.Sprintf("# Builder\n\nBuilding from your prompt:\n\n> %s\n", prompt)
	return m.render(md) + helpStyle.Render("esc: back to home")
}

func (m *Model) destinationView() string {
	if m.destination == home.RoutePricing {
		return m.render(pricingMarkdown) + helpStyle.Render("esc: back to home")
	}

	title := m.destination
	for _, item := range home.SidebarRoutes {
		if item.Route == m.destination {
			title = item.Label
		}
	}

	return m.render(fmt.Sprintf("# %s\n\nNothing here yet.\n", title)) + helpStyle.Render("esc: back to home")
}

// renders markdown, falling back to the raw text
func (m *Model) render(md string) string {
	if m.renderer == nil {
		width := m.width
		if width <= 0 {
			width = 80
		}

		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width-4),
		)
		if err != nil {
			return md
		}
		m.renderer = renderer
	}

	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}

	return out
}

func usageLine(view usage.View, signedIn bool) string {
	who := "not signed in"
	if signedIn {
		who = "signed in"
	}

	if view.Unlimited {
		return fmt.Sprintf("%s plan, unlimited prompts (%s)", view.Tier, who)
	}

	return fmt.Sprintf("free plan, %d prompts left (%s)", view.RemainingTokens, who)
}

func quotaBanner(view usage.View) string {
	if view.RemainingTokens <= 0 {
		return "You're out of free prompts. Upgrade to keep building."
	}

	return fmt.Sprintf("Only %d free prompt left. Upgrade for unlimited prompts.", view.RemainingTokens)
}
