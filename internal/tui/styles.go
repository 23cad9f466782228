package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorLightGray = lipgloss.Color("#CCCCCC")
	colorGray      = lipgloss.Color("#888888")
	colorDarkGray  = lipgloss.Color("#444444")
	colorPurple    = lipgloss.Color("#8524a6")
	colorYellow    = lipgloss.Color("#FFCC00")
	colorRed       = lipgloss.Color("#FF5555")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			Align(lipgloss.Center).
			MarginTop(1).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			Align(lipgloss.Center).
			MarginBottom(1)

	menuItemStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			PaddingLeft(2)

	menuItemSelectedStyle = lipgloss.NewStyle().
				Foreground(colorWhite).
				Bold(true).
				PaddingLeft(1).
				BorderStyle(lipgloss.NormalBorder()).
				BorderLeft(true).
				BorderForeground(colorPurple)

	commandStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	commandDescStyle = lipgloss.NewStyle().
				Foreground(colorGray).
				PaddingLeft(1)

	sidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(colorDarkGray).
			PaddingRight(2).
			MarginRight(2)

	usageStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			Italic(true)

	bannerStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorYellow).
			Padding(0, 1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDarkGray).
			Italic(true).
			MarginTop(1)
)

const logo = `
  ██████╗  ██████╗ ██╗  ████████╗   ███╗   ██╗███████╗██╗    ██╗███████╗██████╗
  ██╔══██╗██╔═══██╗██║  ╚══██╔══╝   ████╗  ██║██╔════╝██║    ██║██╔════╝██╔══██╗
  ██████╔╝██║   ██║██║     ██║      ██╔██╗ ██║█████╗  ██║ █╗ ██║█████╗  ██████╔╝
  ██╔══██╗██║   ██║██║     ██║      ██║╚██╗██║██╔══╝  ██║███╗██║██╔══╝  ██╔══██╗
  ██████╔╝╚██████╔╝███████╗██║   ██╗██║ ╚████║███████╗╚███╔███╔╝███████╗██║  ██║
  ╚═════╝  ╚═════╝ ╚══════╝╚═╝   ╚═╝╚═╝  ╚═══╝╚══════╝ ╚══╝╚══╝ ╚══════╝╚═╝  ╚═╝
`
