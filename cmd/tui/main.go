package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"github.com/Muneerali199/website-builder/internal/config"
	"github.com/Muneerali199/website-builder/internal/logger"
	"github.com/Muneerali199/website-builder/internal/tui"
)

func main() {
	if !term.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "boltnewer needs an interactive terminal")
		os.Exit(1)
	}

	// log lines would corrupt the alt screen
	logger.SetDefault(logger.New("development", "error", io.Discard))

	if err := run(); err != nil {
		fmt.Printf("error running boltnewer: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := tui.NewApp(config.LoadClientConfig())
	defer app.Close()

	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
