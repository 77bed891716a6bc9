// Package tui holds the terminal plumbing around the interactive browser:
// size detection and the Bubble Tea program runner.
package tui

import (
	"os"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

// defaultFallbackTermWidth is used when terminal size cannot be detected.
const defaultFallbackTermWidth = 120

// DetectTerminalSize returns the best-effort terminal width and height by
// probing stdout, stderr, and stdin, then falling back to the COLUMNS
// environment variable. If detection fails completely it returns generous
// defaults to avoid overly narrow output in CI or non-TTY environments.
func DetectTerminalSize() (width int, height int) {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, h, err := term.GetSize(int(fd)); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w, 0
		}
	}
	return defaultFallbackTermWidth, 24
}

// IsInteractive reports whether stdout is attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsTerminalFile reports whether the given file is attached to a terminal.
// The CLI uses it to tell piped stdin apart from an interactive session.
func IsTerminalFile(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Run starts a Bubble Tea program for the given model and blocks until it
// exits.
func Run(model tea.Model, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(model, opts...)
	_, err := p.Run()
	return err
}
