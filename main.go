package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"museum-booking-cli/service"
	"museum-booking-cli/tui"
)

const appName = "museum-booking-cli"

var (
	version = "dev"
	commit  = "none"
)

func printVersion() {
	fmt.Printf("%s %s", appName, version)
	if commit != "none" && commit != "" {
		fmt.Printf(" (%s)", commit)
	}
	fmt.Println()
}

// newLogger writes diagnostics to a file since the TUI owns the terminal.
// Without a usable log file everything is discarded.
func newLogger() zerolog.Logger {
	path := os.Getenv("MUSEUM_DEBUG_LOG")
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return zerolog.Nop()
		}
		path = filepath.Join(dir, appName, "debug.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop()
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop()
	}
	return zerolog.New(file).With().Timestamp().Logger()
}

func main() {
	gateway := flag.String("gateway", os.Getenv("MUSEUM_GATEWAY_URL"), "booking gateway base URL")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}

	log := newLogger()
	client := service.NewClient(nil, *gateway, log)
	feed := service.NewEventFeed()
	defer feed.Close()

	if _, err := tea.NewProgram(tui.New(client, feed.Events(), log), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
