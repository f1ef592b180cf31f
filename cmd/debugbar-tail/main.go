// Command debugbar-tail is a live terminal viewer over the debugbar
// capture archive. It requires the sqlite log sink to be enabled in the
// instrumented application.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/okiba/debugbar/internal/archive"
	"github.com/okiba/debugbar/internal/config"
	"github.com/okiba/debugbar/internal/tailui"
)

func main() {
	dbFlag := flag.String("db", "", "Archive database path (default: from config)")
	limitFlag := flag.Int("limit", 200, "Maximum entries fetched per refresh")
	refreshFlag := flag.Duration("refresh", time.Second, "Polling interval")
	flag.Parse()

	loadResult, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "debugbar-tail: config error: %v\n", err)
		os.Exit(1)
	}
	for _, w := range loadResult.Warnings {
		fmt.Fprintf(os.Stderr, "debugbar-tail: config warning: %s\n", w)
	}

	dbPath := loadResult.Config.Archive.DBPath
	if *dbFlag != "" {
		dbPath = *dbFlag
	}

	store, err := archive.Open(dbPath, loadResult.Config.Archive.RetentionDays)
	if err != nil {
		fmt.Fprintf(os.Stderr, "debugbar-tail: archive error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	model := tailui.NewModel(store,
		tailui.WithLimit(*limitFlag),
		tailui.WithRefreshRate(*refreshFlag),
	)

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "debugbar-tail: %v\n", err)
		os.Exit(1)
	}
}
