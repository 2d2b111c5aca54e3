package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gravity-maze/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	Long:  `Shows every built-in and user level with its size and best time.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	a := setup(logDiscard)
	a.openStore(false)
	defer a.close(a.services(false))

	if len(a.levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, l := range a.levels {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxTitleLen = max(maxTitleLen, len(l.Title))
	}

	stats := map[string]*storage.LevelStats{}
	if a.store != nil {
		if all, err := a.store.AllStats(); err == nil {
			stats = all
		}
	}

	fmt.Printf("  %-*s  %-*s  %-9s  %-5s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Size", "Runs", "Best")
	fmt.Printf("  %-*s  %-*s  %-9s  %-5s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "----", "----", "----")

	for _, l := range a.levels {
		w, h := l.Size()
		runs, best := 0, "-"
		if st, ok := stats[l.ID]; ok {
			runs = st.Runs
			best = fmt.Sprintf("%.3fs", float64(st.BestMS)/1000)
		}
		fmt.Printf("  %-*s  %-*s  %-9s  %-5d  %s\n", maxIDLen, l.ID, maxTitleLen, l.Title, fmt.Sprintf("%dx%d", w, h), runs, best)
	}

	fmt.Println()
	fmt.Println("Run 'maze play <id>' to play a level.")
}
