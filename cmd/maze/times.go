package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gravity-maze/internal/platform/tui"
)

var (
	flagTimesLimit  int
	flagTimesClear  bool
	flagTimesStats  bool
	flagTimesPlayer string
)

var timesCmd = &cobra.Command{
	Use:   "times [level]",
	Short: "Show best times",
	Long: `Display the fastest runs for a level. Without a level, opens the
interactive times board in the terminal.

Examples:
  maze times
  maze times gravity
  maze times gravity --limit 25
  maze times gravity --stats
  maze times gravity --clear
  maze times --player alice`,
	Args: cobra.MaximumNArgs(1),
	Run:  runTimes,
}

func init() {
	timesCmd.Flags().IntVar(&flagTimesLimit, "limit", 10, "Number of runs to show")
	timesCmd.Flags().BoolVar(&flagTimesClear, "clear", false, "Delete every recorded run for the level")
	timesCmd.Flags().BoolVar(&flagTimesStats, "stats", false, "Show run count and average time")
	timesCmd.Flags().StringVar(&flagTimesPlayer, "player", "", "Show one player's most recent runs")
}

func runTimes(_ *cobra.Command, args []string) {
	a := setup(logDiscard)
	a.openStore(true)
	defer a.close(a.services(false))

	if flagTimesPlayer != "" {
		printHistory(a, flagTimesPlayer)
		return
	}

	if len(args) == 0 {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if err := tui.RunTimes(a.reg, a.store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	levelID := args[0]
	if !a.reg.Exists(levelID) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'maze list' to see available levels.")
		return
	}

	if flagTimesClear {
		if err := a.store.ClearTimes(levelID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing times: %v\n", err)
			return
		}
		fmt.Printf("Cleared all times for %s.\n", levelID)
		return
	}

	runs, err := a.store.TopTimes(levelID, flagTimesLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving times: %v\n", err)
		return
	}

	fmt.Printf("Best Times - %s\n", levelID)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'maze play %s' to set the first time!\n", levelID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-12s  %s\n", "Rank", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-10s  %-12s  %s\n", "----", "----", "------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-10s  %-12s  %s\n",
			i+1,
			fmt.Sprintf("%.3fs", float64(r.ElapsedMS)/1000),
			r.Player,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	if flagTimesStats {
		st, err := a.store.Stats(levelID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
			return
		}
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %.3fs  Average: %.3fs\n",
			st.Runs, float64(st.BestMS)/1000, st.AvgMS/1000)
	}
}

func printHistory(a *app, player string) {
	runs, err := a.store.PlayerHistory(player, flagTimesLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		return
	}

	fmt.Printf("Recent Runs - %s\n", player)
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-10s  %s\n", "Level", "Time", "Date")
	fmt.Printf("  %-16s  %-10s  %s\n", "-----", "----", "----")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-10s  %s\n",
			r.LevelID,
			fmt.Sprintf("%.3fs", float64(r.ElapsedMS)/1000),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
}
