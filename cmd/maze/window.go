package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gravity-maze/internal/games/mazegame"
	"github.com/vovakirdan/gravity-maze/internal/levels"
	"github.com/vovakirdan/gravity-maze/internal/platform/gui"
)

var flagScale int

var windowCmd = &cobra.Command{
	Use:   "window [level]",
	Short: "Play in a desktop window",
	Long: `Open a level in a desktop window at its native world size.

Controls are the same as in the terminal; buttons highlight under the
mouse. The default level is "gravity".

Examples:
  maze window
  maze window gravity --scale 2`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagScale, "scale", gui.DefaultScale, "Window size multiplier")
}

func runWindow(_ *cobra.Command, args []string) {
	a := setup(logStderr)

	id := levels.DefaultID
	if len(args) > 0 {
		id = args[0]
	}
	level, ok := levels.Find(a.levels, id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'maze list' to see available levels.")
		os.Exit(1)
	}

	a.openStore(false)
	svc := a.services(true)
	defer a.close(svc)

	game := mazegame.New(level, mazegame.OptionsFromConfig(a.cfg))
	w, h := level.Size()
	if err := gui.Run(game, svc, a.runtimeConfig(w, h), flagScale); err != nil {
		a.close(svc)
		fatalf("Error running window: %v\n", err)
	}
}
