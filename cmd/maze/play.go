package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gravity-maze/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play in the terminal",
	Long: `Play a level in the terminal. Without a level, a picker lists every
level with its best time; finished games return to it.

Controls:
  Arrows/WASD  - Move (diagonals combine)
  Enter/Space  - Press the focused button
  Mouse click  - Press a button
  P/Esc        - Pause
  R            - Restart the run
  B            - Back to the title screen
  Q/Ctrl+C     - Quit
  Ctrl+S       - Save a text screenshot

Examples:
  maze play
  maze play gravity
  maze play gravity --speed turbo --mute`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	a := setup(logDiscard)
	a.openStore(false)
	svc := a.services(true)
	defer a.close(svc)

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	cfg := a.runtimeConfig(width, height)

	var err error
	if len(args) == 0 {
		err = tui.RunSession(a.reg, svc, cfg)
	} else {
		game, createErr := a.reg.Create(args[0])
		if createErr != nil {
			fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'maze list' to see available levels.")
			a.close(svc)
			os.Exit(1)
		}
		err = tui.Run(game, svc, cfg)
	}

	if err != nil {
		a.close(svc)
		fatalf("Error running game: %v\n", err)
	}
}
