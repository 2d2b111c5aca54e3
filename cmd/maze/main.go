// maze is a timed maze game for the terminal, a desktop window, or a
// shared SSH server.
//
// Usage:
//
//	maze play [level]      - Play in the terminal (no level opens the picker)
//	maze window [level]    - Play in a desktop window
//	maze list              - List levels with their best times
//	maze times [level]     - Show best times
//	maze serve             - Start the SSH server and the leaderboard API
//
// Global flags:
//
//	--fps <rate>         - Simulation tick rate (default: 100)
//	--db <path>          - Times database (default: ~/.maze/times.db)
//	--config <path>      - Game config YAML
//	--speed <preset>     - normal, fast or turbo
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
//	--mute               - Disable audio
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gravity-maze/internal/core"
)

var (
	flagFPS      int
	flagDBPath   string
	flagConfig   string
	flagSpeed    string
	flagLogLevel string
	flagLogFile  string
	flagMute     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "maze",
	Short: "Gravity Maze - find the exit against the clock",
	Long: `Gravity Maze is a small maze game. Walk the blue square from the start
to the orange goal; walls block each axis separately, so you can slide
along them. Every finished run is timed and kept on a leaderboard.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  list     - Show all levels
  times    - View best times
  serve    - Start the SSH server and leaderboard API

Examples:
  maze play
  maze play gravity --speed fast
  maze window
  maze times gravity
  maze serve --ssh :2222 --http :8080`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultTickRate, "Tick rate (simulation steps per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.maze/times.db", "Path to times database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Speed preset: normal, fast, turbo")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable music and sound effects")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(timesCmd)
	rootCmd.AddCommand(serveCmd)
}
