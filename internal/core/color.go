package core

// Color represents a foreground color for a screen cell.
// Values are semantic; each frontend maps them to terminal or RGB colors.
type Color uint8

// Palette used by the maze renderers.
const (
	ColorDefault Color = iota
	ColorWall          // green walls
	ColorGoal          // orange-red goal tile
	ColorPlayer        // blue player sprite
	ColorButtonPlay    // red "Play" and "Exit" buttons
	ColorButtonMenu    // green "Main Menu" button
	ColorTitle         // title and banner text
	ColorTrophy        // gold trophy
	ColorMuted         // hints and separators
)
