// FILE: internal/cli/cli.go
package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"clickchess/internal/board"
	"clickchess/internal/core"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdClick
	CmdNew
	CmdBoard
	CmdColor
	CmdHelp
	CmdQuit
)

type Command struct {
	Type  CommandType
	Coord core.Coord // set for CmdClick
	Args  []string
}

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg     string
	darkBg      string
	selectedBg  string
	white       string
	black       string
	reset       string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg:    "\033[48;5;230m", // Beige
		darkBg:     "\033[48;5;94m",  // Brown
		selectedBg: "\033[48;5;226m", // Yellow highlight
		white:      "\033[97m",
		black:      "\033[30m",
		reset:      "\033[0m",
	},
	ThemeGreen: {
		lightBg:    "\033[48;5;157m", // Light green
		darkBg:     "\033[48;5;22m",  // Dark green
		selectedBg: "\033[48;5;226m",
		white:      "\033[97m",
		black:      "\033[30m",
		reset:      "\033[0m",
	},
	ThemeGray: {
		lightBg:    "\033[48;5;251m", // Light gray
		darkBg:     "\033[48;5;240m", // Dark gray
		selectedBg: "\033[48;5;226m",
		white:      "\033[97m",
		black:      "\033[30m",
		reset:      "\033[0m",
	},
}

// CLI renders the board and parses player input. It only ever calls
// the board's read-only queries.
type CLI struct {
	output io.Writer
	theme  ColorTheme
}

func New(output io.Writer) *CLI {
	return &CLI{
		output: output,
		theme:  ThemeOff,
	}
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

// ParseCommand turns one input line into a command. A bare square
// ("e2" or "4,6") is a click.
func (c *CLI) ParseCommand(input string) *Command {
	parts := strings.Fields(strings.TrimSpace(input))
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "new":
		return &Command{Type: CmdNew}
	case "board":
		return &Command{Type: CmdBoard}
	case "color":
		return &Command{Type: CmdColor, Args: args}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "quit", "exit":
		return &Command{Type: CmdQuit}
	default:
		if coord, ok := ParseSquare(cmd); ok {
			return &Command{Type: CmdClick, Coord: coord}
		}
		return &Command{Type: CmdNone, Args: []string{cmd}}
	}
}

// ParseSquare accepts algebraic ("e2") or numeric ("4,6") squares.
// Algebraic rank 1 is the bottom row, so y = 8 - rank.
func ParseSquare(s string) (core.Coord, bool) {
	s = strings.ToLower(strings.TrimSpace(s))

	if x, y, ok := strings.Cut(s, ","); ok {
		xi, errX := strconv.Atoi(strings.TrimSpace(x))
		yi, errY := strconv.Atoi(strings.TrimSpace(y))
		if errX != nil || errY != nil {
			return core.Coord{}, false
		}
		coord := core.Coord{X: xi, Y: yi}
		return coord, coord.InBounds()
	}

	if len(s) != 2 {
		return core.Coord{}, false
	}
	if s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return core.Coord{}, false
	}
	return core.Coord{X: int(s[0] - 'a'), Y: 8 - int(s[1]-'0')}, true
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(fmt.Sprintf("Error: %v", err))
}

// DisplayBoard renders the position with the current theme. The armed
// selection square is highlighted so the player sees the first click.
func (c *CLI) DisplayBoard(m *board.Model) {
	theme := themes[c.theme]
	selection, selected := m.Selection()

	var sb strings.Builder
	sb.WriteString("\n  a b c d e f g h\n")

	for y := 0; y < 8; y++ {
		sb.WriteString(fmt.Sprintf("%d ", 8-y))
		for x := 0; x < 8; x++ {
			coord := core.Coord{X: x, Y: y}
			piece, occupied := m.PieceAt(coord)

			if c.theme == ThemeOff {
				if selected && coord == selection {
					sb.WriteString(fmt.Sprintf("[%s", piece.Symbol()))
				} else if occupied {
					sb.WriteString(fmt.Sprintf("%s ", piece.Symbol()))
				} else {
					sb.WriteString(". ")
				}
				continue
			}

			bg := theme.darkBg
			if (x+y)%2 == 0 {
				bg = theme.lightBg
			}
			if selected && coord == selection {
				bg = theme.selectedBg
			}

			if !occupied {
				sb.WriteString(fmt.Sprintf("%s  %s", bg, theme.reset))
			} else {
				color := theme.black
				if piece.Owner == core.ColorWhite {
					color = theme.white
				}
				sb.WriteString(fmt.Sprintf("%s%s%s %s", bg, color, piece.Symbol(), theme.reset))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", 8-y))
	}
	sb.WriteString("  a b c d e f g h\n")

	c.ShowMessage(sb.String())
}

// ShowStatus prints the title-bar line: whose move, or who won.
func (c *CLI) ShowStatus(m *board.Model) {
	c.ShowMessage("Chess: " + m.Status())
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  <square>         - Click a square (e.g. e2, or 4,6 as x,y)
                     First click picks a piece, second click moves it.
                     Any failed second click clears the selection.
  new              - Start a new game
  board            - Redraw the board
  color <theme>    - Set board color theme (off|brown|green|gray)
  quit/exit        - Exit the program
  help/?           - Show this help message`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage("Welcome to Chess!")
	c.ShowMessage("Two players share this terminal. White moves first.")
	c.ShowMessage("Type a square (e.g. e2) to pick a piece, then a destination (e.g. e3).")
	c.ShowMessage("Type 'help' for all commands.")
	c.ShowMessage("")
}
