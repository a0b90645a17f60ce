// FILE: cmd/clickchess/main.go

// Package main runs the local two-player chess game: two humans share
// one terminal and alternate clicking a source and destination square.
package main

import (
	"fmt"
	"io"
	"os"

	"clickchess/internal/board"
	"clickchess/internal/cli"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

func main() {
	view := cli.New(os.Stdout)

	// Color themes only make sense on a real terminal
	if term.IsTerminal(int(os.Stdout.Fd())) {
		view.SetTheme(cli.ThemeBrown)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".clickchess_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	model := board.New()

	view.ShowWelcome()
	view.DisplayBoard(model)
	view.ShowStatus(model)

	for {
		rl.SetPrompt(prompt(model))

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		cmd := view.ParseCommand(line)
		switch cmd.Type {
		case cli.CmdQuit:
			return

		case cli.CmdNone:
			if len(cmd.Args) > 0 {
				view.ShowMessage(fmt.Sprintf("Unknown command or square: %s (try 'help')", cmd.Args[0]))
			}

		case cli.CmdNew:
			model = board.New()
			view.ShowMessage("New game started.")
			view.DisplayBoard(model)
			view.ShowStatus(model)

		case cli.CmdBoard:
			view.DisplayBoard(model)
			view.ShowStatus(model)

		case cli.CmdColor:
			if len(cmd.Args) < 1 {
				view.ShowMessage("Usage: color <off|brown|green|gray>")
				continue
			}
			if err := view.SetTheme(cli.ColorTheme(cmd.Args[0])); err != nil {
				view.ShowError(err)
				continue
			}
			view.DisplayBoard(model)

		case cli.CmdHelp:
			view.ShowHelp()

		case cli.CmdClick:
			model.SelectSquare(cmd.Coord)
			view.DisplayBoard(model)
			view.ShowStatus(model)
			if model.GameOver() {
				view.ShowMessage("Start a new game with 'new'.")
			}
		}
	}
}

// prompt shows whose click is expected and whether a source is armed.
func prompt(m *board.Model) string {
	if m.GameOver() {
		return "[game over]> "
	}
	if _, selected := m.Selection(); selected {
		return fmt.Sprintf("[%c: to]> ", m.Turn())
	}
	return fmt.Sprintf("[%c: from]> ", m.Turn())
}
