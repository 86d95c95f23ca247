package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/NeoGalaxy/terminity/internal/game"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every game bundled with this terminity build.`,
	Run:   runList,
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

func runList(cmd *cobra.Command, args []string) {
	reg := buildRegistry()
	defer reg.Clear()
	printGameList(os.Stdout, reg.List())
}

func printGameList(w io.Writer, games []game.Info) {
	if len(games) == 0 {
		fmt.Fprintln(w, "No games available.")
		return
	}

	maxNameLen := len("Name")
	for _, info := range games {
		if len(info.Name) > maxNameLen {
			maxNameLen = len(info.Name)
		}
	}

	// Pad before styling; ANSI escapes would throw off %-*s widths.
	fmt.Fprintln(w, headerStyle.Render("Available games"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s  %s\n",
		headerStyle.Render(fmt.Sprintf("%-*s", maxNameLen, "Name")),
		headerStyle.Render("Title"))
	for _, info := range games {
		fmt.Fprintf(w, "  %s  %s\n",
			nameStyle.Render(fmt.Sprintf("%-*s", maxNameLen, info.Name)),
			info.Title)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, faintStyle.Render("Run 'terminity run <name>' to play."))
}
