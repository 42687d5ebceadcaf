package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/wgsafe/backend/trace"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	indexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Width(5).
			Align(lipgloss.Right)

	opStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	argStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	leakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

// printTrace prints the recorded native calls, one per line.
func printTrace(t *trace.API) {
	calls := t.Calls()
	fmt.Println(titleStyle.Render(fmt.Sprintf("native calls (%d)", len(calls))))
	for i, c := range calls {
		line := opStyle.Render(c.Op) + argStyle.Render(strings.TrimPrefix(c.String(), c.Op))
		fmt.Println(indexStyle.Render(fmt.Sprint(i)) + "  " + line)
	}
	if n := t.Live(); n > 0 {
		fmt.Println(leakStyle.Render(fmt.Sprintf("%d IDs still live", n)))
	}
}
