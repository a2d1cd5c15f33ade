package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"gitprompt/internal/promptconfig"
	"gitprompt/internal/render"
	"gitprompt/internal/repo"
)

// terminalWidth reports the current width of stdout, or 0 when stdout isn't
// a terminal (piped output, redirected to a file) — the same IsTerminal gate
// cmd/git_list.go uses before trusting a terminal query.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Trace configuration node evaluation against the current repository",
	Long: `doctor evaluates the active configuration the same way the root command
does, but prints one row per node instead of the collapsed prompt string:
its type, its formatting, the value it resolved to, and whether it was
emitted into the final output. Useful for debugging a custom config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := promptconfig.Load(configPath)
		if err != nil {
			return err
		}

		h, ok := repo.Probe(".")
		if !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), "not a git repository; every node evaluates empty")
		}

		rows := render.Trace(doc, h)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Type", "Pre", "Post", "Value", "Emitted"})
		for _, r := range rows {
			t.AppendRow(table.Row{strings.Repeat("  ", r.Depth) + r.Type, r.Pre, r.Post, r.Value, strconv.FormatBool(r.Emitted)})
		}
		if width := terminalWidth(); width > 0 {
			t.SetAllowedRowLength(width)
			t.SetStyle(table.StyleRounded)
		} else {
			t.SetStyle(table.StyleDefault)
		}
		t.Render()
		return nil
	},
}
