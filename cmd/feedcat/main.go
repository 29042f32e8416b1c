// Command feedcat is a conformance-harness binary: it feeds a byte
// stream through a terminal.Terminal and dumps the resulting rendered
// lines, in the spirit of the teacher's cli/example and
// examples/buffer-only mains.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kovidgoyal/kittycore/internal/selection"
	"github.com/kovidgoyal/kittycore/internal/termlog"
	"github.com/kovidgoyal/kittycore/terminal"
)

var (
	flagCols       int
	flagRows       int
	flagHistory    int
	flagConfigPath string
	flagVerbose    bool
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedcat [file]",
		Short: "Feed a byte stream through the terminal core and print rendered lines",
		Long: "feedcat parses VT/ANSI/xterm escape sequences from a file (or stdin) through\n" +
			"the core Screen and prints the resulting grid, one rendered line per row.\n" +
			"It exists to exercise and eyeball the core's conformance, not as a real\n" +
			"terminal emulator front-end.",
		Args: cobra.MaximumNArgs(1),
		RunE: runFeedcat,
	}
	cmd.Flags().IntVar(&flagCols, "cols", 80, "terminal width in columns")
	cmd.Flags().IntVar(&flagRows, "rows", 24, "terminal height in rows")
	cmd.Flags().IntVar(&flagHistory, "history", 1000, "scrollback capacity in lines")
	cmd.Flags().StringVar(&flagConfigPath, "config", "", "optional YAML word-class config file")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "log diagnostics to stderr")
	return cmd
}

func runFeedcat(cmd *cobra.Command, args []string) error {
	log := termlog.Nop()
	if flagVerbose {
		log = termlog.NewConsole(os.Stderr, 0)
	}

	wordCfg, err := loadWordClassConfig(flagConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	selCfg := selection.Config{}
	if wordCfg.ExtraWordChars != "" {
		extra := wordCfg.ExtraWordChars
		selCfg.IsWordChar = func(r rune) bool {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
				return true
			}
			return strings.ContainsRune(extra, r)
		}
	}

	var src io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		src = f
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	log.Info().Int("bytes", len(data)).Int("cols", flagCols).Int("rows", flagRows).Msg("feeding terminal")

	term := terminal.New(terminal.Options{
		Columns: flagCols, Rows: flagRows, HistorySize: flagHistory,
		SelectionConfig: selCfg,
		Callbacks: terminal.Callbacks{
			WriteToChild: func(b []byte) { log.Debug().Bytes("reply", b).Msg("write_to_child") },
			SetTitle:     func(t string) { log.Debug().Str("title", t).Msg("set_title") },
		},
	})
	term.Feed(data)

	out := cmd.OutOrStdout()
	for y := 0; y < term.Rows(); y++ {
		line := term.VisualLine(y)
		var b strings.Builder
		for _, c := range line.Cells {
			if c.Width == 0 {
				continue
			}
			if c.Text == "" {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(c.Text)
		}
		fmt.Fprintln(out, strings.TrimRight(b.String(), " "))
	}

	ci := term.CursorRenderInfo()
	fmt.Fprintf(out, "cursor: (%d,%d) visible=%v\n", ci.X, ci.Y, ci.Visible)
	return nil
}
