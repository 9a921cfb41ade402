package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"splitkit/pkg/sink"
	"splitkit/pkg/source"
	"splitkit/pkg/splitter"
	"splitkit/pkg/ui"
)

var markdownFlags struct {
	maxLines int
	out      string
	header   bool
	footer   bool
}

var markdownCmd = &cobra.Command{
	Use:     "markdown <file|->",
	Aliases: []string{"md"},
	Short:   "Split a markdown document without breaking code blocks or headings",
	Long: `Split a markdown document into parts of roughly --max-lines lines.

A part that would end inside a fenced code block is extended to the closing
fence. A part that would end on a heading is extended so the heading stays
with its section. Parts are written to <output_dir> as <name>_part_<n>.md.
Use "-" to read from standard input.`,
	Example: `  splitkit md guide.md --max-lines 400
  cat guide.md | splitkit markdown - --out parts`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		max, err := threshold(cmd, "max-lines", markdownFlags.maxLines, cfg.Split.MaxLines)
		if err != nil {
			return err
		}
		out, err := sink.New(sink.Options{
			OutputDir: outputDir(markdownFlags.out, ""),
			Header:    markdownFlags.header,
			Footer:    markdownFlags.footer,
		}, logger)
		if err != nil {
			return err
		}

		run := splitRun{strategy: splitter.Markdown, threshold: max, out: out, ext: ".md", noun: "lines"}
		name := args[0]
		var n int
		if name == "-" {
			lines, err := source.FromReader(cmd.InOrStdin())
			if err != nil {
				return err
			}
			name = "stdin"
			n, err = run.splitLines(cmd.Context(), name, lines)
			if err != nil {
				return err
			}
		} else {
			n, err = run.splitFile(cmd.Context(), name)
			if err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Done("%s split into %d parts.", ui.Path.Sprint(name), n))
		fmt.Fprintln(cmd.OutOrStdout(), ui.Hint("Parts written to %s", ui.Path.Sprint(out.Root())))
		return nil
	},
}

func init() {
	markdownCmd.Flags().IntVarP(&markdownFlags.maxLines, "max-lines", "m", 0, "target lines per part (default from config, 700)")
	markdownCmd.Flags().StringVarP(&markdownFlags.out, "out", "o", "", "output directory (default from config)")
	markdownCmd.Flags().BoolVar(&markdownFlags.header, "header", false, "add a header line at the top of each part")
	markdownCmd.Flags().BoolVar(&markdownFlags.footer, "footer", false, "add a continuation message at the end of each part")
	RootCmd.AddCommand(markdownCmd)
}
