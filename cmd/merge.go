package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"splitkit/pkg/collect"
	"splitkit/pkg/merge"
	"splitkit/pkg/sink"
	"splitkit/pkg/tree"
	"splitkit/pkg/ui"
)

var mergeFlags struct {
	out         string
	noHeader    bool
	headerLevel int
	withTree    bool
}

var mergeCmd = &cobra.Command{
	Use:   "merge [directory...]",
	Short: "Merge documentation files into a single markdown file",
	Long: `Collect every file with a configured documentation extension (.md and .txt
by default) below the given directories, or the working directory, and
concatenate them in path order. Each document gets a "# File: <path>"
heading and is followed by a horizontal rule.`,
	Example: `  splitkit merge docs guides --header-level 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		root, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		targets := args
		if len(targets) == 0 {
			targets = []string{root}
		}

		dest := mergeFlags.out
		if dest == "" {
			dest = filepath.Join(cfg.OutputDir, cfg.Merge.OutputFile)
		}
		rules, err := loadIgnoreRules(cfg.Merge.IgnoreDirs)
		if err != nil {
			return err
		}
		extensions := make(map[string]string, len(cfg.Merge.Extensions))
		for _, ext := range cfg.Merge.Extensions {
			extensions[ext] = ext
		}

		collected, collectErr := collect.Files(ctx, targets, collect.Options{
			Extensions:    extensions,
			Ignore:        rules,
			MaxFileSizeKB: cfg.Files.MaxFileSizeKB,
			Verbose:       verbose,
		}, logger)
		collected.Regular = withoutOutputs(collected.Regular, dest)
		// Missing directories are skipped with a warning.
		for _, e := range multierr.Errors(collectErr) {
			logger.Debug("Skipping input", zap.Error(e))
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Warn("%v", e))
		}

		stop := startSpinner(fmt.Sprintf("Merging %d files...", len(collected.Regular)))
		contents, readErr := collect.ReadAll(ctx, collected.Regular, root, cfg.Files.MaxWorkers, logger)
		stop()

		opts := merge.Options{IncludeHeader: cfg.Merge.IncludeHeader && !mergeFlags.noHeader, HeaderLevel: cfg.Merge.HeaderLevel}
		if cmd.Flags().Changed("header-level") {
			opts.HeaderLevel = mergeFlags.headerLevel
		}
		text, err := merge.Documents(contents, opts)
		if err != nil {
			return multierr.Append(err, readErr)
		}
		if mergeFlags.withTree {
			result, treeErr := tree.Render(targets, tree.Options{MaxDepth: cfg.Tree.MaxDepth, Fence: true}, rules, logger)
			if treeErr != nil {
				logger.Warn("Tree is incomplete", zap.Error(treeErr))
			}
			text = result.Text + "\n\n" + text
		}

		out, err := sink.New(sink.Options{OutputDir: filepath.Dir(dest)}, logger)
		if err != nil {
			return err
		}
		path, err := out.WriteFile(ctx, filepath.Base(dest), []byte(text))
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if verbose {
			for _, c := range contents {
				fmt.Fprintln(w, ui.Info.Sprint("•")+" Added "+ui.Path.Sprint(c.Rel))
			}
		}
		fmt.Fprintln(w, ui.Done("Merged %d files into %s", len(contents), ui.Path.Sprint(path)))
		return reportErrors(cmd.ErrOrStderr(), readErr)
	},
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeFlags.out, "out", "o", "", "output file (default <output_dir>/AllDocs.md)")
	mergeCmd.Flags().BoolVar(&mergeFlags.noHeader, "no-header", false, "do not add a File: heading before each document")
	mergeCmd.Flags().IntVar(&mergeFlags.headerLevel, "header-level", 1, "heading level of the File: heading")
	mergeCmd.Flags().BoolVar(&mergeFlags.withTree, "with-tree", false, "start the output with the directory tree of the inputs")
	RootCmd.AddCommand(mergeCmd)
}
