package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"splitkit/pkg/sink"
	"splitkit/pkg/tree"
	"splitkit/pkg/ui"
)

var treeFlags struct {
	depth    int
	dirsOnly bool
	fence    bool
	root     bool
	out      string
	print    bool
}

var treeCmd = &cobra.Command{
	Use:   "tree [directory...]",
	Short: "Write the directory structure as a tree",
	Long: `Render the directory structure below the given directories, or the working
directory, with box-drawing connectors. By default only directories two
levels deep are listed, wrapped in a code fence, and written to zzz.md in
the working directory.`,
	Example: `  splitkit tree
  splitkit tree src --depth 0 --dirs-only=false --print`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		targets := args
		if len(targets) == 0 {
			targets = []string{root}
		}

		opts := tree.Options{
			MaxDepth: cfg.Tree.MaxDepth,
			DirsOnly: cfg.Tree.DirsOnly,
			Fence:    cfg.Tree.Fence,
			ShowRoot: treeFlags.root,
		}
		flags := cmd.Flags()
		if flags.Changed("depth") {
			opts.MaxDepth = treeFlags.depth
		}
		if flags.Changed("dirs-only") {
			opts.DirsOnly = treeFlags.dirsOnly
		}
		if flags.Changed("fence") {
			opts.Fence = treeFlags.fence
		}

		rules, err := loadIgnoreRules(cfg.Tree.IgnoreNames)
		if err != nil {
			return err
		}
		stop := startSpinner("Scanning directories...")
		result, err := tree.Render(targets, opts, rules, logger)
		stop()
		if err != nil && result.Dirs+result.Files == 0 {
			return err
		}

		w := cmd.OutOrStdout()
		if treeFlags.print {
			fmt.Fprintln(w, result.Text)
			return reportErrors(cmd.ErrOrStderr(), err)
		}

		dest := treeFlags.out
		if dest == "" {
			dest = filepath.Join(root, cfg.Tree.OutputFile)
		}
		out, sinkErr := sink.New(sink.Options{OutputDir: filepath.Dir(dest)}, logger)
		if sinkErr != nil {
			return sinkErr
		}
		path, writeErr := out.WriteFile(cmd.Context(), filepath.Base(dest), []byte(result.Text))
		if writeErr != nil {
			return writeErr
		}
		fmt.Fprintln(w, ui.Info.Sprint("📁")+" "+ui.Muted.Sprintf("%d directories, %d files", result.Dirs, result.Files))
		fmt.Fprintln(w, ui.Done("Folder structure saved to %s", ui.Path.Sprint(path)))
		return reportErrors(cmd.ErrOrStderr(), err)
	},
}

func init() {
	treeCmd.Flags().IntVarP(&treeFlags.depth, "depth", "d", 2, "levels to descend, 0 for unlimited (default from config)")
	treeCmd.Flags().BoolVar(&treeFlags.dirsOnly, "dirs-only", true, "list directories only (default from config)")
	treeCmd.Flags().BoolVar(&treeFlags.fence, "fence", true, "wrap the tree in a code fence (default from config)")
	treeCmd.Flags().BoolVar(&treeFlags.root, "root", false, "print each input directory as the tree root")
	treeCmd.Flags().StringVarP(&treeFlags.out, "out", "o", "", "output file (default ./zzz.md)")
	treeCmd.Flags().BoolVarP(&treeFlags.print, "print", "p", false, "print the tree instead of writing a file")
	RootCmd.AddCommand(treeCmd)
}
