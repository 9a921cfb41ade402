package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"splitkit/pkg/bundle"
	"splitkit/pkg/collect"
	errs "splitkit/pkg/errors"
	"splitkit/pkg/sink"
	"splitkit/pkg/ui"
)

const bundleDir = "SeparatedByExtension"

var bundleFlags struct {
	exclude string
	copy    bool
	out     string
}

var bundleCmd = &cobra.Command{
	Use:   "bundle <file-or-directory>",
	Short: "Group source files into one markdown file per language",
	Long: `Recursively read a file or directory and write one <lang>_files.md per
language to <output_dir>/` + bundleDir + `. Each file becomes a "### name"
section holding a fenced code block.

With --copy, files are instead copied into one folder per extension
(no_ext for files without one).`,
	Example: `  splitkit bundle ./project --exclude js,md
  splitkit bundle ./project --copy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out, err := sink.New(sink.Options{OutputDir: outputDir(bundleFlags.out, bundleDir)}, logger)
		if err != nil {
			return err
		}
		rules, err := loadIgnoreRules(cfg.Files.IgnoreNames)
		if err != nil {
			return err
		}

		opts := collect.Options{Ignore: rules, MaxFileSizeKB: cfg.Files.MaxFileSizeKB, Verbose: verbose}
		if !bundleFlags.copy {
			opts.Extensions = cfg.Bundle.Languages
		}
		collected, err := collect.Files(ctx, args, opts, logger)
		if err != nil {
			return err
		}
		collected.Regular = withoutOutputs(collected.Regular, out.Root())
		collected.Binary = withoutOutputs(collected.Binary, out.Root())
		w := cmd.OutOrStdout()

		if bundleFlags.copy {
			files := append(append([]string{}, collected.Regular...), collected.Binary...)
			if len(files) == 0 {
				return fmt.Errorf("%s: %w", args[0], errs.ErrNoFilesFound)
			}
			stop := startSpinner(fmt.Sprintf("Copying %d files...", len(files)))
			copied, err := bundle.CopyByExtension(ctx, out, files, logger)
			stop()
			fmt.Fprintln(w, ui.Done("Copied %d files into %s", len(copied), ui.Path.Sprint(out.Root())))
			return reportErrors(cmd.ErrOrStderr(), err)
		}

		if len(collected.Regular) == 0 {
			return fmt.Errorf("%s: %w", args[0], errs.ErrNoFilesFound)
		}
		stop := startSpinner(fmt.Sprintf("Reading %d files...", len(collected.Regular)))
		contents, readErr := collect.ReadAll(ctx, collected.Regular, args[0], cfg.Files.MaxWorkers, logger)
		stop()

		exclude := cfg.Bundle.Exclude
		if cmd.Flags().Changed("exclude") {
			exclude = bundle.ParseExclude(bundleFlags.exclude)
		}
		bundles := bundle.ByLanguage(contents, cfg.Bundle.Languages, exclude)
		if len(bundles) == 0 {
			return fmt.Errorf("every file was excluded: %w", errs.ErrNoFilesFound)
		}
		_, writeErr := bundle.Write(ctx, out, bundles, logger)
		for _, b := range bundles {
			fmt.Fprintln(w, ui.Done("Created %s %s", ui.Path.Sprint(b.Name), ui.Muted.Sprintf("%d files", b.Files)))
		}
		return reportErrors(cmd.ErrOrStderr(), multierr.Append(readErr, writeErr))
	},
}

func init() {
	bundleCmd.Flags().StringVar(&bundleFlags.exclude, "exclude", "", "comma separated extensions or language names to leave out")
	bundleCmd.Flags().BoolVar(&bundleFlags.copy, "copy", false, "copy files into per-extension folders instead")
	bundleCmd.Flags().StringVarP(&bundleFlags.out, "out", "o", "", "output directory")
	RootCmd.AddCommand(bundleCmd)
}
