package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"splitkit/pkg/collect"
	errs "splitkit/pkg/errors"
	"splitkit/pkg/sink"
	"splitkit/pkg/source"
	"splitkit/pkg/splitter"
	"splitkit/pkg/ui"
)

// Output folders below the configured output root.
const (
	linesDir = "SplitByLines"
	charsDir = "SplitByCharacters"
)

// splitRun describes one invocation of a split command.
type splitRun struct {
	strategy  splitter.Strategy
	threshold int
	out       *sink.FS
	ext       string // forced part extension; empty keeps the input's
	noun      string // "lines" or "characters", for messages
}

// splitFile splits one file and writes its parts, returning how many were
// written.
func (r splitRun) splitFile(ctx context.Context, file string) (int, error) {
	lines, err := source.ReadLines(file)
	if err != nil {
		return 0, err
	}
	return r.splitLines(ctx, file, lines)
}

func (r splitRun) splitLines(ctx context.Context, name string, lines []string) (int, error) {
	bodies, err := splitter.Bodies(r.strategy, lines, r.threshold)
	if err != nil {
		return 0, fmt.Errorf("splitting %s: %w", name, err)
	}
	ext := r.ext
	if ext == "" {
		ext = filepath.Ext(name)
	}
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	paths, err := r.out.WriteParts(ctx, base, ext, bodies)
	logger.Debug("Split file",
		zap.String("file", name),
		zap.Stringer("strategy", r.strategy),
		zap.Int("threshold", r.threshold),
		zap.Int("parts", len(paths)))
	return len(paths), err
}

// splitPath collects the supported files at input and splits each one.
// A failing file does not stop the others.
func splitPath(cmd *cobra.Command, r splitRun, input string, recursive bool) error {
	ctx := cmd.Context()
	rules, err := loadIgnoreRules(cfg.Files.IgnoreNames)
	if err != nil {
		return err
	}
	opts := collect.Options{
		Extensions:    cfg.Files.Extensions,
		Ignore:        rules,
		MaxFileSizeKB: cfg.Files.MaxFileSizeKB,
		MaxDepth:      1,
		Verbose:       verbose,
	}
	if recursive {
		opts.MaxDepth = 0
	}

	collected, err := collect.Files(ctx, []string{input}, opts, logger)
	if err != nil {
		return err
	}
	collected.Regular = withoutOutputs(collected.Regular, r.out.Root())
	if len(collected.Regular) == 0 {
		if len(collected.Skipped) > 0 {
			return fmt.Errorf("%s is either unsupported or ignored: %w", input, collected.Skipped[0].Reason)
		}
		return fmt.Errorf("%s: %w", input, errs.ErrNoFilesFound)
	}

	stop := startSpinner(fmt.Sprintf("Splitting %d files by %s...", len(collected.Regular), r.noun))
	var (
		messages []string
		errList  error
	)
	for _, file := range collected.Regular {
		n, err := r.splitFile(ctx, file)
		if err != nil {
			errList = multierr.Append(errList, err)
			continue
		}
		messages = append(messages, ui.Done("%s split into %d parts.", ui.Path.Sprint(filepath.Base(file)), n))
	}
	stop()

	w := cmd.OutOrStdout()
	for _, m := range messages {
		fmt.Fprintln(w, m)
	}
	if len(collected.Binary) > 0 {
		fmt.Fprintln(w, ui.Muted.Sprintf("%d binary files skipped", len(collected.Binary)))
	}
	fmt.Fprintln(w, ui.Hint("Parts written to %s", ui.Path.Sprint(r.out.Root())))
	return reportErrors(cmd.ErrOrStderr(), errList)
}

// splitFlags are shared by the lines and chars commands.
type splitFlags struct {
	max       int
	header    bool
	footer    bool
	all       bool
	out       string
	recursive bool
}

func (f *splitFlags) register(cmd *cobra.Command, maxName, maxUsage string) {
	cmd.Flags().IntVarP(&f.max, maxName, "m", 0, maxUsage)
	cmd.Flags().BoolVar(&f.header, "header", false, "add a header line at the top of each part")
	cmd.Flags().BoolVar(&f.footer, "footer", false, "add a continuation message at the end of each part")
	cmd.Flags().BoolVar(&f.all, "all", false, "enable both --header and --footer")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output directory")
	cmd.Flags().BoolVarP(&f.recursive, "recursive", "r", false, "descend into subdirectories")
}

func (f *splitFlags) sink(subdir string) (*sink.FS, error) {
	return sink.New(sink.Options{
		OutputDir: outputDir(f.out, subdir),
		Header:    f.all || f.header || cfg.Split.Header,
		Footer:    f.all || f.footer || cfg.Split.Footer,
	}, logger)
}

// threshold returns the flag value when given, else the configured one.
func threshold(cmd *cobra.Command, name string, flagValue, configured int) (int, error) {
	if !cmd.Flags().Changed(name) {
		return configured, nil
	}
	if flagValue <= 0 {
		return 0, fmt.Errorf("--%s=%d: %w", name, flagValue, errs.ErrInvalidThreshold)
	}
	return flagValue, nil
}

var linesFlags splitFlags

var linesCmd = &cobra.Command{
	Use:   "lines <file-or-directory>",
	Short: "Split files into parts of a fixed number of lines",
	Long: `Split a file, or every supported file in a directory, into parts of at most
--max-lines lines. Parts are written to <output_dir>/` + linesDir + ` as
<name>_part_<n><ext>.`,
	Example: `  splitkit lines ./notes --max-lines 500 --all`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		max, err := threshold(cmd, "max-lines", linesFlags.max, cfg.Split.MaxLines)
		if err != nil {
			return err
		}
		out, err := linesFlags.sink(linesDir)
		if err != nil {
			return err
		}
		run := splitRun{strategy: splitter.FixedLines, threshold: max, out: out, noun: "lines"}
		return splitPath(cmd, run, args[0], linesFlags.recursive)
	},
}

var charsFlags splitFlags

var charsCmd = &cobra.Command{
	Use:     "chars <file-or-directory>",
	Aliases: []string{"characters"},
	Short:   "Split files into parts of at most a number of characters",
	Long: `Split a file, or every supported file in a directory, into parts of at most
--max-chars characters. Lines are never broken; a single line longer than the
limit becomes its own part. Parts are written to <output_dir>/` + charsDir + `.`,
	Example: `  splitkit chars ./notes --max-chars 4000 --footer`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		max, err := threshold(cmd, "max-chars", charsFlags.max, cfg.Split.MaxChars)
		if err != nil {
			return err
		}
		out, err := charsFlags.sink(charsDir)
		if err != nil {
			return err
		}
		run := splitRun{strategy: splitter.FixedChars, threshold: max, out: out, noun: "characters"}
		return splitPath(cmd, run, args[0], charsFlags.recursive)
	},
}

func init() {
	linesFlags.register(linesCmd, "max-lines", "maximum lines per part (default from config, 700)")
	charsFlags.register(charsCmd, "max-chars", "maximum characters per part (default from config, 2500)")
	RootCmd.AddCommand(linesCmd, charsCmd)
}
