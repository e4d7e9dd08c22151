// Package commands implements the oria CLI.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/oria-mc/oria/cli/internal/config"
	"github.com/oria-mc/oria/cli/internal/ui"
	"github.com/oria-mc/oria/cli/internal/version"
	"github.com/oria-mc/oria/cli/internal/watch"
	"github.com/oria-mc/oria/convert"
	"github.com/oria-mc/oria/internal/container"
	"github.com/oria-mc/oria/internal/service"
	"github.com/oria-mc/oria/internal/storage"
)

// ErrMissingDirs is returned when neither arguments nor configuration name
// the input and output directories.
var ErrMissingDirs = errors.New("input and output directories are required")

// confirm asks a yes/no question. Replaced in tests.
var confirm = func(message string) (bool, error) {
	ok := false
	err := survey.AskOne(&survey.Confirm{Message: message, Default: false}, &ok)
	return ok, err
}

type rootOptions struct {
	configFile string
	iaToOxaren bool
	oxarenToIA bool
	watch      bool
	dryRun     bool
}

// Execute is the main entry point for the CLI
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCommand(config.NewManager()).ExecuteContext(ctx)
}

// NewRootCommand creates the oria command tree.
func NewRootCommand(mgr *config.Manager) *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "oria <input-dir> <output-dir>",
		Short: "Convert item configs between ItemsAdder and Oxaren",
		Long: `Convert item configuration files between the ItemsAdder and Oxaren
plugin schemas.

ItemsAdder input is read from <input-dir>/contents, Oxaren input from
<input-dir>/items and <input-dir>/recipes. Converted items are written
per namespace below <output-dir>.`,
		Example: `  oria ./ItemsAdder ./Oxaren
  oria -i ./Oxaren ./ItemsAdder
  oria -w --report ./ItemsAdder ./Oxaren`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, mgr, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.BoolVarP(&opts.iaToOxaren, "ia-to-oxaren", "x", false, "Convert ItemsAdder to Oxaren (default)")
	flags.BoolVarP(&opts.oxarenToIA, "oxaren-to-ia", "i", false, "Convert Oxaren to ItemsAdder")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "Re-run the conversion when input files change")
	flags.BoolP("force", "f", false, "Write into a non-empty output directory without asking")
	flags.Int("workers", convert.DefaultWorkers, "Namespaces converted in parallel")
	flags.Bool("report", false, "Render a markdown summary after the run")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Convert and report without writing files")
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Config file (default: ./.oria.yaml, ~/.oria.yaml, ~/.config/oria/.oria.yaml)")

	cmd.MarkFlagsMutuallyExclusive("ia-to-oxaren", "oxaren-to-ia")
	cobra.CheckErr(mgr.BindFlags(flags))

	cmd.AddCommand(NewVersionCommand())
	cmd.AddCommand(NewConfigCommand(mgr, &opts.configFile))

	return cmd
}

func runConvert(cmd *cobra.Command, mgr *config.Manager, opts rootOptions, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := mgr.Load(opts.configFile)
	if err != nil {
		return err
	}
	if err := version.CheckRequired(version.Version, cfg.RequiredVersion); err != nil {
		return err
	}

	inputDir, outputDir, err := resolveDirs(args, cfg)
	if err != nil {
		return err
	}
	direction, err := resolveDirection(opts, cfg)
	if err != nil {
		return err
	}

	logger := ui.NewLogger(cfg.Verbose)
	c, err := container.NewContainer(&container.Config{
		Storage: storage.Config{Type: storage.TypeFilesystem, BasePath: "."},
		Workers: cfg.Workers,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	svc := c.ConvertService()

	if !cfg.Force && !opts.dryRun {
		empty, err := svc.OutputIsEmpty(ctx, outputDir)
		if err != nil {
			return err
		}
		if !empty {
			ok, err := confirm(fmt.Sprintf("%s is not empty. Write converted files into it?", outputDir))
			if err != nil {
				return err
			}
			if !ok {
				ui.PrintWarning("Aborted, nothing was written")
				return nil
			}
		}
	}

	req := service.Request{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Direction: direction,
		DryRun:    opts.dryRun,
	}
	run := func() error {
		return runOnce(ctx, svc, req, cfg)
	}

	if !opts.watch {
		return run()
	}

	w, err := watch.NewWatcher(inputDir, run, logger)
	if err != nil {
		return err
	}
	ui.PrintInfo("Watching %s for changes (Ctrl+C to stop)", inputDir)
	return w.Run(ctx)
}

func runOnce(ctx context.Context, svc *service.ConvertService, req service.Request, cfg *config.Config) error {
	ui.PrintHeader("oria", fmt.Sprintf("%s  %s → %s", req.Direction, req.InputDir, req.OutputDir))

	var spinner *pterm.SpinnerPrinter
	if !cfg.Verbose {
		spinner, _ = ui.PrintSpinner("Converting...")
	}

	report, err := svc.Run(ctx, req)
	if spinner != nil {
		_ = spinner.Stop()
	}
	if err != nil {
		return err
	}

	if err := ui.PrintReport(report); err != nil {
		return err
	}
	if cfg.Report {
		return ui.PrintMarkdown(report.Markdown())
	}
	return nil
}

func resolveDirs(args []string, cfg *config.Config) (string, string, error) {
	input, output := cfg.InputDir, cfg.OutputDir
	if len(args) > 0 {
		input = args[0]
	}
	if len(args) > 1 {
		output = args[1]
	}
	if input == "" || output == "" {
		return "", "", ErrMissingDirs
	}
	return input, output, nil
}

func resolveDirection(opts rootOptions, cfg *config.Config) (convert.Direction, error) {
	switch {
	case opts.oxarenToIA:
		return convert.OxarenToItemsAdder, nil
	case opts.iaToOxaren:
		return convert.ItemsAdderToOxaren, nil
	default:
		return cfg.ConvertDirection()
	}
}
