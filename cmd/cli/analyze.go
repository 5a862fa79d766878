package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"ksfit/adapters/analysis"
	"ksfit/domain/fit"
	"ksfit/internal"
	"ksfit/internal/chart"
	"ksfit/internal/config"
	"ksfit/internal/datasource"
	"ksfit/internal/pipeline"
	"ksfit/internal/render"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errRunFailed marks a run that ended in ErrorShown; its notice is already printed
var errRunFailed = stderrors.New("analysis run failed")

type analyzeOptions struct {
	data         string
	file         string
	distribution string
	format       string
	chartPath    string
	url          string
	timeout      time.Duration
	interactive  bool
}

func newAnalyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Submit a sample for a goodness-of-fit test",
		Long: `Submit a numeric sample to the analysis service and print the
Kolmogorov–Smirnov result.

Supply the sample either as text (--data) or as a CSV/XLSX file (--file),
never both. At least 5 values are required.

Example: ksfit analyze --data "1.2 3.4 2.2 5.1 4.0" --distribution norm --chart out.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.interactive {
				if err := runForm(cmd.InOrStdin(), cmd.ErrOrStderr(), &opts); err != nil {
					return err
				}
			}
			return runAnalyze(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.data, "data", "", "Sample values separated by commas or whitespace")
	cmd.Flags().StringVar(&opts.file, "file", "", "Path to a CSV (first column) or XLSX file")
	cmd.Flags().StringVar(&opts.distribution, "distribution", string(fit.DistributionNormal), "Reference distribution: norm, uniform or expon")
	cmd.Flags().StringVar(&opts.format, "format", formatTable, "Output format: table, json or yaml")
	cmd.Flags().StringVar(&opts.chartPath, "chart", "", "Write the sample bar chart as SVG to this path")
	cmd.Flags().StringVar(&opts.url, "url", "", "Analysis service base URL (overrides ANALYSIS_URL)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Request timeout, 0 waits indefinitely (overrides ANALYSIS_TIMEOUT)")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "Fill in the sample and distribution with a form")

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts analyzeOptions) error {
	if err := checkFormat(opts.format); err != nil {
		return err
	}
	dist, err := fit.ParseDistribution(opts.distribution)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.url != "" {
		cfg.Analysis.BaseURL = opts.url
	}
	if opts.timeout > 0 {
		cfg.Analysis.Timeout = opts.timeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	tv := newTerminalView(errOut, isTerminal(errOut))

	var drawer render.ChartDrawer
	if opts.chartPath != "" {
		canvas := &fileCanvas{path: opts.chartPath}
		tv.canvas = canvas
		drawer = chart.NewAdapter(canvas, chart.NewSVGRenderer(cfg.Chart.Width, cfg.Chart.Height))
	}

	p, err := pipeline.New(pipeline.Deps{
		View:     tv,
		Client:   analysis.NewClient(cfg.Analysis),
		Renderer: render.NewRenderer(tv, drawer),
		Resolver: datasource.NewResolver(cfg.Upload.MaxBytes),
		Logger:   internal.NewDefaultLogger(),
	})
	if err != nil {
		return err
	}

	channels := datasource.Channels{Text: opts.data}
	if opts.file != "" {
		channels.File = datasource.PathFile(opts.file)
	}

	state, _ := p.Run(cmd.Context(), pipeline.Input{Channels: channels, Distribution: dist})
	if state != fit.StateResultsShown {
		return errRunFailed
	}

	report, ok := tv.Report()
	if !ok {
		return errRunFailed
	}
	if err := writeReport(cmd.OutOrStdout(), report, opts.format); err != nil {
		return err
	}
	if opts.chartPath != "" {
		fmt.Fprintf(errOut, "Chart written to %s\n", opts.chartPath)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
