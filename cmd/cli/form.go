package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"ksfit/domain/fit"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// runForm collects the sample and distribution interactively. Values given
// as flags pre-populate the fields. Channel exclusivity is left to the
// pipeline so the form reports the same notices as every other shell.
func runForm(in io.Reader, out io.Writer, opts *analyzeOptions) error {
	options := make([]huh.Option[string], len(fit.Distributions))
	for i, d := range fit.Distributions {
		options[i] = huh.NewOption(fit.DisplayName(string(d)), string(d))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Data").
				Description("Numbers separated by commas or spaces; leave empty to use a file").
				Placeholder("1.2, 3.4, 2.2 5.1 ...").
				Value(&opts.data),
			huh.NewInput().
				Title("CSV file").
				Description("Path to a CSV or XLSX file; leave empty to use the data above").
				Placeholder("sample.csv").
				Value(&opts.file).
				Validate(validatePath),
			huh.NewSelect[string]().
				Title("Distribution").
				Options(options...).
				Value(&opts.distribution),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return fmt.Errorf("form failed: %w", err)
	}

	opts.data = strings.TrimSpace(opts.data)
	opts.file = strings.TrimSpace(opts.file)
	return nil
}

// validatePath accepts an empty path or one naming a readable regular file
func validatePath(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot open %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
