package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// A missing .env is fine; the environment still applies
	_ = godotenv.Load()

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Failed runs have already been reported as notices
		if !stderrors.Is(err, errRunFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ksfit",
		Short:         "Kolmogorov–Smirnov goodness-of-fit runs from the terminal",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(newAnalyzeCmd())
	return rootCmd
}
