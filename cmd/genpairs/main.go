package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	version = "dev" // set by build flags
)

var rootCmd = &cobra.Command{
	Use:     "genpairs",
	Short:   "Pairwise test-vector generator for category-partition specs",
	Long:    `genpairs reads a declarative category-partition specification and emits a minimal set of vectors covering every feasible pair of choices, plus one vector per single or error choice.`,
	Version: version,
	RunE:    runGenerate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./genpairs.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.Flags().String("in", "", "path to the spec source file (default: standard input)")
	rootCmd.Flags().String("mode", "", "all, omit-single-error, single-error-only, varying-columns, report-uncovered (default: config or all)")
	rootCmd.Flags().String("initial-suite", "", "path to a pre-existing suite (CSV) to subtract before building")
	rootCmd.Flags().Bool("csv", false, "write CSV instead of the human table")
	rootCmd.Flags().Int64("seed", 0, "seed recorded on the vector builder; its tie-break order is deterministic and does not depend on it (default: config, else time-derived)")
	rootCmd.Flags().Bool("json-warnings", false, "also emit infeasible pairs as a JSON array on stderr, alongside the stdout warning lines")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the genpairs version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
