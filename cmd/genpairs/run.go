package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jihwankim/genpairs/internal/diag"
	"github.com/jihwankim/genpairs/internal/lexspec"
	"github.com/jihwankim/genpairs/internal/model"
	"github.com/jihwankim/genpairs/internal/output"
	"github.com/jihwankim/genpairs/internal/pairwise"
	"github.com/jihwankim/genpairs/internal/singles"
	"github.com/jihwankim/genpairs/internal/suite"
	"github.com/jihwankim/genpairs/pkg/config"
	"github.com/jihwankim/genpairs/pkg/logging"
	"github.com/spf13/cobra"
)

func runGenerate(cmd *cobra.Command, args []string) error {
	inPath, _ := cmd.Flags().GetString("in")
	mode, _ := cmd.Flags().GetString("mode")
	initialSuitePath, _ := cmd.Flags().GetString("initial-suite")
	asCSV, _ := cmd.Flags().GetBool("csv")
	seed, _ := cmd.Flags().GetInt64("seed")
	seedSet := cmd.Flags().Changed("seed")
	jsonWarnings, _ := cmd.Flags().GetBool("json-warnings")

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if mode == "" {
		mode = cfg.Execution.DefaultMode
	}
	switch mode {
	case "all", "omit-single-error", "single-error-only", "varying-columns", "report-uncovered":
	default:
		return fmt.Errorf("--mode %q is not one of all, omit-single-error, single-error-only, varying-columns, report-uncovered", mode)
	}
	if !seedSet {
		seed = cfg.Execution.DefaultSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
	}

	logLevel := logging.LogLevel(cfg.Framework.LogLevel)
	if verbose {
		logLevel = logging.LogLevelDebug
	}
	logger := logging.NewLogger(logging.LoggerConfig{
		Level:  logLevel,
		Format: logging.LogFormat(cfg.Framework.LogFormat),
		Output: os.Stderr,
	})

	logger.Info("parsing spec")
	p := lexspec.New()

	var (
		file *lexspec.File
		bag  *diag.Bag
	)
	if inPath != "" {
		var err error
		file, bag, err = p.ParseFile(inPath)
		if err != nil {
			return err
		}
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read spec source: %w", err)
		}
		file, bag = p.Parse(string(data))
	}
	if err := bag.AsError(); err != nil {
		return err
	}

	logger.Info("building semantic model")
	m, modelBag := model.Build(file)
	if err := modelBag.AsError(); err != nil {
		return err
	}
	logger.Debug("resolved properties", "properties", m.SortedProperties())

	logger.Info("enumerating required pairs")
	enum := pairwise.Enumerate(m)

	if initialSuitePath != "" {
		f, err := os.Open(initialSuitePath)
		if err != nil {
			return fmt.Errorf("failed to open initial suite: %w", err)
		}
		defer f.Close()

		loaded, suiteBag := suite.Load(f, m)
		for _, w := range suiteBag.Warnings {
			logger.Warn(w.String())
		}
		loaded.ApplyTo(enum)
		logger.Info("applied initial suite", "rows", len(loaded.Rows))
	}

	out := cmd.OutOrStdout()

	if mode == "report-uncovered" {
		output.WriteWarnings(out, output.WarningLines(enum))
		for _, line := range suite.UncoveredReport(enum) {
			fmt.Fprintln(out, line)
		}
		return nil
	}

	catIndex := output.CategoryIndex(m)
	displayCategories := m.Categories
	if mode == "varying-columns" {
		displayCategories = output.VaryingColumns(m.Categories)
	}

	// The builder's step-3 retroactive demotion (§4.4) can still append
	// warnings after enumeration, so the vectors are built before the
	// warning stream is written, keeping "before the pairwise table"
	// (§6) true of the complete warning set, not just the ones known at
	// enumeration time.
	var vectors [][]*model.Choice
	if mode != "single-error-only" {
		logger.Info("building pairwise vectors", "seed", seed)
		builder := pairwise.NewBuilder(m, enum, seed)
		vectors = builder.Build()
	}

	output.WriteWarnings(out, output.WarningLines(enum))
	if jsonWarnings {
		if err := output.WriteJSONWarnings(os.Stderr, enum); err != nil {
			return fmt.Errorf("failed to write json warnings: %w", err)
		}
	}

	if mode != "single-error-only" {
		sec := output.Section{Label: "Pairwise coverage", Categories: displayCategories, Vectors: vectors}
		if err := render(out, sec, catIndex, asCSV); err != nil {
			return fmt.Errorf("failed to write pairwise section: %w", err)
		}
	}

	if mode != "omit-single-error" {
		logger.Info("building single/error vectors")
		singleVecs := singles.Enumerate(m)
		full := make([][]*model.Choice, len(singleVecs))
		for i, v := range singleVecs {
			full[i] = v.Values
		}
		sec := output.Section{Label: "Single and error vectors", Categories: displayCategories, Vectors: full}
		if err := render(out, sec, catIndex, asCSV); err != nil {
			return fmt.Errorf("failed to write single/error section: %w", err)
		}
	}

	return nil
}

func render(w io.Writer, sec output.Section, catIndex map[string]int, asCSV bool) error {
	if asCSV {
		return output.WriteCSV(w, sec, catIndex)
	}
	output.WriteHumanTable(w, sec, catIndex)
	return nil
}
