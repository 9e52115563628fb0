package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/itrgo/itrgo/internal/boundary"
	"github.com/itrgo/itrgo/internal/calculation"
	"github.com/itrgo/itrgo/internal/compare"
	"github.com/itrgo/itrgo/internal/config"
	"github.com/itrgo/itrgo/internal/domain"
	"github.com/itrgo/itrgo/internal/output"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "itrgo",
	Short: "Indian Income Tax Calculator CLI",
	Long:  "Salary package tax computation for Indian employees under the old and new regimes",
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "itrgo %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Version)
			}
		},
	}
}

// loadRules resolves the rule set from an explicit file or the built-in
// registry for the record's tax year.
func loadRules(rulesFile string, year domain.TaxYear) (*domain.TaxYearRules, error) {
	loader := config.NewRulesLoader()
	if rulesFile != "" {
		return loader.LoadFromFile(rulesFile)
	}
	return loader.ForYear(year.Label)
}

func loadRecord(cmd *cobra.Command, path string) (*domain.SalaryPackageRecord, error) {
	record, warnings, err := boundary.LoadRecordFile(path)
	for _, warning := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
	}
	return record, err
}

func calculateCmd() *cobra.Command {
	var rulesFile string
	var format string
	var withComparison bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "calculate [package-file]",
		Short: "Calculate the tax liability for a salary package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := loadRecord(cmd, args[0])
			if err != nil {
				return err
			}
			rules, err := loadRules(rulesFile, record.TaxYear)
			if err != nil {
				return err
			}
			engine, err := calculation.NewEngine(rules)
			if err != nil {
				return err
			}
			if verbose {
				engine.SetLogger(simpleCLILogger{})
			}

			input := calculation.InputFromRecord(record)
			var result *domain.TaxCalculationResult
			if withComparison {
				result, err = engine.CalculateWithComparison(input)
			} else {
				result, err = engine.Calculate(input)
			}
			if err != nil {
				return err
			}

			generator := output.NewReportGenerator(cmd.OutOrStdout())
			return generator.GenerateReport(result, format)
		},
	}
	cmd.Flags().StringVar(&rulesFile, "rules", "", "Tax rules YAML file (defaults to built-in rules for the tax year)")
	cmd.Flags().StringVar(&format, "format", "console", "Output format: console, json, csv")
	cmd.Flags().BoolVar(&withComparison, "compare-regimes", false, "Include an old vs new regime comparison")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Log calculation steps")
	return cmd
}

func compareCmd() *cobra.Command {
	var rulesFile string
	var format string
	var templates []string

	cmd := &cobra.Command{
		Use:   "compare [package-file]",
		Short: "Compare what-if scenarios against the recorded package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := loadRecord(cmd, args[0])
			if err != nil {
				return err
			}
			rules, err := loadRules(rulesFile, record.TaxYear)
			if err != nil {
				return err
			}
			engine, err := calculation.NewEngine(rules)
			if err != nil {
				return err
			}

			compEngine := compare.NewCompareEngine(engine)
			set, err := compEngine.Compare(cmd.Context(), record, compare.CompareOptions{
				Templates: templates,
			})
			if err != nil {
				return err
			}

			switch format {
			case "table", "":
				formatter := &compare.TableFormatter{}
				fmt.Fprint(cmd.OutOrStdout(), formatter.Format(set))
			case "csv":
				formatter := &compare.CSVFormatter{}
				text, err := formatter.Format(set)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), text)
			case "json":
				formatter := &compare.JSONFormatter{Pretty: true}
				text, err := formatter.Format(set)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
			default:
				return fmt.Errorf("unsupported format: %s", format)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&rulesFile, "rules", "", "Tax rules YAML file (defaults to built-in rules for the tax year)")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, csv, json")
	cmd.Flags().StringSliceVar(&templates, "templates", []string{"switch_regime", "max_80c"}, "What-if templates to apply")
	return cmd
}

func validateRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-rules [rules-file]",
		Short: "Validate a tax rules YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewRulesLoader()
			rules, err := loader.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rules file %s is valid (tax year %s)\n",
				args[0], rules.Metadata.TaxYear.Label)
			return nil
		},
	}
}

func main() {
	rootCmd.AddCommand(calculateCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(validateRulesCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
