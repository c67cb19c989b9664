// covreport reports scenario coverage for the suite consolidation: which
// documented scenarios the consolidated spec files retain, where each one
// landed, and whether they are spread evenly. CI gates on a non-zero exit
// when coverage is incomplete.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumenfeed/reader-e2e/internal/logger"
	"github.com/lumenfeed/reader-e2e/pkg/coverage"
)

func main() {
	logger.Init("info", true)

	var catalogPath string

	root := &cobra.Command{
		Use:          "covreport",
		Short:        "Scenario coverage bookkeeping for the E2E suite consolidation",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&catalogPath, "catalog", "", "YAML catalog to load instead of the built-in one")

	loadMapper := func() (*coverage.Mapper, error) {
		if catalogPath == "" {
			return coverage.NewMapper(), nil
		}
		f, err := os.Open(catalogPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		c, err := coverage.LoadCatalog(f)
		if err != nil {
			return nil, err
		}
		return c.Mapper(), nil
	}

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Check that every original scenario survived consolidation",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMapper()
			if err != nil {
				return err
			}
			result := m.ValidateCoverage()
			fmt.Printf("coverage: %.1f%% (%d/%d scenarios)\n", result.Coverage, result.Covered, result.Total)
			if len(result.Missing) > 0 {
				fmt.Println("missing scenarios:")
				for _, name := range result.Missing {
					fmt.Printf("  - %s\n", name)
				}
				return fmt.Errorf("%d scenarios lost in consolidation", len(result.Missing))
			}
			return nil
		},
	}

	report := &cobra.Command{
		Use:   "report",
		Short: "Show where each original file's scenarios landed",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMapper()
			if err != nil {
				return err
			}
			for _, fr := range m.GenerateDetailedReport() {
				fmt.Printf("%s\n", fr.OriginalFile)
				for _, sc := range fr.Scenarios {
					if len(sc.AbsorbedBy) == 0 {
						fmt.Printf("  %-50s -> MISSING\n", sc.Name)
						continue
					}
					fmt.Printf("  %-50s -> %s\n", sc.Name, strings.Join(sc.AbsorbedBy, ", "))
				}
			}
			return nil
		},
	}

	distribution := &cobra.Command{
		Use:   "distribution",
		Short: "Check scenario balance across consolidated files",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMapper()
			if err != nil {
				return err
			}
			result := m.ValidateDistribution()
			for _, share := range result.PerFile {
				fmt.Printf("%-30s %3d scenarios (%.1f%%)\n", share.File, share.Count, share.Percent)
			}
			for _, rec := range result.Recommendations {
				fmt.Printf("recommendation: %s\n", rec)
			}
			if !result.IsBalanced {
				return fmt.Errorf("scenario distribution is unbalanced")
			}
			fmt.Println("distribution is balanced")
			return nil
		},
	}

	var exportOut string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the built-in catalog as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := os.Stdout
			if exportOut != "" {
				f, err := os.Create(exportOut)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			return coverage.DefaultCatalog().Write(out)
		},
	}
	export.Flags().StringVar(&exportOut, "out", "", "output file (default stdout)")

	root.AddCommand(validate, report, distribution, export)

	if err := root.Execute(); err != nil {
		logger.Get().Error().Err(err).Msg("covreport failed")
		os.Exit(1)
	}
}
