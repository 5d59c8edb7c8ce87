package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/config"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/engine"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/generation"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/logger"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/model"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/storage"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pipeline for one industry",
	Long: `Run researches the industry, generates AI use cases, collects related
datasets, writes {industry}_resources.md and prints the results.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		industry := viper.GetString("industry")
		if industry == "" {
			return fmt.Errorf("please enter a valid industry or company name")
		}
		return runPipeline(cmd.Context(), cmd.OutOrStdout(), viper.GetString("conf"), industry, viper.GetBool("json"))
	},
}

func init() {
	runCmd.Flags().String("industry", "", "industry or company name")
	runCmd.Flags().Bool("json", false, "output the report as JSON")
	viper.BindPFlag("industry", runCmd.Flags().Lookup("industry"))
	viper.BindPFlag("json", runCmd.Flags().Lookup("json"))

	rootCmd.AddCommand(runCmd)
}

func runPipeline(ctx context.Context, out io.Writer, confPath, industry string, asJSON bool) error {
	cfg, err := config.LoadConfig(confPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var store *storage.Storage
	if cfg.DB.Driver != "" {
		s, err := storage.NewStorage(cfg.DB)
		if err != nil {
			logger.Log.Errorf("Failed to open run history: %v", err)
		} else {
			store = s
			defer store.Close()
		}
	}

	eng, err := engine.NewEngine(ctx, cfg, store)
	if err != nil {
		return err
	}
	report, err := eng.Run(ctx, industry)
	if err != nil {
		return err
	}
	return printReport(out, report, asJSON)
}

func printReport(out io.Writer, report *model.Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintln(out, "Generated Use Cases:")
	for _, uc := range generation.CleanUseCases(report.UseCases) {
		fmt.Fprintf(out, "- %s\n", uc)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Collected Datasets:")
	for _, link := range report.Datasets {
		fmt.Fprintf(out, "- %s\n", link)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Resource links saved to %s\n", report.File)
	return nil
}
