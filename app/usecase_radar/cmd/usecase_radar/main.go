// Package main is the entry point for the usecase_radar CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "usecase_radar",
	Short: "Generate AI use cases and related datasets for an industry",
	Long: `usecase_radar researches an industry on the web, asks a text generation
model for AI use cases, and collects related datasets from Hugging Face and
Kaggle into {industry}_resources.md.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("conf", "configs/config.yaml", "config path, eg: --conf config.yaml")
	viper.BindPFlag("conf", rootCmd.PersistentFlags().Lookup("conf"))
}

func initConfig() {
	viper.SetEnvPrefix("USECASE_RADAR")
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
