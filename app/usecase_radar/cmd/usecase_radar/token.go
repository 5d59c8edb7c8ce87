package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/auth"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/config"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the display server JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(viper.GetString("conf"))
		if err != nil {
			return err
		}
		ttl := cfg.Auth.TokenTTL
		if d := viper.GetDuration("ttl"); d > 0 {
			ttl = d
		}
		tok, err := auth.IssueToken(cfg.Auth.JWTKey, viper.GetString("subject"), ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("subject", "cli", "token subject")
	tokenCmd.Flags().Duration("ttl", 0, "token lifetime (default: auth.token_ttl)")
	viper.BindPFlag("subject", tokenCmd.Flags().Lookup("subject"))
	viper.BindPFlag("ttl", tokenCmd.Flags().Lookup("ttl"))

	rootCmd.AddCommand(tokenCmd)
}
