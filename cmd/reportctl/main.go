package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag   string
	tokenFlag string
	rootCmd   = &cobra.Command{
		Use:   "reportctl",
		Short: "CLI client for the incident report REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Report service base URL")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate (or fetch the cached) report for an emergency",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetInt64("emergency")
			if tokenFlag == "" {
				return fmt.Errorf("--token required")
			}
			return runGenerate(apiFlag, tokenFlag, id, os.Stdout)
		},
	}
	generateCmd.Flags().StringVarP(&tokenFlag, "token", "t", "", "Caller access token (required)")
	generateCmd.Flags().Int64P("emergency", "e", 0, "Emergency ID (required)")
	_ = generateCmd.MarkFlagRequired("emergency")
	rootCmd.AddCommand(generateCmd)

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check service and store health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHealth(apiFlag, os.Stdout)
		},
	}
	rootCmd.AddCommand(healthCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
