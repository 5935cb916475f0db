package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	var userFlag string

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show current week and pay period totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/users/%s/stats", userFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	statsCmd.Flags().StringVarP(&userFlag, "user", "u", "", "User ID (required)")
	_ = statsCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(statsCmd)

	var ppUser string
	var count int
	payperiodsCmd := &cobra.Command{
		Use:   "payperiods",
		Short: "Browse upcoming pay periods",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/users/%s/payperiods?count=%d", ppUser, count))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	payperiodsCmd.Flags().StringVarP(&ppUser, "user", "u", "", "User ID (required)")
	payperiodsCmd.Flags().IntVarP(&count, "count", "c", 6, "Number of pay periods")
	_ = payperiodsCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(payperiodsCmd)
}
