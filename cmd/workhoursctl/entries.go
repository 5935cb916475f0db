package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	entriesCmd := &cobra.Command{Use: "entries", Short: "Time entry operations"}

	var userFlag string
	entriesCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "User ID (required)")
	_ = entriesCmd.MarkPersistentFlagRequired("user")

	var date, start, end, notes string
	var lunch int
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Log a work shift",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{
				"date":          date,
				"startTime":     start,
				"endTime":       end,
				"lunchDuration": lunch,
			}
			if notes != "" {
				payload["notes"] = notes
			}
			data, err := doPostJSON(fmt.Sprintf("/api/users/%s/entries", userFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&date, "date", "d", "", "Date YYYY-MM-DD (required)")
	createCmd.Flags().StringVarP(&start, "start", "s", "", "Start clock HH:MM (required)")
	createCmd.Flags().StringVarP(&end, "end", "e", "", "End clock HH:MM (required)")
	createCmd.Flags().IntVarP(&lunch, "lunch", "l", 0, "Lunch minutes")
	createCmd.Flags().StringVarP(&notes, "notes", "n", "", "Notes")
	_ = createCmd.MarkFlagRequired("date")
	_ = createCmd.MarkFlagRequired("start")
	_ = createCmd.MarkFlagRequired("end")
	entriesCmd.AddCommand(createCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/users/%s/entries", userFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	entriesCmd.AddCommand(listCmd)

	getCmd := &cobra.Command{
		Use:   "get ENTRY_ID",
		Short: "Get an entry by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/users/%s/entries/%s", userFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	entriesCmd.AddCommand(getCmd)

	dateCmd := &cobra.Command{
		Use:   "date DATE",
		Short: "List entries for one day (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/users/%s/entries/date/%s", userFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	entriesCmd.AddCommand(dateCmd)

	var rangeStart, rangeEnd string
	rangeCmd := &cobra.Command{
		Use:   "range",
		Short: "Summarize entries in a date range, grouped by day",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/users/%s/entries/range?startDate=%s&endDate=%s", userFlag, rangeStart, rangeEnd))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rangeCmd.Flags().StringVar(&rangeStart, "from", "", "Start date YYYY-MM-DD (required)")
	rangeCmd.Flags().StringVar(&rangeEnd, "to", "", "End date YYYY-MM-DD (required)")
	_ = rangeCmd.MarkFlagRequired("from")
	_ = rangeCmd.MarkFlagRequired("to")
	entriesCmd.AddCommand(rangeCmd)

	updateCmd := &cobra.Command{
		Use:   "update ENTRY_ID",
		Short: "Update an entry (only provided flags change)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{}
			if cmd.Flags().Changed("date") {
				payload["date"] = date
			}
			if cmd.Flags().Changed("start") {
				payload["startTime"] = start
			}
			if cmd.Flags().Changed("end") {
				payload["endTime"] = end
			}
			if cmd.Flags().Changed("lunch") {
				payload["lunchDuration"] = lunch
			}
			if cmd.Flags().Changed("notes") {
				payload["notes"] = notes
			}
			if len(payload) == 0 {
				return fmt.Errorf("nothing to update")
			}
			data, err := doPutJSON(fmt.Sprintf("/api/users/%s/entries/%s", userFlag, args[0]), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	updateCmd.Flags().StringVarP(&date, "date", "d", "", "Date YYYY-MM-DD")
	updateCmd.Flags().StringVarP(&start, "start", "s", "", "Start clock HH:MM")
	updateCmd.Flags().StringVarP(&end, "end", "e", "", "End clock HH:MM")
	updateCmd.Flags().IntVarP(&lunch, "lunch", "l", 0, "Lunch minutes")
	updateCmd.Flags().StringVarP(&notes, "notes", "n", "", "Notes")
	entriesCmd.AddCommand(updateCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete ENTRY_ID",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := doDelete(fmt.Sprintf("/api/users/%s/entries/%s", userFlag, args[0])); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, "deleted")
			return nil
		},
	}
	entriesCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(entriesCmd)
}
