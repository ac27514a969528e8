package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Decisions due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		now := time.Now()
		due, err := st.ListDueForReview(now)
		if err != nil {
			return err
		}
		warnStoreIssues(st)

		if jsonOutput {
			return printJSON(due)
		}
		if len(due) == 0 {
			fmt.Println("No decisions pending review.")
			return nil
		}

		fmt.Printf("%d decision(s) ready for review:\n\n", len(due))
		for i := range due {
			d := &due[i]
			fmt.Printf("  [%s] %s\n", d.ID, d.Question)
			days := int(now.Sub(*d.ReviewDate).Hours() / 24)
			fmt.Printf("           Review was %d days ago\n", days)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pendingCmd)
}
