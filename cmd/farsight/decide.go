package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/farsight-cli/farsight/internal/audit"
)

var decideReviewIn string

var decideCmd = &cobra.Command{
	Use:   "decide PREFIX OPTION",
	Short: "Record which option was chosen",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore()
		if err != nil {
			return err
		}
		d, err := st.Get(args[0])
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		var review *time.Time
		if decideReviewIn != "" {
			dur, err := parseReviewIn(decideReviewIn)
			if err != nil {
				return err
			}
			r := now.Add(dur)
			review = &r
		}
		if err := d.Decide(args[1], now, review); err != nil {
			return err
		}

		if err := st.Update(d); err != nil {
			return fmt.Errorf("saving decision: %w", err)
		}
		auditLog(cfg, audit.EventDecide, map[string]string{"id": d.ID, "option": d.ChosenOption})

		fmt.Printf("Decided [%s]: %s\n", d.ID, d.ChosenOption)
		if d.ReviewDate != nil {
			fmt.Printf("Review scheduled for %s\n", d.ReviewDate.Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	decideCmd.Flags().StringVar(&decideReviewIn, "review-in", "", "Schedule a review this long from now (e.g. 90d, 6m)")
	rootCmd.AddCommand(decideCmd)
}
