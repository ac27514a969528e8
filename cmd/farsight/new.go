package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/farsight-cli/farsight/internal/audit"
	"github.com/farsight-cli/farsight/internal/decision"
)

var (
	newContext  string
	newReviewIn string
)

var newCmd = &cobra.Command{
	Use:   "new QUESTION",
	Short: "Create a new decision",
	Long: `Create a draft decision around a question.

Add metrics and options afterwards, then record the choice with decide:

  farsight new "Which job offer should I take?" --context "Two offers" --review-in 6m
  farsight metric <id> Salary --weight 2 --unit '$k'
  farsight option <id> Startup --metric Salary --point 180 --interval 150-200 --confidence 0.8
  farsight decide <id> Startup`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore()
		if err != nil {
			return err
		}

		d := decision.New(args[0], newContext)
		if newReviewIn != "" {
			dur, err := parseReviewIn(newReviewIn)
			if err != nil {
				return err
			}
			review := time.Now().UTC().Add(dur)
			d.ReviewDate = &review
		}
		if err := d.Validate(); err != nil {
			return err
		}

		if err := st.Save(*d); err != nil {
			return fmt.Errorf("saving decision: %w", err)
		}
		auditLog(cfg, audit.EventCreate, map[string]string{"id": d.ID, "question": d.Question})

		if jsonOutput {
			return printJSON(d)
		}
		fmt.Printf("Created decision [%s]: %s\n", d.ID, d.Question)
		return nil
	},
}

func init() {
	newCmd.Flags().StringVar(&newContext, "context", "", "Background for future review")
	newCmd.Flags().StringVar(&newReviewIn, "review-in", "", "Schedule a review this long from now (e.g. 90d, 6m)")
	rootCmd.AddCommand(newCmd)
}
