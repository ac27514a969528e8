package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/farsight-cli/farsight/internal/decision"
	"github.com/farsight-cli/farsight/internal/render"
)

var (
	listUnscored bool
	listPending  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List decisions",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}

		var decisions []decision.Decision
		switch {
		case listPending:
			decisions, err = st.ListDueForReview(time.Now())
		case listUnscored:
			decisions, err = st.ListUnscored()
		default:
			decisions, err = st.List()
		}
		if err != nil {
			return err
		}
		warnStoreIssues(st)

		if jsonOutput {
			return printJSON(decisions)
		}
		return render.List(os.Stdout, decisions)
	},
}

func init() {
	listCmd.Flags().BoolVar(&listUnscored, "unscored", false, "Only decisions without recorded outcomes")
	listCmd.Flags().BoolVar(&listPending, "pending", false, "Only decisions due for review")
	rootCmd.AddCommand(listCmd)
}
