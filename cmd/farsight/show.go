package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/farsight-cli/farsight/internal/render"
)

var showCmd = &cobra.Command{
	Use:   "show PREFIX",
	Short: "Show one decision in full",
	Long: `Show a decision's metrics, options, forecasts, expected values, and
outcomes once scored. PREFIX is the decision id or any unambiguous
prefix of it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		d, err := st.Get(args[0])
		if err != nil {
			return err
		}
		warnStoreIssues(st)

		if jsonOutput {
			return printJSON(d)
		}
		return render.Show(os.Stdout, &d)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
