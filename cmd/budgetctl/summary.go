package main

import (
	"fmt"
	"text/tabwriter"

	"budget_tracker/internal/summary"

	"github.com/spf13/cobra"
)

func newSummaryCmd() *cobra.Command {
	var in summary.Input
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print totals, savings rate and category split for one month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := in.Validate(); err != nil {
				return err
			}
			res := summary.Compute(in)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Income\t%.2f\n", in.Income)
			fmt.Fprintf(w, "Total expense\t%.2f\n", res.TotalExpense)
			fmt.Fprintf(w, "Savings\t%.2f\n", res.Savings)
			fmt.Fprintf(w, "Savings rate\t%s%%\n", res.SavingsRate)
			fmt.Fprintf(w, "Status\t%s\n", res.Status)
			fmt.Fprintln(w, "---")
			for _, s := range res.Breakdown {
				fmt.Fprintf(w, "%s\t%.2f\n", s.Label, s.Amount)
			}
			return w.Flush()
		},
	}
	f := cmd.Flags()
	f.Float64Var(&in.Income, "income", 0, "Monthly income")
	f.Float64Var(&in.Rent, "rent", 0, "Rent")
	f.Float64Var(&in.EMI, "emi", 0, "Loan instalments")
	f.Float64Var(&in.Utilities, "utilities", 0, "Utilities")
	f.Float64Var(&in.Groceries, "groceries", 0, "Groceries")
	f.Float64Var(&in.Transport, "transport", 0, "Transport")
	f.Float64Var(&in.Entertainment, "entertainment", 0, "Entertainment")
	return cmd
}
