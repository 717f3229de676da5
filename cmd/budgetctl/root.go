package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var flagVerbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "budgetctl",
		Short:         "Budget tracker admin CLI",
		Long:          "Migrate the budget tracker database and compute monthly summaries from the command line.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			if flagVerbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	root.AddCommand(newMigrateCmd(), newSummaryCmd())
	return root
}
