// Command primeleads runs the PrimeLeads workflows, the knowledge-base chat
// and the Telegram bot from a terminal.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "primeleads",
		Short:        "Lead generation, recruiting and knowledge-base chat for FastAutomate",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	open := func(cmd *cobra.Command) (*app, error) {
		return openApp(verbose, cmd.ErrOrStderr())
	}

	root.AddCommand(
		newRunCmd(open),
		newRecruitCmd(open),
		newIngestCmd(open),
		newAskCmd(open),
		newChatCmd(open),
		newEvalCmd(open),
		newBotCmd(open),
	)
	return root
}

type opener func(cmd *cobra.Command) (*app, error)
