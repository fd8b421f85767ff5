package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tvmaze-scraper <handle> <token> <paramstring>",
		Short: "TVmaze metadata scraper for the media center host",
		Long: "Handles one host call: the handle identifies the host listing, the token is ignored\n" +
			"and the paramstring carries the action and its parameters. Results are written\n" +
			"to stdout as JSON lines.",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScraper(cmd, args)
		},
	}
	root.AddCommand(newCacheCmd())
	return root
}
