// sitectl pushes a built frontend to the site bucket and invalidates the
// CloudFront cache, the two deploy steps that follow every stack apply.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sitectl",
		Short:         "Deploy helper for the chat application frontend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSyncCmd())
	root.AddCommand(newInvalidateCmd())
	return root
}
